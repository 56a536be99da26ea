// Package catalogrepo reads the restaurant menu catalog. The catalog is
// owned by the restaurant management surface; this adapter only looks items
// up so the cart can capture their prices at add time.
package catalogrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMenuCatalog implements MenuCatalog over the menu_items table.
type GormMenuCatalog struct {
	db *gorm.DB
}

// NewGormMenuCatalog creates a new GORM menu catalog.
func NewGormMenuCatalog(db *gorm.DB) *GormMenuCatalog {
	return &GormMenuCatalog{db: db}
}

// GetItem retrieves a menu item by its reference.
func (r *GormMenuCatalog) GetItem(ctx context.Context, menuItemRef kernel.UUID) (ports.MenuItem, error) {
	if err := menuItemRef.Validate(); err != nil {
		return ports.MenuItem{}, errs.NewValueIsRequiredErrorWithCause("menuItemRef", err)
	}

	var dto MenuItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", menuItemRef.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MenuItem{}, errs.NewObjectNotFoundError("menuItem", menuItemRef)
		}
		return ports.MenuItem{}, err
	}

	return toMenuItem(dto)
}
