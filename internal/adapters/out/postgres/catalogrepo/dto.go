package catalogrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/google/uuid"
)

// MenuItemDTO represents the database structure for menu items.
type MenuItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"type:varchar(255);not null"`
	BasePrice       float64   `gorm:"not null"`
	HalfPlatePrice  float64   `gorm:"not null"`
	FullPlatePrice  float64   `gorm:"not null"`
	DiscountPercent float64   `gorm:"not null;default:0"`
}

// TableName specifies the database table name for menu items.
// Overrides GORM's default naming convention to use "menu_items".
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// toMenuItem converts a database DTO to the catalog read model.
func toMenuItem(dto MenuItemDTO) (ports.MenuItem, error) {
	ref, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.MenuItem{}, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return ports.MenuItem{}, err
	}

	return ports.MenuItem{
		MenuItemRef:     ref,
		RestaurantID:    restaurantID,
		Name:            dto.Name,
		BasePrice:       dto.BasePrice,
		HalfPlatePrice:  dto.HalfPlatePrice,
		FullPlatePrice:  dto.FullPlatePrice,
		DiscountPercent: dto.DiscountPercent,
	}, nil
}
