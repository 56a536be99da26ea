// Package locationrepo resolves pickup and delivery coordinates from the
// profile tables owned by the account and restaurant surfaces. Only the
// coordinate columns are read here.
package locationrepo

import "github.com/google/uuid"

// RestaurantLocationDTO reads a restaurant's pickup coordinates.
type RestaurantLocationDTO struct {
	ID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Lat *float64  `gorm:"column:lat"`
	Lon *float64  `gorm:"column:lon"`
}

func (RestaurantLocationDTO) TableName() string {
	return "restaurants"
}

// CustomerLocationDTO reads a customer's default delivery coordinates.
type CustomerLocationDTO struct {
	ID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Lat *float64  `gorm:"column:lat"`
	Lon *float64  `gorm:"column:lon"`
}

func (CustomerLocationDTO) TableName() string {
	return "customers"
}

// AddressLocationDTO reads a saved delivery address's coordinates.
type AddressLocationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Lat        *float64  `gorm:"column:lat"`
	Lon        *float64  `gorm:"column:lon"`
}

func (AddressLocationDTO) TableName() string {
	return "addresses"
}
