// Package riderrepo provides data transfer objects and mapping functions for rider persistence.
package riderrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO represents the database structure for persisting rider aggregates.
// Location columns are nullable: a rider that never reported a position has
// no coordinates and stays invisible to dispatch.
type RiderDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`
	Lat  *float64  `gorm:"column:lat"`
	Lon  *float64  `gorm:"column:lon"`
}

// TableName specifies the database table name for rider entities.
// Overrides GORM's default naming convention to use "riders".
func (RiderDTO) TableName() string {
	return "riders"
}

// fromDomain converts a rider domain aggregate to its database representation.
func fromDomain(aggregate *rider.Rider) RiderDTO {
	dto := RiderDTO{
		ID:   aggregate.ID().Bytes(),
		Name: aggregate.Name(),
	}

	if location := aggregate.Location(); location != nil {
		lat := location.Latitude()
		lon := location.Longitude()
		dto.Lat = &lat
		dto.Lon = &lon
	}

	return dto
}

// toDomain converts a database DTO to a rider domain aggregate using RestoreRider.
func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lon)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return rider.RestoreRider(id, dto.Name, location)
}
