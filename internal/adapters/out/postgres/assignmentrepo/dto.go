// Package assignmentrepo provides data transfer objects and mapping functions for
// assignment persistence. Assignment rows carry the status column that guarded
// writes compare-and-swap on, making the table the arbiter of acceptance races.
package assignmentrepo

import (
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for persisting assignment offers.
type AssignmentDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;not null;index"`
	RiderID          uuid.UUID `gorm:"type:uuid;not null;index"`
	PickupDistanceKm float64   `gorm:"not null"`
	DropDistanceKm   float64   `gorm:"not null"`
	Status           int       `gorm:"not null;index"`
}

// TableName specifies the database table name for assignment entities.
// Overrides GORM's default naming convention to use "assignments".
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// fromDomain converts an assignment domain aggregate to its database representation.
func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:               aggregate.ID().Bytes(),
		OrderID:          aggregate.OrderID().Bytes(),
		RiderID:          aggregate.RiderID().Bytes(),
		PickupDistanceKm: aggregate.PickupDistanceKm(),
		DropDistanceKm:   aggregate.DropDistanceKm(),
		Status:           int(aggregate.Status()),
	}
}

// toDomain converts a database DTO to an assignment domain aggregate using RestoreAssignment.
func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id, orderID, riderID,
		dto.PickupDistanceKm, dto.DropDistanceKm,
		assignment.Status(dto.Status),
	)
}
