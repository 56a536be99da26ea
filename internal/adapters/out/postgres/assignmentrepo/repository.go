package assignmentrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// takenStatuses are the statuses of an offer the rider is committed to.
func takenStatuses() []int {
	return []int{
		int(assignment.StatusAccepted),
		int(assignment.StatusPicked),
		int(assignment.StatusDelivered),
	}
}

// openStatuses are the statuses of an offer that still occupies the rider.
func openStatuses() []int {
	return []int{
		int(assignment.StatusAccepted),
		int(assignment.StatusPicked),
	}
}

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new assignment offer to the database.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateGuarded persists the aggregate's current state conditioned on the
// stored row still holding the expected previous status. When two riders
// accept the same offer set concurrently, exactly one guarded write matches
// a row; every other write returns an invalid transition.
func (r *GormAssignmentRepository) UpdateGuarded(
	ctx context.Context,
	aggregate *assignment.Assignment,
	expectedStatus assignment.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expectedStatus)).
		Updates(map[string]any{
			"status":             dto.Status,
			"pickup_distance_km": dto.PickupDistanceKm,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewInvalidTransitionError("assignment", expectedStatus.String(), aggregate.Status().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an assignment offer by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrder retrieves every offer ever created for an order.
func (r *GormAssignmentRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AssignmentDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetTakenByOrder retrieves the order's accepted, picked or delivered
// assignment. At most one offer per order can ever reach these statuses.
func (r *GormAssignmentRepository) GetTakenByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND status IN ?", orderID.Bytes(), takenStatuses()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOpenByRider retrieves the rider's currently held assignment. Offers on
// orders whose delivery already failed no longer occupy the rider, so the
// join filters them out; without it a failed delivery would block the rider
// forever.
func (r *GormAssignmentRepository) GetOpenByRider(ctx context.Context, riderID kernel.UUID) (*assignment.Assignment, error) {
	if err := riderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).
		Table("assignments").
		Select("assignments.*").
		Joins("JOIN orders ON orders.id = assignments.order_id").
		Where("assignments.rider_id = ? AND assignments.status IN ? AND orders.delivery_status <> ?",
			riderID.Bytes(), openStatuses(), int(order.DeliveryFailed)).
		First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", riderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingByRider retrieves the rider's still-open offers.
func (r *GormAssignmentRepository) GetPendingByRider(ctx context.Context, riderID kernel.UUID) ([]*assignment.Assignment, error) {
	if err := riderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AssignmentDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "rider_id = ? AND status = ?", riderID.Bytes(), int(assignment.StatusPending)).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// CancelPendingSiblings moves every pending offer of the order except the
// winner to canceled, in the same transaction as the winning acceptance.
func (r *GormAssignmentRepository) CancelPendingSiblings(ctx context.Context, orderID, winnerID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), winnerID.Validate()); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("order_id = ? AND status = ? AND id <> ?",
			orderID.Bytes(), int(assignment.StatusPending), winnerID.Bytes()).
		Update("status", int(assignment.StatusCanceled)).Error
}

// CancelPendingByOrder moves every pending offer of the order to canceled,
// in the same transaction as the order decision that dooms them.
func (r *GormAssignmentRepository) CancelPendingByOrder(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("order_id = ? AND status = ?", orderID.Bytes(), int(assignment.StatusPending)).
		Update("status", int(assignment.StatusCanceled)).Error
}

// toDomainSlice converts a batch of DTOs, failing on the first bad row.
func toDomainSlice(dtos []AssignmentDTO) ([]*assignment.Assignment, error) {
	assignments := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, nil
}
