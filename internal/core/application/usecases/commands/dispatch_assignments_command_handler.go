package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// ReasonNoRidersWithinRadius explains an empty dispatch: no located rider
// was inside the assignment radius at dispatch time.
const ReasonNoRidersWithinRadius = "no riders within radius"

// DispatchAssignmentsResult reports the offers in flight for the order after
// the dispatch, whether this call created them or an earlier one did.
type DispatchAssignmentsResult struct {
	Offers []*assignment.Assignment
	Reason string
}

// DispatchAssignmentsCommandHandler fans assignment offers out to every
// located rider within the dispatch radius. Repeated dispatches for the same
// order are idempotent: an already taken or already offered order returns
// the existing assignments instead of creating duplicates.
type DispatchAssignmentsCommandHandler struct {
	uowFactory DispatchUoWFactory
	dispatcher services.AssignmentDispatcher
}

// NewDispatchAssignmentsCommandHandler creates a handler for dispatch
// operations.
func NewDispatchAssignmentsCommandHandler(
	uowFactory DispatchUoWFactory,
	dispatcher services.AssignmentDispatcher,
) DispatchAssignmentsCommandHandler {
	return DispatchAssignmentsCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the dispatch. An order that is not accepted, or already
// has a rider, surfaces as an invalid transition error. An accepted order
// with no rider in range is not an error: the result carries the reason and
// the dispatch retry job will try again.
func (h *DispatchAssignmentsCommandHandler) Handle(ctx context.Context, cmd DispatchAssignmentsCommand) (DispatchAssignmentsResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchAssignmentsResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DispatchAssignmentsResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignmentRepo := uow.AssignmentRepository()

	taken, err := assignmentRepo.GetTakenByOrder(ctx, cmd.OrderID())
	if err == nil {
		return DispatchAssignmentsResult{Offers: []*assignment.Assignment{taken}}, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return DispatchAssignmentsResult{}, err
	}

	existing, err := assignmentRepo.GetByOrder(ctx, cmd.OrderID())
	if err != nil {
		return DispatchAssignmentsResult{}, err
	}
	pending := make([]*assignment.Assignment, 0, len(existing))
	for _, offer := range existing {
		if offer.Status() == assignment.StatusPending {
			pending = append(pending, offer)
		}
	}
	if len(pending) > 0 {
		return DispatchAssignmentsResult{Offers: pending}, nil
	}

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return DispatchAssignmentsResult{}, err
	}

	riders, err := uow.RiderRepository().GetAllLocated(ctx)
	if err != nil {
		return DispatchAssignmentsResult{}, err
	}

	offers, err := h.dispatcher.Dispatch(aggregate, riders)
	if err != nil {
		return DispatchAssignmentsResult{}, err
	}

	if len(offers) == 0 {
		return DispatchAssignmentsResult{Reason: ReasonNoRidersWithinRadius}, nil
	}

	for _, offer := range offers {
		if err = assignmentRepo.Add(ctx, offer); err != nil {
			return DispatchAssignmentsResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return DispatchAssignmentsResult{}, err
	}

	return DispatchAssignmentsResult{Offers: offers}, nil
}
