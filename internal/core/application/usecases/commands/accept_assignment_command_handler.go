package commands

import (
	"context"
	"errors"
	"log/slog"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ErrRiderBusy rejects an acceptance while the rider already holds another
// active delivery.
var ErrRiderBusy = errors.New("rider already has an active delivery")

// AcceptAssignmentResult reports the assignment that holds the order after
// the call. On a won race this is the caller's own offer; on a lost race the
// accompanying already-handled error carries it as the authoritative winner.
type AcceptAssignmentResult struct {
	Winner *assignment.Assignment
}

// AcceptAssignmentCommandHandler decides acceptance races. The first rider
// whose guarded write lands wins the order; every later acceptance comes
// back with an already-handled error naming the winner. The winning
// transaction also cancels the order's remaining pending offers and pins the
// rider on the order.
type AcceptAssignmentCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAcceptAssignmentCommandHandler creates a handler for acceptance
// operations.
func NewAcceptAssignmentCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "assignment-accept"),
	}
}

// Handle processes the acceptance. Exactly one of three things happens: the
// rider wins and the order is theirs, the race was already decided and the
// result names the winner, or the rider is busy and the offer stays open.
func (h *AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) (AcceptAssignmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return AcceptAssignmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AcceptAssignmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignmentRepo := uow.AssignmentRepository()
	offer, err := assignmentRepo.Get(ctx, cmd.AssignmentID())
	if err != nil {
		return AcceptAssignmentResult{}, err
	}
	if offer.RiderID() != cmd.RiderID() {
		return AcceptAssignmentResult{}, errs.NewObjectNotFoundError("assignment", cmd.AssignmentID())
	}

	if offer.Status() != assignment.StatusPending {
		return h.alreadyDecided(ctx, assignmentRepo, offer.OrderID(), cmd.AssignmentID())
	}

	if err = h.ensureRiderFree(ctx, assignmentRepo, cmd.RiderID()); err != nil {
		return AcceptAssignmentResult{}, err
	}

	if err = offer.Accept(); err != nil {
		return AcceptAssignmentResult{}, err
	}
	if err = assignmentRepo.UpdateGuarded(ctx, offer, assignment.StatusPending); err != nil {
		if errors.Is(err, errs.ErrInvalidTransition) {
			// Lost the write race: another acceptance landed between
			// our read and our guarded update.
			return h.alreadyDecided(ctx, assignmentRepo, offer.OrderID(), cmd.AssignmentID())
		}
		return AcceptAssignmentResult{}, err
	}

	if err = assignmentRepo.CancelPendingSiblings(ctx, offer.OrderID(), offer.ID()); err != nil {
		return AcceptAssignmentResult{}, err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, offer.OrderID())
	if err != nil {
		return AcceptAssignmentResult{}, err
	}
	if err = aggregate.AssignRider(cmd.RiderID()); err != nil {
		return AcceptAssignmentResult{}, err
	}
	if err = orderRepo.UpdateGuarded(ctx, aggregate, order.Accepted, order.DeliveryPending); err != nil {
		return AcceptAssignmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AcceptAssignmentResult{}, err
	}

	if err = h.publisher.AssignmentAccepted(ctx, offer); err != nil {
		h.logger.Warn("assignment accepted event publish failed",
			"assignmentID", offer.ID().String(), "orderID", offer.OrderID().String(), "error", err)
	}

	return AcceptAssignmentResult{Winner: offer}, nil
}

// alreadyDecided resolves a lost race to its authoritative outcome so the
// losing rider's client can show who holds the order.
func (h *AcceptAssignmentCommandHandler) alreadyDecided(
	ctx context.Context,
	assignmentRepo ports.AssignmentRepository,
	orderID, assignmentID kernel.UUID,
) (AcceptAssignmentResult, error) {
	winner, err := assignmentRepo.GetTakenByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			// The offer left Pending without anyone taking the order,
			// so it was cancelled or the order moved on.
			return AcceptAssignmentResult{}, errs.NewAlreadyHandledError("assignment", assignmentID)
		}
		return AcceptAssignmentResult{}, err
	}

	return AcceptAssignmentResult{Winner: winner}, errs.NewAlreadyHandledError("assignment", assignmentID)
}

// ensureRiderFree rejects the acceptance while the rider holds another
// accepted or picked assignment.
func (h *AcceptAssignmentCommandHandler) ensureRiderFree(
	ctx context.Context,
	assignmentRepo ports.AssignmentRepository,
	riderID kernel.UUID,
) error {
	_, err := assignmentRepo.GetOpenByRider(ctx, riderID)
	if err == nil {
		return ErrRiderBusy
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	return nil
}
