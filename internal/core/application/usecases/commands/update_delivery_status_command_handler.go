package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// UpdateDeliveryStatusCommandHandler advances the assignment and the order's
// delivery sub-state together as the rider reports progress. Both writes are
// guarded on the statuses the aggregates were loaded in and commit in one
// transaction, so the two machines cannot drift apart.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery
// progress reports.
func NewUpdateDeliveryStatusCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "delivery-status"),
	}
}

// Handle processes the progress report. A report that does not follow the
// delivery sequence, or comes from a rider who does not hold the
// assignment, is rejected.
func (h *UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignmentRepo := uow.AssignmentRepository()
	offer, err := assignmentRepo.Get(ctx, cmd.AssignmentID())
	if err != nil {
		return err
	}
	if offer.RiderID() != cmd.RiderID() {
		return errs.NewObjectNotFoundError("assignment", cmd.AssignmentID())
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, offer.OrderID())
	if err != nil {
		return err
	}

	prevOfferStatus := offer.Status()
	prevStatus := aggregate.Status()
	prevDeliveryStatus := aggregate.DeliveryStatus()

	offerChanged := true
	switch cmd.Target() {
	case order.DeliveryPicked:
		if err = offer.Pick(); err != nil {
			return err
		}
		err = aggregate.Pick()
	case order.DeliveryDelivered:
		if err = offer.Deliver(); err != nil {
			return err
		}
		err = aggregate.Deliver()
	default:
		// A failed delivery marks the order only; the assignment keeps
		// its last status as the record of how far the rider got.
		offerChanged = false
		err = aggregate.FailDelivery()
	}
	if err != nil {
		return err
	}

	if offerChanged {
		if err = assignmentRepo.UpdateGuarded(ctx, offer, prevOfferStatus); err != nil {
			return err
		}
	}

	if err = orderRepo.UpdateGuarded(ctx, aggregate, prevStatus, prevDeliveryStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.OrderStatusChanged(ctx, aggregate); err != nil {
		h.logger.Warn("order status event publish failed",
			"orderID", aggregate.ID().String(),
			"deliveryStatus", aggregate.DeliveryStatus().String(), "error", err)
	}

	return nil
}
