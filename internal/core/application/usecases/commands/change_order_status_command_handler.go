package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies vendor and customer decisions to
// pending orders. The persistence write is guarded on the status the order
// was loaded in, so two racing decisions cannot both win.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for order decisions.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "order-status"),
	}
}

// Handle processes the decision. An order no longer in a status that allows
// the transition surfaces as an invalid transition error, whether the domain
// model or the guarded write detects it first.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	prevStatus := aggregate.Status()
	prevDeliveryStatus := aggregate.DeliveryStatus()

	switch cmd.Target() {
	case order.Accepted:
		err = aggregate.Accept()
	case order.Rejected:
		err = aggregate.Reject()
	default:
		err = aggregate.Cancel()
	}
	if err != nil {
		return err
	}

	if err = orderRepo.UpdateGuarded(ctx, aggregate, prevStatus, prevDeliveryStatus); err != nil {
		return err
	}

	// An order leaving the dispatchable states takes its open offers with
	// it, so riders stop seeing offers nobody can deliver anymore.
	if cmd.Target() == order.Rejected || cmd.Target() == order.Cancelled {
		if err = uow.AssignmentRepository().CancelPendingByOrder(ctx, aggregate.ID()); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.OrderStatusChanged(ctx, aggregate); err != nil {
		h.logger.Warn("order status event publish failed",
			"orderID", aggregate.ID().String(), "status", aggregate.Status().String(), "error", err)
	}

	return nil
}
