package commands

import (
	"context"
	"errors"
	"log/slog"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/pkg/errs"
)

// UpdateRiderLocationCommandHandler moves a rider and refreshes the pickup
// distances of their still-pending offers so the numbers the rider sees stay
// honest as they drive.
type UpdateRiderLocationCommandHandler struct {
	uowFactory RiderLocationUoWFactory
	logger     *slog.Logger
}

// NewUpdateRiderLocationCommandHandler creates a handler for rider position
// reports.
func NewUpdateRiderLocationCommandHandler(
	uowFactory RiderLocationUoWFactory,
	logger *slog.Logger,
) UpdateRiderLocationCommandHandler {
	return UpdateRiderLocationCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "rider-location"),
	}
}

// Handle processes the position report. Refreshing an offer's pickup
// distance is best effort: an offer accepted or canceled mid-refresh is
// skipped, not failed, since its distance no longer matters.
func (h *UpdateRiderLocationCommandHandler) Handle(ctx context.Context, cmd UpdateRiderLocationCommand) error {
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

	riderRepo := uow.RiderRepository()
	aggregate, err := riderRepo.Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}

	if err = aggregate.UpdateLocation(cmd.Location()); err != nil {
		return err
	}
	if err = riderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = h.refreshPendingOffers(ctx, uow, cmd); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func (h *UpdateRiderLocationCommandHandler) refreshPendingOffers(ctx context.Context, uow RiderLocationUoW, cmd UpdateRiderLocationCommand) error {
	assignmentRepo := uow.AssignmentRepository()
	offers, err := assignmentRepo.GetPendingByRider(ctx, cmd.RiderID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	for _, offer := range offers {
		ord, err := orderRepo.Get(ctx, offer.OrderID())
		if err != nil {
			return err
		}

		pickupKm, err := cmd.Location().DistanceKm(ord.RestaurantLocation())
		if err != nil {
			return err
		}

		if err = offer.RefreshPickupDistance(pickupKm); err != nil {
			return err
		}
		if err = assignmentRepo.UpdateGuarded(ctx, offer, assignment.StatusPending); err != nil {
			if errors.Is(err, errs.ErrInvalidTransition) {
				h.logger.Debug("skipping distance refresh for settled offer",
					"assignmentID", offer.ID().String())
				continue
			}
			return err
		}
	}

	return nil
}
