package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// dispatchRetrySchedule sweeps every 30 seconds. Dispatch is idempotent, so
// a sweep overlapping a manual dispatch creates no duplicate offers.
const dispatchRetrySchedule = "*/30 * * * * *"

// DispatchRetryJob re-dispatches accepted orders that have no rider yet.
type DispatchRetryJob struct {
	unassignedHandler queries.GetUnassignedOrdersQueryHandler
	dispatchHandler   commands.DispatchAssignmentsCommandHandler
	cron              *cron.Cron
	logger            *slog.Logger
}

// NewDispatchRetryJob creates a job that sweeps unassigned orders and fans
// assignment offers out for each.
func NewDispatchRetryJob(
	unassignedHandler queries.GetUnassignedOrdersQueryHandler,
	dispatchHandler commands.DispatchAssignmentsCommandHandler,
	logger *slog.Logger,
) *DispatchRetryJob {
	return &DispatchRetryJob{
		unassignedHandler: unassignedHandler,
		dispatchHandler:   dispatchHandler,
		cron:              cron.New(cron.WithSeconds()),
		logger:            logger.With("component", "dispatch_retry_job"),
	}
}

// Start begins the dispatch retry sweep.
func (j *DispatchRetryJob) Start() error {
	_, err := j.cron.AddFunc(dispatchRetrySchedule, j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch retry job started")
	return nil
}

// Stop stops the dispatch retry sweep.
func (j *DispatchRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch retry job stopped")
}

func (j *DispatchRetryJob) sweep() {
	ctx := context.Background()

	orders, err := j.unassignedHandler.Handle(ctx, queries.NewGetUnassignedOrdersQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Unassigned order sweep failed", "error", err)
		return
	}

	for _, order := range orders {
		cmd, err := commands.NewDispatchAssignmentsCommand(order.ID)
		if err != nil {
			j.logger.ErrorContext(ctx, "Dispatch command rejected", "orderID", order.ID.String(), "error", err)
			continue
		}

		result, err := j.dispatchHandler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Dispatch retry failed", "orderID", order.ID.String(), "error", err)
			continue
		}
		if len(result.Offers) > 0 {
			j.logger.InfoContext(ctx, "Dispatch retry offered order",
				"orderID", order.ID.String(), "offers", len(result.Offers))
		}
	}
}
