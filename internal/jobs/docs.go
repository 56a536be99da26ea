// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the request path cannot guarantee.
//
// # Available Jobs
//
// 1. DispatchRetryJob - Periodically re-dispatches accepted orders that have
// no rider yet, so an order dispatched while no rider was in range is picked
// up once riders come online.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(getUnassignedOrdersHandler, dispatchHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed dispatch for one order is logged and does not stop the sweep;
// "no riders within radius" is an expected outcome, not an error.
package jobs
