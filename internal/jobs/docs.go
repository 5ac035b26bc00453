// Package jobs provides scheduled background tasks for the workshop service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the order workflow.
//
// # Available Jobs
//
// 1. DeadlineWatchJob - Runs every minute to surface open orders whose
// deadline has passed. Notification delivery itself stays external; the job
// only logs the overdue set so operators and log shippers can pick it up.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(getOverdueOrdersHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs
