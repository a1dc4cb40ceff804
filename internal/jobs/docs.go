// Package jobs provides scheduled background tasks for the transfer service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and log through
// log/slog.
//
// # Available Jobs
//
// 1. StatisticsReportJob - logs totals, per-status counts and amounts on a
// configurable schedule (STATS_REPORT_SCHEDULE, default "0 * * * * *")
//
// # Usage
//
//	jobManager := jobs.NewJobManager(statisticsHandler, config.StatsReportSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed report is logged and retried on the next tick. An invalid schedule
// fails StartAll.
package jobs
