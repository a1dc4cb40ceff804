package jobs

import (
	"context"
	"log/slog"
	"time"

	"transferflow/internal/core/application/usecases/queries"
	"transferflow/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// DefaultStatisticsSchedule runs the report at the top of every minute.
const DefaultStatisticsSchedule = "0 * * * * *"

type StatisticsSource interface {
	Handle(ctx context.Context, query queries.GetStatisticsQuery) (services.Statistics, error)
}

// StatisticsReportJob periodically logs a summary of the transfer statistics.
type StatisticsReportJob struct {
	source   StatisticsSource
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

// NewStatisticsReportJob creates the job. schedule is a six-field cron
// expression; an empty schedule falls back to DefaultStatisticsSchedule.
func NewStatisticsReportJob(source StatisticsSource, schedule string, logger *slog.Logger) *StatisticsReportJob {
	if schedule == "" {
		schedule = DefaultStatisticsSchedule
	}
	return &StatisticsReportJob{
		source:   source,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "statistics_report_job"),
		now:      time.Now,
	}
}

// Start registers the report on the configured schedule.
func (j *StatisticsReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = j.Run(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Statistics report job started", "schedule", j.schedule)
	return nil
}

// Run produces one report immediately.
func (j *StatisticsReportJob) Run(ctx context.Context) error {
	stats, err := j.source.Handle(ctx, queries.NewGetStatisticsQuery(j.now()))
	if err != nil {
		j.logger.ErrorContext(ctx, "Statistics report failed", "error", err)
		return err
	}

	byStatus := make([]any, 0, 2*len(stats.ByStatus))
	for status, n := range stats.ByStatus {
		byStatus = append(byStatus, status.String(), n)
	}

	j.logger.InfoContext(ctx, "Transfer statistics",
		"total", stats.TotalTransfers,
		"pending_approval", stats.PendingApproval,
		"in_transit", stats.InTransit,
		"total_amount", stats.TotalAmount.StringFixed(2),
		"current_month_amount", stats.CurrentMonthAmount.StringFixed(2),
		"average_amount", stats.AverageAmount.StringFixed(2),
		slog.Group("by_status", byStatus...),
	)
	return nil
}

// Stop stops the scheduler and waits for a running report to finish.
func (j *StatisticsReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Statistics report job stopped")
}
