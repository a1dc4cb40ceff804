package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager owns the background jobs of the service so main can start and
// stop them as one unit.
type JobManager struct {
	statisticsReportJob *StatisticsReportJob
}

func NewJobManager(
	statistics StatisticsSource,
	statisticsSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		statisticsReportJob: NewStatisticsReportJob(statistics, statisticsSchedule, logger),
	}
}

// StartAll schedules every job. A bad schedule is reported and nothing keeps running.
func (jm *JobManager) StartAll() error {
	if err := jm.statisticsReportJob.Start(); err != nil {
		return fmt.Errorf("start statistics report job: %w", err)
	}
	return nil
}

// StopAll waits for running jobs to finish.
func (jm *JobManager) StopAll() {
	jm.statisticsReportJob.Stop()
}
