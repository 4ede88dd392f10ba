package jobs

import (
	"carrental-backend/internal/config"
	"carrental-backend/internal/currency"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	lateReturn     service.LateReturnService
	reconciliation service.ReconciliationService
	converter      *currency.Converter
	config         *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(lateReturn service.LateReturnService, reconciliation service.ReconciliationService, converter *currency.Converter, cfg *config.Config) *JobRunner {
	return &JobRunner{
		lateReturn:     lateReturn,
		reconciliation: reconciliation,
		converter:      converter,
		config:         cfg,
	}
}

// Config returns the loaded application configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	log := logger.WithJob(jobName)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "panic", r)
		}
	}()

	log.Info("Starting job")
	jobFunc()
	log.Info("Job completed")
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.DetectLateReturns()
	jr.RunDailyReconciliation()
}
