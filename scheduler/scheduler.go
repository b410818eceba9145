package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"blog-relay/internal/logger"
	"blog-relay/metrics"
)

// Fixed schedules, standard five-field cron syntax.
const (
	IngestSchedule  = "*/60 * * * *"
	PublishSchedule = "*/30 * * * *"
)

const (
	statusSuccess = "success"
	statusError   = "error"
	statusPanic   = "panic"
)

// Job is one unit of scheduled work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler runs registered jobs on their cron schedules.
// Each fire runs in its own goroutine; runs of the same job may overlap.
type Scheduler struct {
	ctx  context.Context
	cron *cron.Cron
	log  logger.Logger
}

// New creates a scheduler whose job runs use ctx. Cancelling ctx cancels in-flight runs.
func New(ctx context.Context, log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Log
	}
	return &Scheduler{
		ctx:  ctx,
		cron: cron.New(cron.WithLogger(cronLogger{log: log})),
		log:  log,
	}
}

// Register adds job under a five-field cron schedule.
func (s *Scheduler) Register(schedule string, job Job) error {
	if _, err := s.cron.AddFunc(schedule, func() { s.RunNow(job) }); err != nil {
		return fmt.Errorf("register %s (%q): %w", job.Name(), schedule, err)
	}
	s.log.Infof("job %s scheduled: %s", job.Name(), schedule)
	return nil
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops firing new runs. The returned context is done once running jobs have returned.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunNow runs job once on the calling goroutine. Errors and panics are logged
// and recorded, never returned.
func (s *Scheduler) RunNow(job Job) {
	name := job.Name()
	runID := uuid.NewString()
	start := time.Now()
	status := statusSuccess

	defer func() {
		if r := recover(); r != nil {
			status = statusPanic
			logger.ErrorWithFields(s.log, "job panicked", logger.Fields{
				"job":    name,
				"run_id": runID,
				"panic":  fmt.Sprint(r),
			})
		}
		elapsed := time.Since(start)
		metrics.RecordJobRun(name, status, elapsed.Seconds())
		logger.InfoWithFields(s.log, "job finished", logger.Fields{
			"job":      name,
			"run_id":   runID,
			"status":   status,
			"duration": elapsed.String(),
		})
	}()

	if err := job.Run(s.ctx); err != nil {
		status = statusError
		logger.ErrorWithFields(s.log, "job failed", logger.Fields{
			"job":    name,
			"run_id": runID,
			"error":  err.Error(),
		})
	}
}

// cronLogger routes robfig/cron's own logging into logger.Logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugf("cron: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorf("cron: %s: %v %v", msg, err, keysAndValues)
}
