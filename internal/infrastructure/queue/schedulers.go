package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"artifact-tracker-backend/internal/config"
	"artifact-tracker-backend/internal/shared"
	"artifact-tracker-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redis config.RedisConfig, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redis.Host,
			Password: redis.Password,
			DB:       redis.DB,
		},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerReconcileLikeCountJob()
}

// ================================================
// Reconcile like counters (JOB_RECONCILE_CRON, hourly by default)
// ================================================
func (s *Scheduler) registerReconcileLikeCountJob() error {
	payload, err := json.Marshal(shared.ReconcileLikeCountPayload{
		Reason: shared.ReconcileReasonSchedule,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeReconcileLikeCount, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.ReconcileCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register ReconcileLikeCount job", err)
		return err
	}

	logger.Info("✓ Registered ReconcileLikeCount", map[string]interface{}{
		"cron": s.jobConfig.ReconcileCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
