// internal/workers/server.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/warehouse-be/internal/pkg/config"
	"github.com/ammerola/warehouse-be/internal/pkg/logger"
)

const (
	retryBase = time.Second
	retryCap  = 10 * time.Minute
)

// RedisOpt returns the asynq connection settings shared by the API, the
// worker and the scheduler
func RedisOpt(cfg config.AsynqConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

// NewServer builds the task server. Failed tasks are logged and retried with
// RetryDelay.
func NewServer(cfg config.AsynqConfig, log *slog.Logger) *asynq.Server {
	log = log.With(slog.String("component", "asynq"))
	return asynq.NewServer(RedisOpt(cfg), asynq.Config{
		Concurrency:              cfg.Concurrency,
		Queues:                   cfg.Queues,
		StrictPriority:           cfg.StrictPriority,
		ShutdownTimeout:          cfg.ShutdownTimeout,
		HealthCheckInterval:      cfg.HealthCheckInterval,
		DelayedTaskCheckInterval: cfg.DelayedTaskCheckTime,
		RetryDelayFunc:           RetryDelay,
		Logger:                   slogAdapter{log},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, t *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			log.ErrorContext(ctx, "task failed",
				slog.String("task_type", t.Type()),
				slog.Int("retry", retried),
				slog.Int("max_retry", maxRetry),
				slog.String("error", err.Error()))
		}),
		HealthCheckFunc: func(err error) {
			if err != nil {
				log.Error("redis health check failed", slog.String("error", err.Error()))
			}
		},
	})
}

// NewScheduler builds the periodic task scheduler in UTC
func NewScheduler(cfg config.AsynqConfig, log *slog.Logger) *asynq.Scheduler {
	return asynq.NewScheduler(RedisOpt(cfg), &asynq.SchedulerOpts{
		Location: time.UTC,
		Logger:   slogAdapter{log.With(slog.String("component", "scheduler"))},
	})
}

// Schedule registers the dashboard refresh and temp file sweep. Intervals
// fall back to 5m and 1h when unset.
func Schedule(s *asynq.Scheduler, inv config.InventoryConfig, files config.FileProcessingConfig) error {
	entries := []struct {
		every time.Duration
		def   time.Duration
		task  *asynq.Task
		opts  []asynq.Option
	}{
		{inv.DashboardRefresh, 5 * time.Minute, asynq.NewTask(TypeDashboardRefresh, nil), nil},
		{files.CleanupInterval, time.Hour, asynq.NewTask(TypeCleanupTempFiles, nil), []asynq.Option{asynq.MaxRetry(1)}},
	}
	for _, e := range entries {
		every := e.every
		if every <= 0 {
			every = e.def
		}
		opts := append([]asynq.Option{asynq.Queue(QueueLow), asynq.Unique(every)}, e.opts...)
		if _, err := s.Register(fmt.Sprintf("@every %s", every), e.task, opts...); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", e.task.Type(), err)
		}
	}
	return nil
}

// WithTaskType tags the context of every task with its type
func WithTaskType(next asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
		return next.ProcessTask(logger.WithTaskType(ctx, t.Type()), t)
	})
}

// RetryDelay doubles from one second per attempt, capped at ten minutes
func RetryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	if n < 0 {
		n = 0
	}
	if n >= 10 {
		return retryCap
	}
	return min(retryBase<<n, retryCap)
}

// slogAdapter satisfies asynq.Logger
type slogAdapter struct{ l *slog.Logger }

func (a slogAdapter) Debug(args ...any) { a.l.Debug(fmt.Sprint(args...)) }
func (a slogAdapter) Info(args ...any)  { a.l.Info(fmt.Sprint(args...)) }
func (a slogAdapter) Warn(args ...any)  { a.l.Warn(fmt.Sprint(args...)) }
func (a slogAdapter) Error(args ...any) { a.l.Error(fmt.Sprint(args...)) }

func (a slogAdapter) Fatal(args ...any) {
	a.l.Error(fmt.Sprint(args...))
	os.Exit(1)
}
