// internal/adapters/redis_adapter/job_tracker_test.go
package redis_a_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/ammerola/warehouse-be/internal/adapters/redis_adapter"
	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/test/helpers"
)

func TestJobTracker_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tracker := redis_a.NewJobTracker(redis_a.NewCache(client, time.Minute, helpers.TestLogger()), 0)

	job := &domain.ImportJob{
		ID:        "job-1",
		FileName:  "stock.xlsx",
		Status:    domain.ImportJobQueued,
		CreatedAt: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, tracker.SaveJob(ctx, job))
	assert.Equal(t, redis_a.DefaultJobTTL, mr.TTL("import:job:job-1"))

	job.Status = domain.ImportJobCompleted
	job.Result = &domain.ImportResult{Created: 2, CreatedIDs: []string{"INV-001", "INV-002"}}
	require.NoError(t, tracker.SaveJob(ctx, job))

	got, err := tracker.GetJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ImportJobCompleted, got.Status)
	assert.Equal(t, "stock.xlsx", got.FileName)
	require.NotNil(t, got.Result)
	assert.Equal(t, []string{"INV-001", "INV-002"}, got.Result.CreatedIDs)
	assert.True(t, job.CreatedAt.Equal(got.CreatedAt))
}

func TestJobTracker_Errors(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tracker := redis_a.NewJobTracker(redis_a.NewCache(client, time.Minute, helpers.TestLogger()), time.Hour)

	t.Run("unknown_job_is_not_found", func(t *testing.T) {
		_, err := tracker.GetJob(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("expired_job_is_not_found", func(t *testing.T) {
		require.NoError(t, tracker.SaveJob(ctx, &domain.ImportJob{ID: "old", Status: domain.ImportJobFailed}))
		mr.FastForward(2 * time.Hour)

		_, err := tracker.GetJob(ctx, "old")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("job_without_id_is_rejected", func(t *testing.T) {
		assert.Error(t, tracker.SaveJob(ctx, &domain.ImportJob{}))
	})
}
