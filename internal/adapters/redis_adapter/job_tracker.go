// internal/adapters/redis_adapter/job_tracker.go
package redis_a

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
)

// DefaultJobTTL is how long finished and pending import jobs stay readable
const DefaultJobTTL = 24 * time.Hour

// JobTracker keeps asynchronous import job state in Redis
type JobTracker struct {
	cache *Cache
	ttl   time.Duration
}

var _ ports.ImportJobStore = (*JobTracker)(nil)

// NewJobTracker creates a job tracker on top of the cache
func NewJobTracker(cache *Cache, ttl time.Duration) *JobTracker {
	if ttl <= 0 {
		ttl = DefaultJobTTL
	}
	return &JobTracker{cache: cache, ttl: ttl}
}

// SaveJob stores the job, refreshing its expiry
func (t *JobTracker) SaveJob(ctx context.Context, job *domain.ImportJob) error {
	if job == nil || job.ID == "" {
		return fmt.Errorf("import job id is required")
	}
	return t.cache.SetWithTTL(ctx, BuildKey(PrefixImportJob, job.ID), job, t.ttl)
}

// GetJob loads a job. Unknown or expired ids return domain.ErrNotFound.
func (t *JobTracker) GetJob(ctx context.Context, id string) (*domain.ImportJob, error) {
	var job domain.ImportJob
	if err := t.cache.Get(ctx, BuildKey(PrefixImportJob, id), &job); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, fmt.Errorf("import job %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &job, nil
}
