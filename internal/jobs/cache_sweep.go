package jobs

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/veldt-labs/cashlens/internal/modules/dashboard"
)

// CacheSweepJob removes expired dashboard cache entries so cache.db does
// not grow unbounded between reads.
type CacheSweepJob struct {
	cache *dashboard.Cache
	log   zerolog.Logger
}

// NewCacheSweepJob creates the periodic cache sweep job.
func NewCacheSweepJob(cache *dashboard.Cache, log zerolog.Logger) *CacheSweepJob {
	return &CacheSweepJob{
		cache: cache,
		log:   log.With().Str("job", "cache_sweep").Logger(),
	}
}

// Name implements scheduler.Job.
func (j *CacheSweepJob) Name() string {
	return "cache-sweep"
}

// Run implements scheduler.Job.
func (j *CacheSweepJob) Run() error {
	removed, err := j.cache.Sweep()
	if err != nil {
		return fmt.Errorf("cache sweep failed: %w", err)
	}
	if removed > 0 {
		j.log.Info().Int64("removed", removed).Msg("Swept expired dashboard cache entries")
	}
	return nil
}
