// pkg/cron/pool_stats.go

package cron

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// StatsSource is satisfied by *sql.DB.
type StatsSource interface {
	Stats() sql.DBStats
}

// PoolStatsJob logs connection pool usage on a schedule.
type PoolStatsJob struct {
	source StatsSource
	log    zerolog.Logger

	mu   sync.Mutex
	last sql.DBStats
}

func NewPoolStatsJob(source StatsSource, log zerolog.Logger) *PoolStatsJob {
	return &PoolStatsJob{source: source, log: log.With().Str("job", "pool_stats").Logger()}
}

// Run logs one snapshot. Wait counters are logged both as totals and as the
// change since the previous run.
func (j *PoolStatsJob) Run() {
	j.mu.Lock()
	defer j.mu.Unlock()

	stats := j.source.Stats()
	j.log.Info().
		Int("max_open", stats.MaxOpenConnections).
		Int("open", stats.OpenConnections).
		Int("in_use", stats.InUse).
		Int("idle", stats.Idle).
		Int64("wait_count", stats.WaitCount).
		Int64("new_waits", stats.WaitCount-j.last.WaitCount).
		Dur("wait_duration", stats.WaitDuration).
		Int64("max_idle_closed", stats.MaxIdleClosed).
		Msg("Connection pool stats")

	j.last = stats
}

// Start schedules the job and starts the cron runner. The caller stops the
// returned runner on shutdown.
func Start(schedule string, job cron.Job) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddJob(schedule, job); err != nil {
		return nil, fmt.Errorf("could not schedule job %q: %w", schedule, err)
	}

	c.Start()
	return c, nil
}
