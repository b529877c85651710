package results

import (
	"context"
	"log/slog"
	"time"
)

// Purger deletes results past the retention window on a fixed cadence.
type Purger struct {
	repo      Repository
	retention time.Duration
	interval  time.Duration
	logger    *slog.Logger
}

// NewPurger builds a purge job.
func NewPurger(repo Repository, retention, interval time.Duration, logger *slog.Logger) *Purger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Purger{repo: repo, retention: retention, interval: interval, logger: logger}
}

// Run purges once per interval until ctx is cancelled. The first purge
// happens one interval after start.
func (p *Purger) Run(ctx context.Context) {
	if p.interval <= 0 {
		p.logger.Warn("result purge disabled", slog.Duration("interval", p.interval))
		return
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("result purge scheduled", slog.Duration("interval", p.interval), slog.Duration("retention", p.retention))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.RunOnce(ctx)
		}
	}
}

// RunOnce deletes expired results. Failures are logged and swallowed.
func (p *Purger) RunOnce(ctx context.Context) int64 {
	n, err := p.repo.PurgeOlderThan(ctx, p.retention)
	if err != nil {
		p.logger.Error("result purge failed", slog.String("error", err.Error()))
		return 0
	}
	p.logger.Info("purged expired results", slog.Int64("deleted", n))
	return n
}
