package source

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"linkmap/core-go/internal/metrics"
	"linkmap/core-go/internal/overlay"
)

// Watcher periodically re-runs the load+preprocess pass and hands the fresh
// snapshot to apply. A failed or slow load just delays the next snapshot;
// the previous one stays live.
type Watcher struct {
	log      zerolog.Logger
	loader   Loader
	interval time.Duration
	metrics  *metrics.Metrics
	apply    func(*overlay.Snapshot)
}

func NewWatcher(log zerolog.Logger, loader Loader, interval time.Duration, m *metrics.Metrics, apply func(*overlay.Snapshot)) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Watcher{
		log:      log,
		loader:   loader,
		interval: interval,
		metrics:  m,
		apply:    apply,
	}
}

func (w *Watcher) Run(ctx context.Context) {
	if w == nil || w.loader == nil || w.apply == nil {
		return
	}

	timer := time.NewTimer(w.interval)
	defer timer.Stop()

	var consecutiveFailures int
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		snap, err := Refresh(ctx, w.loader, w.metrics)
		if err != nil {
			consecutiveFailures++
			w.log.Error().Err(err).Int("consecutive_failures", consecutiveFailures).Msg("reload failed")
		} else {
			consecutiveFailures = 0
			w.apply(snap)
			w.log.Info().
				Str("snapshot_id", snap.ID).
				Int("sites", len(snap.Sites)).
				Int("links", len(snap.Links)).
				Int("dropped_unresolved", snap.Stats.Unresolved).
				Int("dropped_rule", snap.Stats.RuleFiltered).
				Msg("snapshot refreshed")
		}

		timer.Reset(backoffDuration(w.interval, consecutiveFailures))
	}
}

func backoffDuration(base time.Duration, failures int) time.Duration {
	if base <= 0 {
		base = 5 * time.Minute
	}
	if failures <= 0 {
		return base
	}

	// Exponential-ish backoff: base * 2^failures, capped.
	if failures > 6 {
		failures = 6
	}
	d := base * time.Duration(1<<failures)
	if d > 30*time.Minute {
		return 30 * time.Minute
	}
	return d
}
