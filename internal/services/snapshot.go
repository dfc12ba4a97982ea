package services

import (
	"sync"
	"time"

	"github.com/reflectboard/server/pkg/logger"
)

// SnapshotRefresher keeps a cached AdminSnapshot warm. A recompute is
// requested on every data mutation and on a periodic tick; each request
// bumps a generation counter, and a finished computation only installs its
// result if no newer request arrived while it ran. Readers always get the
// latest completed snapshot, possibly stale, never partial.
type SnapshotRefresher struct {
	compute  func() (*AdminSnapshot, error)
	interval time.Duration

	mu         sync.RWMutex
	current    *AdminSnapshot
	generation uint64
	installed  uint64

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewSnapshotRefresher(insights *InsightsService, interval time.Duration) *SnapshotRefresher {
	return &SnapshotRefresher{
		compute:  insights.ComputeAdminSnapshot,
		interval: interval,
	}
}

// Current returns the last completed snapshot, or nil before the first
// refresh finishes.
func (r *SnapshotRefresher) Current() *AdminSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Refresh recomputes the snapshot now. A compute error keeps the previous
// snapshot in place; a stale result (a newer refresh was requested after
// this one started) is discarded.
func (r *SnapshotRefresher) Refresh() error {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	r.mu.Unlock()

	snapshot, err := r.compute()
	if err != nil {
		logger.Error().Err(err).Msg("admin snapshot recompute failed, keeping previous snapshot")
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen < r.generation {
		// A newer request is in flight or already done, drop this result.
		return nil
	}
	if gen <= r.installed {
		return nil
	}
	r.current = snapshot
	r.installed = gen
	return nil
}

// Start launches the periodic refresher. Interval <= 0 disables the ticker;
// Refresh can still be called directly.
func (r *SnapshotRefresher) Start() {
	if r.interval <= 0 {
		logger.Info().Msg("snapshot refresher ticker disabled")
		return
	}
	if r.stop != nil {
		return
	}
	r.stop = make(chan struct{})
	r.wg.Add(1)

	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		// Warm the cache before the first tick.
		r.Refresh()

		for {
			select {
			case <-ticker.C:
				r.Refresh()
			case <-r.stop:
				return
			}
		}
	}()

	logger.Infof("[Snapshot] Refresher started, interval %s", r.interval)
}

// Stop halts the ticker and waits for the in-flight refresh to finish.
func (r *SnapshotRefresher) Stop() {
	if r.stop == nil {
		return
	}
	close(r.stop)
	r.wg.Wait()
	r.stop = nil
	logger.Info().Msg("snapshot refresher stopped")
}
