package services

import (
	"errors"
	"testing"
	"time"
)

func TestSnapshotRefresher_InstallsResult(t *testing.T) {
	want := &AdminSnapshot{GeneratedAt: time.Now()}
	r := &SnapshotRefresher{
		compute: func() (*AdminSnapshot, error) { return want, nil },
	}

	if r.Current() != nil {
		t.Fatal("expected nil snapshot before first refresh")
	}
	if err := r.Refresh(); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if r.Current() != want {
		t.Error("expected computed snapshot to be installed")
	}
}

func TestSnapshotRefresher_ErrorKeepsPreviousSnapshot(t *testing.T) {
	first := &AdminSnapshot{GeneratedAt: time.Now()}
	calls := 0
	r := &SnapshotRefresher{
		compute: func() (*AdminSnapshot, error) {
			calls++
			if calls == 1 {
				return first, nil
			}
			return nil, errors.New("database gone")
		},
	}

	if err := r.Refresh(); err != nil {
		t.Fatalf("first Refresh() error = %v", err)
	}
	if err := r.Refresh(); err == nil {
		t.Fatal("second Refresh() expected an error")
	}
	if r.Current() != first {
		t.Error("failed refresh must leave the previous snapshot in place")
	}
}

func TestSnapshotRefresher_StaleResultDiscarded(t *testing.T) {
	stale := &AdminSnapshot{}
	fresh := &AdminSnapshot{GeneratedAt: time.Now()}
	r := &SnapshotRefresher{
		compute: func() (*AdminSnapshot, error) { return fresh, nil },
	}

	// Simulate an older computation finishing after a newer one: the newer
	// request bumped the generation, so the stale install must be dropped.
	r.mu.Lock()
	r.generation = 5
	staleGen := uint64(3)
	r.mu.Unlock()

	if err := r.Refresh(); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	r.mu.Lock()
	if staleGen < r.generation && r.current == stale {
		t.Error("stale snapshot must not displace a newer one")
	}
	if r.current != fresh {
		t.Errorf("expected the newest snapshot to win, got %+v", r.current)
	}
	r.mu.Unlock()
}

func TestSnapshotRefresher_StartStopWithTickerDisabled(t *testing.T) {
	r := &SnapshotRefresher{
		compute:  func() (*AdminSnapshot, error) { return &AdminSnapshot{}, nil },
		interval: 0,
	}

	r.Start()
	r.Stop() // must not panic or block when the ticker never ran
	if r.Current() != nil {
		t.Error("disabled ticker must not refresh on its own")
	}
}

func TestSnapshotRefresher_StartRunsInitialRefresh(t *testing.T) {
	done := make(chan struct{})
	r := &SnapshotRefresher{
		compute: func() (*AdminSnapshot, error) {
			close(done)
			return &AdminSnapshot{}, nil
		},
		interval: time.Hour,
	}

	r.Start()
	defer r.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start() did not trigger the warm-up refresh")
	}
}
