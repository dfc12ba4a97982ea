package services

import (
	"context"
	"testing"
	"time"
)

func TestSyncQueue_ProcessesEnqueuedTask(t *testing.T) {
	q := NewSyncQueue()
	got := make(chan *RecomputeTask, 1)
	q.SetProcessor(func(ctx context.Context, task *RecomputeTask) error {
		got <- task
		return nil
	})

	want := &RecomputeTask{Reason: "mutation", RequestedAt: time.Now()}
	if err := q.Enqueue(want); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	select {
	case task := <-got:
		if task.Reason != "mutation" {
			t.Errorf("Reason = %q, expected %q", task.Reason, "mutation")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("processor was never invoked")
	}
}

func TestSyncQueue_NoProcessorDropsTask(t *testing.T) {
	q := NewSyncQueue()
	if err := q.Enqueue(&RecomputeTask{Reason: "schedule"}); err != nil {
		t.Fatalf("Enqueue() without processor should not error, got %v", err)
	}
}

func TestSyncQueue_IsAsync(t *testing.T) {
	if NewSyncQueue().IsAsync() {
		t.Error("sync queue must report IsAsync() == false")
	}
}

func TestSyncQueue_Close(t *testing.T) {
	if err := NewSyncQueue().Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
