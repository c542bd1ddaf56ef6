package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"fashion-chatbot-be/internal/dto"
)

type recordingSyncService struct {
	mu        sync.Mutex
	allCalls  int
	syncedIds []int64
	deleted   []int64
}

func (f *recordingSyncService) SyncAll(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allCalls++
	return nil
}

func (f *recordingSyncService) SyncSpecifics(_ context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.syncedIds = append(f.syncedIds, ids...)
	return nil
}

func (f *recordingSyncService) DeleteProducts(_ context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, ids...)
	return nil
}

func (f *recordingSyncService) EnsureCollection(context.Context) error { return nil }

func (f *recordingSyncService) snapshot() (int, []int64, []int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allCalls, append([]int64(nil), f.syncedIds...), append([]int64(nil), f.deleted...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached before timeout")
}

func TestQueueToWorkerRoundTrip(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	recorder := &recordingSyncService{}
	worker := NewSyncWorkerService(pubSub, "SYNC_PRODUCT", recorder, nil, nopLogger{})
	queue := NewSyncQueueService("SYNC_PRODUCT", pubSub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := worker.Consume(ctx); err != nil {
		t.Fatalf("Consume() error = %v", err)
	}

	jobID, err := queue.Enqueue(ctx, dto.SyncActionUpdate, []int64{4, 5})
	if err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if jobID == "" {
		t.Error("Enqueue() returned empty job id")
	}

	if _, err := queue.Enqueue(ctx, dto.SyncActionDelete, []int64{9}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if _, err := queue.Enqueue(ctx, dto.SyncActionUpdateAll, nil); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	waitFor(t, func() bool {
		all, synced, deleted := recorder.snapshot()
		return all == 1 && len(synced) == 2 && len(deleted) == 1
	})

	_, synced, deleted := recorder.snapshot()
	if synced[0] != 4 || synced[1] != 5 {
		t.Errorf("synced = %v, want [4 5]", synced)
	}
	if deleted[0] != 9 {
		t.Errorf("deleted = %v, want [9]", deleted)
	}
}

func TestWorkerIgnoresMalformedJobs(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	recorder := &recordingSyncService{}
	worker := NewSyncWorkerService(pubSub, "SYNC_PRODUCT", recorder, nil, nopLogger{})
	queue := NewSyncQueueService("SYNC_PRODUCT", pubSub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := worker.Consume(ctx); err != nil {
		t.Fatalf("Consume() error = %v", err)
	}

	// Unknown action is acked and dropped, the queue keeps flowing.
	if _, err := queue.Enqueue(ctx, "explode", nil); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if _, err := queue.Enqueue(ctx, dto.SyncActionUpdateAll, nil); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	waitFor(t, func() bool {
		all, _, _ := recorder.snapshot()
		return all == 1
	})
}
