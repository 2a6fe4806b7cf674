package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intranet-portal/portal-api/internal/core/domain"
)

func TestDispatcher_ProcessesEveryEntry(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]int{}

	d := NewDispatcher(3, func(_ context.Context, e domain.DirectoryEntry) error {
		mu.Lock()
		defer mu.Unlock()
		seen[e.AccountName]++
		if e.AccountName == "bad" {
			return errors.New("boom")
		}
		return nil
	}, zerolog.Nop())

	ctx := context.Background()
	d.Start(ctx)
	for i := 0; i < 200; i++ {
		require.NoError(t, d.Enqueue(ctx, domain.DirectoryEntry{AccountName: fmt.Sprintf("user%d", i)}))
	}
	require.NoError(t, d.Enqueue(ctx, domain.DirectoryEntry{AccountName: "bad"}))

	processed, failed := d.Wait()
	assert.Equal(t, 200, processed)
	assert.Equal(t, 1, failed)
	assert.Len(t, seen, 201)
}

func TestDispatcher_ShardIsStablePerAccount(t *testing.T) {
	d := NewDispatcher(5, nil, zerolog.Nop())
	assert.Equal(t, d.shardIndex("jdoe"), d.shardIndex("JDoe"))
	for _, name := range []string{"a", "bb", "ccc", "dddd"} {
		idx := d.shardIndex(name)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 5)
	}
}

func TestDispatcher_EnqueueHonoursCancellation(t *testing.T) {
	d := NewDispatcher(1, func(context.Context, domain.DirectoryEntry) error { return nil }, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Workers are not started, so the queue fills up and Enqueue must give up.
	var err error
	for i := 0; i <= channelBuffer; i++ {
		if err = d.Enqueue(ctx, domain.DirectoryEntry{AccountName: "x"}); err != nil {
			break
		}
	}
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	assert.Len(t, d.workers, defaultWorkers)
}

func TestDispatcher_WaitCountsEntriesLeftAfterCancellation(t *testing.T) {
	d := NewDispatcher(2, func(ctx context.Context, _ domain.DirectoryEntry) error {
		return ctx.Err()
	}, zerolog.Nop())

	const queued = 10
	for i := 0; i < queued; i++ {
		require.NoError(t, d.Enqueue(context.Background(), domain.DirectoryEntry{AccountName: fmt.Sprintf("user%d", i)}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)

	processed, failed := d.Wait()
	assert.Equal(t, 0, processed)
	assert.Equal(t, queued, failed)
}
