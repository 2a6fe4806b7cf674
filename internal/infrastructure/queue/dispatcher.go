package queue

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/intranet-portal/portal-api/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// EntryHandler processes one directory entry.
type EntryHandler func(ctx context.Context, entry domain.DirectoryEntry) error

// Dispatcher fans directory entries out to a fixed set of workers. Entries
// are sharded by account name, so one account is always handled by the same
// worker.
type Dispatcher struct {
	workers []chan domain.DirectoryEntry
	handle  EntryHandler
	log     zerolog.Logger

	wg        sync.WaitGroup
	processed atomic.Int64
	failed    atomic.Int64
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, handle EntryHandler, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.DirectoryEntry, numWorkers),
		handle:  handle,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.DirectoryEntry, channelBuffer)
	}
	return d
}

// Start launches the workers. They stop when ctx is cancelled or after Wait
// closes their queues.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands entry to its worker, blocking while the worker queue is
// full. It returns ctx.Err() if ctx ends first.
func (d *Dispatcher) Enqueue(ctx context.Context, entry domain.DirectoryEntry) error {
	select {
	case d.workers[d.shardIndex(entry.AccountName)] <- entry:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait closes the queues, waits for the workers to drain them and returns
// how many entries were processed and how many failed. Entries still queued
// when the workers stopped on a cancelled context count as failed. Call it
// once, after the last Enqueue.
func (d *Dispatcher) Wait() (processed, failed int) {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()

	dropped := 0
	for _, ch := range d.workers {
		for range ch {
			dropped++
		}
	}
	if dropped > 0 {
		d.failed.Add(int64(dropped))
		d.log.Warn().Int("dropped", dropped).Msg("directory entries left unprocessed after cancellation")
	}
	return int(d.processed.Load()), int(d.failed.Load())
}

func (d *Dispatcher) shardIndex(account string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(account)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.DirectoryEntry) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.handle(ctx, entry); err != nil {
				d.failed.Add(1)
				d.log.Error().Err(err).
					Str("account", entry.AccountName).
					Int("worker_id", id).
					Msg("directory entry failed")
				continue
			}
			d.processed.Add(1)
		}
	}
}
