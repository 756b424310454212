package shortener_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/serroba/shortener-go/internal/events"
	"github.com/serroba/shortener-go/internal/store"
)

// downStore fails every call the way an unreachable durable backend would.
type downStore struct {
	calls atomic.Int64
}

func (d *downStore) unavailable() error {
	d.calls.Add(1)

	return fmt.Errorf("%w: connection refused", store.ErrUnavailable)
}

func (d *downStore) Put(_ context.Context, _, _ string) error {
	return d.unavailable()
}

func (d *downStore) Get(_ context.Context, _ string) (string, error) {
	return "", d.unavailable()
}

func (d *downStore) Exists(_ context.Context, _ string) (bool, error) {
	return false, d.unavailable()
}

func (d *downStore) Ping(_ context.Context) error {
	return d.unavailable()
}

// countingStore wraps a MemoryStore and counts Put calls.
type countingStore struct {
	*store.MemoryStore

	puts atomic.Int64
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: store.NewMemoryStore()}
}

func (c *countingStore) Put(ctx context.Context, code, longURL string) error {
	c.puts.Add(1)

	return c.MemoryStore.Put(ctx, code, longURL)
}

// flakyStore serves from a MemoryStore until tripped, then reports
// unavailability, mimicking a backend that dies mid-process.
type flakyStore struct {
	*store.MemoryStore

	down atomic.Bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: store.NewMemoryStore()}
}

func (f *flakyStore) trip() {
	f.down.Store(true)
}

func (f *flakyStore) err() error {
	return fmt.Errorf("%w: i/o timeout", store.ErrUnavailable)
}

func (f *flakyStore) Put(ctx context.Context, code, longURL string) error {
	if f.down.Load() {
		return f.err()
	}

	return f.MemoryStore.Put(ctx, code, longURL)
}

func (f *flakyStore) Get(ctx context.Context, code string) (string, error) {
	if f.down.Load() {
		return "", f.err()
	}

	return f.MemoryStore.Get(ctx, code)
}

func (f *flakyStore) Exists(ctx context.Context, code string) (bool, error) {
	if f.down.Load() {
		return false, f.err()
	}

	return f.MemoryStore.Exists(ctx, code)
}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu         sync.Mutex
	operations []*events.OperationEvent
	fallbacks  []*events.FallbackEvent
	publishErr error
}

func (c *capturePublisher) publishOperation(event *events.OperationEvent) error {
	if c.publishErr != nil {
		return c.publishErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.operations = append(c.operations, event)

	return nil
}

func (c *capturePublisher) publishFallback(event *events.FallbackEvent) error {
	if c.publishErr != nil {
		return c.publishErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fallbacks = append(c.fallbacks, event)

	return nil
}

func (c *capturePublisher) operationEvents() []*events.OperationEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]*events.OperationEvent(nil), c.operations...)
}

func (c *capturePublisher) fallbackEvents() []*events.FallbackEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]*events.FallbackEvent(nil), c.fallbacks...)
}

var errMock = errors.New("mock error")
