package shortener

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/serroba/shortener-go/internal/events"
	"github.com/serroba/shortener-go/internal/store"
	"go.uber.org/zap"
)

var (
	// ErrInvalidURL is returned when the submitted URL is not well-formed.
	ErrInvalidURL = errors.New("invalid url")
	// ErrCollision is returned when two distinct URLs hash to the same code.
	// The stored mapping is never overwritten.
	ErrCollision = errors.New("short code collision")
	// ErrNotFound is returned when a code resolves to nothing.
	ErrNotFound = errors.New("short url not found")
)

// MemoryBackend is the backend name reported when the in-memory store is
// active.
const MemoryBackend = "memory"

// Status describes which backend the service is currently writing to.
type Status struct {
	Backend    string
	Active     string
	FellBack   bool
	MemoryURLs int
}

// Service orchestrates code generation, collision detection and storage. It
// writes to the configured durable backend until that backend reports
// unavailability, then switches to the in-memory store for the rest of the
// process lifetime. The switch is one-way; the durable backend is never
// probed again.
type Service struct {
	durable          store.Store
	backendName      string
	memory           *store.MemoryStore
	codeFor          CodeFunc
	publishOperation events.Publish[events.OperationEvent]
	publishFallback  events.Publish[events.FallbackEvent]
	logger           *zap.Logger
	fellBack         atomic.Bool
}

// NewService creates a new shortener service. A nil durable store means the
// in-memory store is authoritative from the start.
func NewService(
	durable store.Store,
	backendName string,
	memory *store.MemoryStore,
	codeFor CodeFunc,
	publishOperation events.Publish[events.OperationEvent],
	publishFallback events.Publish[events.FallbackEvent],
	logger *zap.Logger,
) *Service {
	if durable == nil {
		backendName = MemoryBackend
	}

	return &Service{
		durable:          durable,
		backendName:      backendName,
		memory:           memory,
		codeFor:          codeFor,
		publishOperation: publishOperation,
		publishFallback:  publishFallback,
		logger:           logger,
	}
}

// Shorten validates the URL, derives its code and stores the mapping on the
// active backend. Resubmitting a stored URL returns the existing code without
// a second write. A distinct URL hashing to a taken code fails with
// ErrCollision.
func (s *Service) Shorten(ctx context.Context, longURL string) (string, error) {
	start := time.Now()

	code, err := s.shorten(ctx, longURL)
	s.publishOp(ctx, "shorten", code, start, err)

	return code, err
}

func (s *Service) shorten(ctx context.Context, longURL string) (string, error) {
	if err := ValidateURL(longURL); err != nil {
		return "", err
	}

	code := s.codeFor(longURL)

	backend, _ := s.active()

	err := s.writeThrough(ctx, backend, code, longURL)
	if errors.Is(err, store.ErrUnavailable) {
		s.fallBack(err)

		err = s.writeThrough(ctx, s.memory, code, longURL)
	}

	if err != nil {
		return "", err
	}

	return code, nil
}

// Resolve returns the long URL stored under code on the active backend.
func (s *Service) Resolve(ctx context.Context, code string) (string, error) {
	start := time.Now()

	longURL, err := s.resolve(ctx, code)
	s.publishOp(ctx, "resolve", code, start, err)

	return longURL, err
}

func (s *Service) resolve(ctx context.Context, code string) (string, error) {
	backend, _ := s.active()

	longURL, err := backend.Get(ctx, code)
	if errors.Is(err, store.ErrUnavailable) {
		s.fallBack(err)

		longURL, err = s.memory.Get(ctx, code)
	}

	if errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, code)
	}

	return longURL, err
}

// Status reports the configured backend, the currently active one and how
// many mappings the in-memory store holds.
func (s *Service) Status() Status {
	_, active := s.active()

	return Status{
		Backend:    s.backendName,
		Active:     active,
		FellBack:   s.durable != nil && s.fellBack.Load(),
		MemoryURLs: s.memory.Len(),
	}
}

func (s *Service) active() (store.Store, string) {
	if s.durable == nil || s.fellBack.Load() {
		return s.memory, MemoryBackend
	}

	return s.durable, s.backendName
}

func (s *Service) writeThrough(ctx context.Context, backend store.Store, code, longURL string) error {
	exists, err := backend.Exists(ctx, code)
	if err != nil {
		return err
	}

	if exists {
		return s.ensureSameMapping(ctx, backend, code, longURL)
	}

	err = backend.Put(ctx, code, longURL)
	if errors.Is(err, store.ErrCodeTaken) {
		// Lost a creation race; the winner may have stored the same URL.
		return s.ensureSameMapping(ctx, backend, code, longURL)
	}

	return err
}

func (s *Service) ensureSameMapping(ctx context.Context, backend store.Store, code, longURL string) error {
	stored, err := backend.Get(ctx, code)
	if err != nil {
		return err
	}

	if stored != longURL {
		return fmt.Errorf("%w: code %q is taken by another url", ErrCollision, code)
	}

	return nil
}

// fallBack flips the active backend to memory. The CAS guarantees the
// warning and the fallback event fire exactly once per process even when
// many requests observe the outage concurrently.
func (s *Service) fallBack(cause error) {
	if !s.fellBack.CompareAndSwap(false, true) {
		return
	}

	s.logger.Warn("durable backend unavailable, switching to memory store",
		zap.String("backend", s.backendName),
		zap.Error(cause),
	)

	event := &events.FallbackEvent{
		ID:      uuid.NewString(),
		Backend: s.backendName,
		Reason:  cause.Error(),
		At:      time.Now().UTC(),
	}

	if err := s.publishFallback(event); err != nil {
		s.logger.Error("failed to publish fallback event", zap.Error(err))
	}
}

func (s *Service) publishOp(ctx context.Context, operation, code string, start time.Time, opErr error) {
	_, backendName := s.active()

	event := &events.OperationEvent{
		ID:         uuid.NewString(),
		RequestID:  events.RequestIDFromContext(ctx),
		Operation:  operation,
		Outcome:    outcome(opErr),
		Backend:    backendName,
		Code:       code,
		DurationMS: time.Since(start).Milliseconds(),
		At:         time.Now().UTC(),
	}

	if err := s.publishOperation(event); err != nil {
		s.logger.Error("failed to publish operation event",
			zap.String("operation", operation),
			zap.Error(err),
		)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidURL):
		return "invalid_url"
	case errors.Is(err, ErrCollision):
		return "collision"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
