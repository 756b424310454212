package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no mapping exists for a code.
var ErrNotFound = errors.New("code not found")

// ErrCodeTaken is returned by Put when the code already maps to a different URL.
var ErrCodeTaken = errors.New("code already taken")

// ErrUnavailable wraps any transport or driver failure of a durable store.
// Callers match it with errors.Is and decide the fallback policy; stores
// never retry internally.
var ErrUnavailable = errors.New("backend unavailable")

// Store is the capability contract shared by all backend variants.
//
// Put is conditional: it stores the mapping when code is absent, succeeds as
// a no-op when code already holds the identical URL, and returns ErrCodeTaken
// when code holds a different URL. This closes the check-then-write race for
// every variant.
type Store interface {
	Put(ctx context.Context, code, longURL string) error
	Get(ctx context.Context, code string) (string, error)
	Exists(ctx context.Context, code string) (bool, error)
	Ping(ctx context.Context) error
}
