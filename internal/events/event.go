package events

import "time"

const (
	// TopicOperation carries one event per Shorten/Resolve call.
	TopicOperation = "shortener.operation"
	// TopicFallback carries the single durable-to-memory transition event.
	TopicFallback = "shortener.fallback"
)

// OperationEvent records the outcome of a single core operation.
type OperationEvent struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"requestId,omitempty"`
	Operation  string    `json:"operation"`
	Outcome    string    `json:"outcome"`
	Backend    string    `json:"backend"`
	Code       string    `json:"code,omitempty"`
	DurationMS int64     `json:"durationMs"`
	At         time.Time `json:"at"`
}

// FallbackEvent records the one-way switch from a durable backend to the
// in-memory store. At most one is published per process.
type FallbackEvent struct {
	ID      string    `json:"id"`
	Backend string    `json:"backend"`
	Reason  string    `json:"reason"`
	At      time.Time `json:"at"`
}
