package interfaces

import (
	"context"
	"encoding/json"
	"time"
)

// SideChannelRecord is one record captured by the durable local
// side-channel while the primary store was unavailable.
type SideChannelRecord struct {
	Key       string
	Payload   json.RawMessage
	CreatedAt time.Time
}

// SideChannel is the durable local append-only log used as the fallback
// target when a primary store write fails. A background reconciliation
// pass (out of scope here) merges its contents back into the primary
// store; the workflow only ever appends and inspects.
type SideChannel interface {
	// Append stores a record under the given key. The payload is
	// serialized as JSON.
	Append(ctx context.Context, key string, payload any) error

	// ReadAll returns all records for a key in insertion order
	ReadAll(ctx context.Context, key string) ([]*SideChannelRecord, error)

	// Count returns the number of records for a key
	Count(ctx context.Context, key string) (int64, error)

	// Keys returns all distinct keys present in the channel
	Keys(ctx context.Context) ([]string, error)

	Close() error
}
