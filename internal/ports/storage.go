package ports

import "context"

// DurableStorage is a local key-value slot store. Each persisted store owns
// exactly one slot, addressed by its name (e.g. "task-store").
// Implementations must be safe for concurrent use.
type DurableStorage interface {
	// GetItem returns the bytes stored under key.
	// Returns an error wrapping domain.ErrNotFound if the slot is absent.
	GetItem(ctx context.Context, key string) ([]byte, error)

	// SetItem stores value under key, overwriting any previous value.
	SetItem(ctx context.Context, key string, value []byte) error

	// RemoveItem deletes the slot. Removing an absent slot is not an error.
	RemoveItem(ctx context.Context, key string) error
}
