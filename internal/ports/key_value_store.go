package ports

import "context"

// KeyValueStore is the local storage behind the discussion board. GetItem returns an
// error wrapping domain.ErrKeyNotFound when the key was never written.
type KeyValueStore interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key string, value string) error
	RemoveItem(ctx context.Context, key string) error
}
