package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/bnema/stockboard-cli/internal/ports"
)

// ErrPrimaryUnavailable marks a write refused, or a read that found nothing, while the
// primary backend could not be reached. It never wraps domain.ErrKeyNotFound, so callers
// cannot mistake an outage for an empty store.
var ErrPrimaryUnavailable = errors.New("primary storage backend unavailable")

// Store keeps the primary authoritative and the fallback as a mirror of every successful
// write. Reads degrade to the mirror while the primary is down; writes do not, since a
// value only the mirror holds would be shadowed once the primary answers again.
type Store struct {
	primary ports.KeyValueStore
	mirror  ports.KeyValueStore
	logger  *slog.Logger
}

var _ ports.KeyValueStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary storage backend is nil")
	errNilFallbackStore = errors.New("fallback storage backend is nil")
)

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewStore(primary ports.KeyValueStore, fallback ports.KeyValueStore, opts ...Option) *Store {
	store, err := NewStoreChecked(primary, fallback, opts...)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.KeyValueStore, fallback ports.KeyValueStore, opts ...Option) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	store := &Store{primary: primary, mirror: fallback, logger: slog.Default()}
	for _, opt := range opts {
		opt(store)
	}

	return store, nil
}

func (s *Store) SetItem(ctx context.Context, key string, value string) error {
	if err := s.primary.SetItem(ctx, key, value); err != nil {
		if isCallerAbort(err) {
			return err
		}
		return fmt.Errorf("set %q: %w: %w", key, ErrPrimaryUnavailable, err)
	}

	if err := s.mirror.SetItem(ctx, key, value); err != nil {
		s.logger.WarnContext(ctx, "mirror write failed, fallback copy is stale", "key", key, "error", err)
	}

	return nil
}

// GetItem answers from the primary whenever it responds, including a not-found. Only an
// unreachable primary sends the read to the mirror.
func (s *Store) GetItem(ctx context.Context, key string) (string, error) {
	value, err := s.primary.GetItem(ctx, key)
	if err == nil || errors.Is(err, domain.ErrKeyNotFound) || isCallerAbort(err) {
		return value, err
	}

	mirrored, mirrorErr := s.mirror.GetItem(ctx, key)
	if mirrorErr == nil {
		s.logger.WarnContext(ctx, "primary unreachable, serving mirrored copy", "key", key, "error", err)
		return mirrored, nil
	}
	if errors.Is(mirrorErr, domain.ErrKeyNotFound) {
		return "", fmt.Errorf("get %q: %w: %w", key, ErrPrimaryUnavailable, err)
	}

	return "", fmt.Errorf("get %q: %w: %w; mirror: %v", key, ErrPrimaryUnavailable, err, mirrorErr)
}

func (s *Store) RemoveItem(ctx context.Context, key string) error {
	if err := s.primary.RemoveItem(ctx, key); err != nil {
		if isCallerAbort(err) {
			return err
		}
		return fmt.Errorf("remove %q: %w: %w", key, ErrPrimaryUnavailable, err)
	}

	if err := s.mirror.RemoveItem(ctx, key); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		s.logger.WarnContext(ctx, "mirror remove failed, fallback copy is stale", "key", key, "error", err)
	}

	return nil
}

func isCallerAbort(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
