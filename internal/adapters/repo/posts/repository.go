package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/bnema/stockboard-cli/internal/ports"
)

// DefaultKey is the single storage key holding the whole board.
const DefaultKey = "discussionPosts"

type Repository struct {
	store  ports.KeyValueStore
	key    string
	logger *slog.Logger
	mu     sync.Mutex
}

var _ ports.PostRepository = (*Repository)(nil)

func NewRepository(store ports.KeyValueStore, key string, logger *slog.Logger) *Repository {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Repository{store: store, key: key, logger: logger}
}

func (r *Repository) List(ctx context.Context) ([]domain.Post, error) {
	envelope, err := r.read(ctx)
	if err != nil {
		return nil, err
	}

	posts := make([]domain.Post, 0, len(envelope.Posts))
	for _, entry := range envelope.Posts {
		posts = append(posts, fromSchema(entry))
	}

	return posts, nil
}

// Append rewrites the full sequence with the new post at the end. A legacy bare array is
// upgraded to the current envelope by the same write.
func (r *Repository) Append(ctx context.Context, post domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	envelope, err := r.read(ctx)
	if err != nil {
		return err
	}
	if envelope.Version == legacySchemaVersion {
		r.logger.InfoContext(ctx, "migrating legacy posts blob", "key", r.key, "posts", len(envelope.Posts))
	}

	envelope.Posts = append(envelope.Posts, toSchema(post))

	encoded, err := encodeEnvelope(envelope)
	if err != nil {
		return err
	}

	if err := r.store.SetItem(ctx, r.key, encoded); err != nil {
		return fmt.Errorf("write posts: %w", err)
	}

	r.logger.DebugContext(ctx, "post persisted", "key", r.key, "posts", len(envelope.Posts))
	return nil
}

func (r *Repository) read(ctx context.Context) (envelopeSchema, error) {
	raw, err := r.store.GetItem(ctx, r.key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return envelopeSchema{Version: currentSchemaVersion}, nil
		}
		return envelopeSchema{}, fmt.Errorf("read posts: %w", err)
	}

	return decodeEnvelope(raw)
}
