package posts

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	chainstore "github.com/bnema/stockboard-cli/internal/adapters/storage/chain"
	filestore "github.com/bnema/stockboard-cli/internal/adapters/storage/file"
	redisstore "github.com/bnema/stockboard-cli/internal/adapters/storage/redis"
	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/bnema/stockboard-cli/internal/ports"
	portmocks "github.com/bnema/stockboard-cli/internal/ports/mocks"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFileRepository(t *testing.T) (*Repository, *filestore.Store) {
	t.Helper()

	store, err := filestore.NewStore(filepath.Join(t.TempDir(), "storage.toml"))
	require.NoError(t, err)

	return NewRepository(store, "", nil), store
}

func TestRepositoryListEmptyWhenKeyMissing(t *testing.T) {
	t.Parallel()

	repo, _ := newFileRepository(t)

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestRepositoryRoundTripPreservesOrder(t *testing.T) {
	t.Parallel()

	repo, store := newFileRepository(t)
	want := []domain.Post{
		{Username: "alice", Content: "first"},
		{Username: "bob", Content: "second"},
		{Username: "alice", Content: "first"},
	}
	for _, post := range want {
		require.NoError(t, repo.Append(context.Background(), post))
	}

	reloaded := NewRepository(store, DefaultKey, nil)
	got, err := reloaded.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := store.GetItem(context.Background(), DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"posts":[
		{"username":"alice","content":"first"},
		{"username":"bob","content":"second"},
		{"username":"alice","content":"first"}]}`, raw)
}

func TestRepositoryReadsAndMigratesLegacyArray(t *testing.T) {
	t.Parallel()

	repo, store := newFileRepository(t)
	require.NoError(t, store.SetItem(context.Background(), DefaultKey, `[{"username":"carol","content":"old post"}]`))

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Post{{Username: "carol", Content: "old post"}}, posts)

	require.NoError(t, repo.Append(context.Background(), domain.Post{Username: "dave", Content: "new post"}))

	raw, err := store.GetItem(context.Background(), DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"posts":[
		{"username":"carol","content":"old post"},
		{"username":"dave","content":"new post"}]}`, raw)
}

func TestRepositoryTreatsNullBlobAsEmpty(t *testing.T) {
	t.Parallel()

	repo, store := newFileRepository(t)
	require.NoError(t, store.SetItem(context.Background(), DefaultKey, "null"))

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestRepositoryFailsLoudlyOnCorruptValue(t *testing.T) {
	t.Parallel()

	for name, stored := range map[string]string{
		"truncated envelope": `{"version":1,"posts":[`,
		"truncated array":    `[{"username":"a"`,
		"empty":              "",
		"whitespace":         "  \n\t ",
		"scalar":             `42`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			repo, store := newFileRepository(t)
			require.NoError(t, store.SetItem(context.Background(), DefaultKey, stored))

			_, err := repo.List(context.Background())
			require.ErrorIs(t, err, domain.ErrCorruptStore)

			err = repo.Append(context.Background(), domain.Post{Username: "a", Content: "b"})
			require.ErrorIs(t, err, domain.ErrCorruptStore)

			raw, err := store.GetItem(context.Background(), DefaultKey)
			require.NoError(t, err)
			assert.Equal(t, stored, raw, "corrupt value is never overwritten")
		})
	}
}

func TestRepositoryRejectsFutureEnvelopeVersion(t *testing.T) {
	t.Parallel()

	repo, store := newFileRepository(t)
	require.NoError(t, store.SetItem(context.Background(), DefaultKey, `{"version":2,"posts":[]}`))

	_, err := repo.List(context.Background())
	require.ErrorIs(t, err, domain.ErrUnsupportedData)
}

func TestRepositoryPropagatesStoreFailures(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockKeyValueStore(t)
	repo := NewRepository(store, "board", nil)

	store.EXPECT().GetItem(mock.Anything, "board").Return("", fmt.Errorf("storage item: %w", domain.ErrKeyNotFound)).Once()
	store.EXPECT().SetItem(mock.Anything, "board", `{"version":1,"posts":[{"username":"a","content":"b"}]}`).Return(errors.New("quota exceeded")).Once()

	err := repo.Append(context.Background(), domain.Post{Username: "a", Content: "b"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "write posts: quota exceeded")
}

func TestRepositoryConcurrentAppendsKeepEveryPost(t *testing.T) {
	t.Parallel()

	repo, _ := newFileRepository(t)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.Append(context.Background(), domain.Post{Username: "user", Content: strconv.Itoa(i)}))
		}(i)
	}
	wg.Wait()

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 25)
}

// switchableStore fails every call with errUnreachable while down is set.
type switchableStore struct {
	inner ports.KeyValueStore
	down  atomic.Bool
}

var errUnreachable = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

func (s *switchableStore) GetItem(ctx context.Context, key string) (string, error) {
	if s.down.Load() {
		return "", errUnreachable
	}
	return s.inner.GetItem(ctx, key)
}

func (s *switchableStore) SetItem(ctx context.Context, key string, value string) error {
	if s.down.Load() {
		return errUnreachable
	}
	return s.inner.SetItem(ctx, key, value)
}

func (s *switchableStore) RemoveItem(ctx context.Context, key string) error {
	if s.down.Load() {
		return errUnreachable
	}
	return s.inner.RemoveItem(ctx, key)
}

func newFileStore(t *testing.T, name string) *filestore.Store {
	t.Helper()

	store, err := filestore.NewStore(filepath.Join(t.TempDir(), name))
	require.NoError(t, err)

	return store
}

func TestRepositoryOnChainNeverDropsAcknowledgedPostsAcrossOutage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	primary := &switchableStore{inner: newFileStore(t, "primary.toml")}
	repo := NewRepository(chainstore.NewStore(primary, newFileStore(t, "mirror.toml")), DefaultKey, nil)

	require.NoError(t, repo.Append(ctx, domain.Post{Username: "a", Content: "1"}))
	require.NoError(t, repo.Append(ctx, domain.Post{Username: "b", Content: "2"}))

	primary.down.Store(true)

	during, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Post{{Username: "a", Content: "1"}, {Username: "b", Content: "2"}}, during)

	err = repo.Append(ctx, domain.Post{Username: "c", Content: "3"})
	require.ErrorIs(t, err, chainstore.ErrPrimaryUnavailable)

	primary.down.Store(false)

	require.NoError(t, repo.Append(ctx, domain.Post{Username: "c", Content: "3"}))
	after, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Post{
		{Username: "a", Content: "1"},
		{Username: "b", Content: "2"},
		{Username: "c", Content: "3"},
	}, after)
}

func TestRepositoryOnChainRefusesOutageWithEmptyMirror(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inner := newFileStore(t, "primary.toml")
	require.NoError(t, inner.SetItem(ctx, DefaultKey, `{"version":1,"posts":[{"username":"a","content":"1"}]}`))
	primary := &switchableStore{inner: inner}
	primary.down.Store(true)
	repo := NewRepository(chainstore.NewStore(primary, newFileStore(t, "mirror.toml")), DefaultKey, nil)

	_, err := repo.List(ctx)
	require.ErrorIs(t, err, chainstore.ErrPrimaryUnavailable)
	assert.NotErrorIs(t, err, domain.ErrKeyNotFound)

	err = repo.Append(ctx, domain.Post{Username: "b", Content: "2"})
	require.ErrorIs(t, err, chainstore.ErrPrimaryUnavailable)

	primary.down.Store(false)
	posts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Post{{Username: "a", Content: "1"}}, posts)
}

func TestRepositoryOnRedisChainRoundTripAndOutage(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: 1})
	primary := redisstore.NewStoreWithClient(client, "stockboard-test")
	t.Cleanup(func() { _ = primary.Close() })
	mirror := newFileStore(t, "mirror.toml")
	repo := NewRepository(chainstore.NewStore(primary, mirror), DefaultKey, nil)

	want := []domain.Post{{Username: "alice", Content: "first"}, {Username: "bob", Content: "second"}}
	for _, post := range want {
		require.NoError(t, repo.Append(ctx, post))
	}

	raw, err := mr.Get("stockboard-test:" + DefaultKey)
	require.NoError(t, err)
	mirrored, err := mirror.GetItem(ctx, DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t, raw, mirrored)

	mr.Close()
	during, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, during)
	require.ErrorIs(t, repo.Append(ctx, domain.Post{Username: "carol", Content: "third"}), chainstore.ErrPrimaryUnavailable)

	require.NoError(t, mr.Restart())
	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
