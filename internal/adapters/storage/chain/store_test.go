package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bnema/stockboard-cli/internal/domain"
	portmocks "github.com/bnema/stockboard-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const postsKey = "discussionPosts"

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().GetItem(mock.Anything, postsKey).Return("from-redis", nil).Once()

	value, err := store.GetItem(context.Background(), postsKey)
	require.NoError(t, err)
	assert.Equal(t, "from-redis", value)
}

func TestStoreGetServesMirrorWhenPrimaryUnreachable(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().GetItem(mock.Anything, postsKey).Return("", errors.New("connection refused")).Once()
	fallback.EXPECT().GetItem(mock.Anything, postsKey).Return("from-file", nil).Once()

	value, err := store.GetItem(context.Background(), postsKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetTreatsPrimaryNotFoundAsAnswer(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().GetItem(mock.Anything, postsKey).Return("", fmt.Errorf("redis item: %w", domain.ErrKeyNotFound)).Once()

	_, err := store.GetItem(context.Background(), postsKey)
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreGetOutageWithEmptyMirrorIsNotAnEmptyStore(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().GetItem(mock.Anything, postsKey).Return("", errors.New("connection refused")).Once()
	fallback.EXPECT().GetItem(mock.Anything, postsKey).Return("", fmt.Errorf("storage item: %w", domain.ErrKeyNotFound)).Once()

	_, err := store.GetItem(context.Background(), postsKey)
	require.ErrorIs(t, err, ErrPrimaryUnavailable)
	assert.NotErrorIs(t, err, domain.ErrKeyNotFound)
	assert.ErrorContains(t, err, "connection refused")
}

func TestStoreGetReportsBothFailures(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().GetItem(mock.Anything, postsKey).Return("", errors.New("redis failed")).Once()
	fallback.EXPECT().GetItem(mock.Anything, postsKey).Return("", errors.New("file failed")).Once()

	_, err := store.GetItem(context.Background(), postsKey)
	require.ErrorIs(t, err, ErrPrimaryUnavailable)
	assert.ErrorContains(t, err, "redis failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStoreSetMirrorsSuccessfulWrites(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().SetItem(mock.Anything, postsKey, "v").Return(nil).Once()
	fallback.EXPECT().SetItem(mock.Anything, postsKey, "v").Return(nil).Once()

	require.NoError(t, store.SetItem(context.Background(), postsKey, "v"))
}

func TestStoreSetSucceedsWhenOnlyMirrorFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().SetItem(mock.Anything, postsKey, "v").Return(nil).Once()
	fallback.EXPECT().SetItem(mock.Anything, postsKey, "v").Return(errors.New("disk full")).Once()

	require.NoError(t, store.SetItem(context.Background(), postsKey, "v"))
}

func TestStoreSetRefusesWriteWhilePrimaryUnreachable(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().SetItem(mock.Anything, postsKey, "v").Return(errors.New("redis down")).Once()

	err := store.SetItem(context.Background(), postsKey, "v")
	require.ErrorIs(t, err, ErrPrimaryUnavailable)
	assert.ErrorContains(t, err, "redis down")
}

func TestStoreSetPassesContextCancellationThrough(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().SetItem(mock.Anything, postsKey, "v").Return(context.Canceled).Once()

	err := store.SetItem(context.Background(), postsKey, "v")
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrPrimaryUnavailable)
}

func TestStoreRemoveMirrorsAndRefusesDuringOutage(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().RemoveItem(mock.Anything, postsKey).Return(nil).Once()
	fallback.EXPECT().RemoveItem(mock.Anything, postsKey).Return(nil).Once()
	require.NoError(t, store.RemoveItem(context.Background(), postsKey))

	primary.EXPECT().RemoveItem(mock.Anything, postsKey).Return(errors.New("redis down")).Once()
	err := store.RemoveItem(context.Background(), postsKey)
	require.ErrorIs(t, err, ErrPrimaryUnavailable)
}

func TestNewStoreCheckedRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, portmocks.NewMockKeyValueStore(t))
	require.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(portmocks.NewMockKeyValueStore(t), nil)
	require.ErrorIs(t, err, errNilFallbackStore)
}
