package player

import (
	"context"
	"testing"
	"time"

	"github.com/novatale/armory/internal/domain"
	"github.com/novatale/armory/internal/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedRepo(t *testing.T) (*CachedRepository, *inventory.FakeRepository) {
	t.Helper()
	backing := inventory.NewFakeRepository()
	return NewCachedRepository(backing, 16, time.Minute), backing
}

func TestCachedRepository_ReadThrough(t *testing.T) {
	cached, backing := newCachedRepo(t)
	ctx := context.Background()

	backing.Seed(&domain.Profile{PlayerID: "alice", Gold: 100})

	first, err := cached.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 100, first.Gold)

	// Served from cache even when the backing store errors
	backing.GetErr = assert.AnError
	second, err := cached.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 100, second.Gold)
}

func TestCachedRepository_GetMiss(t *testing.T) {
	cached, _ := newCachedRepo(t)

	_, err := cached.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestCachedRepository_SaveRefreshesCache(t *testing.T) {
	cached, backing := newCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, cached.Save(ctx, &domain.Profile{PlayerID: "alice", Gold: 100}))
	require.NoError(t, cached.Save(ctx, &domain.Profile{PlayerID: "alice", Gold: 200}))

	got, err := cached.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 200, got.Gold)
	assert.Equal(t, 200, backing.Stored("alice").Gold)
}

func TestCachedRepository_CallerMutationDoesNotLeakIntoCache(t *testing.T) {
	cached, _ := newCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, cached.Save(ctx, &domain.Profile{PlayerID: "alice", Inventory: []int{1}}))

	got, err := cached.Get(ctx, "alice")
	require.NoError(t, err)
	got.Inventory[0] = 99

	fresh, err := cached.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, fresh.Inventory)
}

func TestCachedRepository_DeleteEvicts(t *testing.T) {
	cached, backing := newCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, cached.Save(ctx, &domain.Profile{PlayerID: "alice"}))
	require.NoError(t, cached.Delete(ctx, "alice"))

	_, err := cached.Get(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	assert.Nil(t, backing.Stored("alice"))
}

func TestCachedRepository_ExistsAndListIDs(t *testing.T) {
	cached, backing := newCachedRepo(t)
	ctx := context.Background()

	backing.Seed(&domain.Profile{PlayerID: "alice"})
	require.NoError(t, cached.Save(ctx, &domain.Profile{PlayerID: "bob"}))

	ok, err := cached.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cached.Exists(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := cached.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, ids)
}
