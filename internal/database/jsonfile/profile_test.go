package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/novatale/armory/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *ProfileRepository {
	t.Helper()
	repo, err := NewProfileRepository(t.TempDir())
	require.NoError(t, err)
	return repo
}

func testProfile(id string) *domain.Profile {
	return &domain.Profile{
		PlayerID:              id,
		Level:                 3,
		CurrentExperience:     40,
		ExperienceToNextLevel: 225,
		Gold:                  800,
		BaseAttack:            10,
		BaseDefense:           5,
		BaseHealth:            100,
		BaseSpeed:             10,
		Inventory:             []int{1, 4, 4},
		Equipped:              []int{2},
	}
}

func TestSaveAndGet_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testProfile("alice")))

	got, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, testProfile("alice"), got)
}

func TestGet_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestGet_NilListsBecomeEmpty(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewProfileRepository(dir)
	require.NoError(t, err)

	// Hand-written save file with absent list fields
	raw := `{"playerId": "bob", "level": 1, "gold": 1000}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bob_data.json"), []byte(raw), 0644))

	got, err := repo.Get(context.Background(), "bob")
	require.NoError(t, err)
	assert.NotNil(t, got.Inventory)
	assert.NotNil(t, got.Equipped)
	assert.Empty(t, got.Inventory)
}

func TestGet_FillsMissingPlayerID(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewProfileRepository(dir)
	require.NoError(t, err)

	raw := `{"level": 2, "gold": 50, "inventoryItemIds": [], "equippedItemIds": []}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "carol_data.json"), []byte(raw), 0644))

	got, err := repo.Get(context.Background(), "carol")
	require.NoError(t, err)
	assert.Equal(t, "carol", got.PlayerID)
}

func TestSave_MissingPlayerID(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Save(context.Background(), &domain.Profile{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExists(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	ok, err := repo.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Save(ctx, testProfile("alice")))

	ok, err = repo.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testProfile("alice")))
	require.NoError(t, repo.Delete(ctx, "alice"))

	_, err := repo.Get(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	err = repo.Delete(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestListIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testProfile("alice")))
	require.NoError(t, repo.Save(ctx, testProfile("bob")))

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, ids)
}

func TestPathLikePlayerIDsAreRejected(t *testing.T) {
	parent := t.TempDir()
	dataDir := filepath.Join(parent, "data")
	repo, err := NewProfileRepository(dataDir)
	require.NoError(t, err)
	ctx := context.Background()

	// A save file one level above the data directory must be unreachable
	outside := filepath.Join(parent, "victim_data.json")
	require.NoError(t, os.WriteFile(outside, []byte(`{"playerId":"victim"}`), 0644))

	for _, id := range []string{"../victim", "..", ".", "a/b", `a\b`, "/etc/passwd"} {
		_, err := repo.Get(ctx, id)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "Get(%q)", id)

		_, err = repo.Exists(ctx, id)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "Exists(%q)", id)

		err = repo.Delete(ctx, id)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "Delete(%q)", id)

		err = repo.Save(ctx, &domain.Profile{PlayerID: id})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "Save(%q)", id)
	}

	_, err = os.Stat(outside)
	assert.NoError(t, err, "file outside the data directory must survive")
}

func TestListIDs_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewProfileRepository(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, repo.Save(context.Background(), testProfile("alice")))

	ids, err := repo.ListIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, ids)
}
