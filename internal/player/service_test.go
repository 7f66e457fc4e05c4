package player

import (
	"context"
	"testing"

	"github.com/novatale/armory/internal/catalog"
	"github.com/novatale/armory/internal/domain"
	"github.com/novatale/armory/internal/event"
	"github.com/novatale/armory/internal/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]domain.Item{
		{ID: 1, Name: "Iron Sword", Category: domain.CategoryWeapon, Value: 10},
		{ID: 2, Name: "Oak Shield", Category: domain.CategoryShield, Value: 8},
		{ID: 3, Name: "Leather Armor", Category: domain.CategoryArmor, Value: 12},
		{ID: 4, Name: "Health Potion", Category: domain.CategoryConsumable, Value: 5},
		{ID: 8, Name: "Gold Amulet", Category: domain.CategoryAccessory, Value: 50},
	})
}

func newTestService(t *testing.T) (Service, *inventory.FakeRepository, *event.MemoryBus) {
	t.Helper()
	repo := inventory.NewFakeRepository()
	bus := event.NewMemoryBus()
	return NewService(repo, testCatalog(), bus), repo, bus
}

func TestRegister_SeedsStartingProfile(t *testing.T) {
	svc, repo, bus := newTestService(t)

	var registered []event.Event
	bus.Subscribe(event.Type(domain.EventTypePlayerRegistered), func(ctx context.Context, e event.Event) error {
		registered = append(registered, e)
		return nil
	})

	profile, err := svc.Register(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", profile.PlayerID)
	assert.Equal(t, domain.StartingLevel, profile.Level)
	assert.Equal(t, domain.StartingGold, profile.Gold)
	assert.Equal(t, domain.BaseExperienceToNextLevel, profile.ExperienceToNextLevel)
	assert.Equal(t, StartingKit, profile.Inventory)
	assert.Empty(t, profile.Equipped)

	stored := repo.Stored("alice")
	require.NotNil(t, stored)
	assert.Equal(t, StartingKit, stored.Inventory)

	require.Len(t, registered, 1)
}

func TestRegister_ExistingPlayerFails(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrProfileExists)
}

func TestRegister_InvalidPlayerID(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, id := range []string{"", "  ", " alice", "alice "} {
		_, err := svc.Register(ctx, id)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "id %q", id)
	}

	long := make([]byte, MaxPlayerIDLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.Register(ctx, string(long))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_PathLikePlayerIDFails(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, id := range []string{"../victim", "..", ".", "a/b", `a\b`, "/etc/passwd"} {
		_, err := svc.Register(ctx, id)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "id %q", id)
	}
}

func TestLogin_ReturnsStoredProfile(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice")
	require.NoError(t, err)

	profile, err := svc.Login(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.PlayerID)
	assert.Equal(t, StartingKit, profile.Inventory)
}

func TestLogin_UnknownPlayer(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestLogout_PersistsProfile(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, "alice"))

	assert.NotNil(t, repo.Stored("alice"))
}

func TestDelete_RemovesProfile(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "alice"))

	assert.Nil(t, repo.Stored("alice"))
	assert.ErrorIs(t, svc.Delete(ctx, "alice"), domain.ErrProfileNotFound)
}

func TestListPlayers(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, id := range []string{"carol", "alice", "bob"} {
		_, err := svc.Register(ctx, id)
		require.NoError(t, err)
	}

	ids, err := svc.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, ids)
}

func TestGetStats_ComputesFromLevelAndEquipment(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	repo.Seed(&domain.Profile{
		PlayerID:   "alice",
		Level:      2,
		BaseAttack: 10, BaseDefense: 5, BaseHealth: 100, BaseSpeed: 10,
		Equipped: []int{1},
	})

	derived, err := svc.GetStats(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, 13, derived.BaseAttack)
	assert.Equal(t, 10, derived.BonusAttack)
	assert.Equal(t, 23, derived.TotalAttack())
}

func TestAddExperience_SingleLevelUp(t *testing.T) {
	svc, _, bus := newTestService(t)
	ctx := context.Background()

	var levelUps []event.Event
	bus.Subscribe(event.Type(domain.EventTypePlayerLeveledUp), func(ctx context.Context, e event.Event) error {
		levelUps = append(levelUps, e)
		return nil
	})

	_, err := svc.Register(ctx, "alice")
	require.NoError(t, err)

	profile, err := svc.AddExperience(ctx, "alice", 120)
	require.NoError(t, err)

	assert.Equal(t, 2, profile.Level)
	assert.Equal(t, 20, profile.CurrentExperience)
	assert.Equal(t, 150, profile.ExperienceToNextLevel)

	require.Len(t, levelUps, 1)
	payload := levelUps[0].Payload.(event.PlayerLeveledUpPayloadV1)
	assert.Equal(t, 1, payload.OldLevel)
	assert.Equal(t, 2, payload.NewLevel)
}

func TestAddExperience_MultipleLevelUps(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice")
	require.NoError(t, err)

	// 100 + 150 = 250 carries to level 3 with 10 left over
	profile, err := svc.AddExperience(ctx, "alice", 260)
	require.NoError(t, err)

	assert.Equal(t, 3, profile.Level)
	assert.Equal(t, 10, profile.CurrentExperience)
	assert.Equal(t, 225, profile.ExperienceToNextLevel)
}

func TestAddExperience_NoLevelUp(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice")
	require.NoError(t, err)

	profile, err := svc.AddExperience(ctx, "alice", 99)
	require.NoError(t, err)

	assert.Equal(t, 1, profile.Level)
	assert.Equal(t, 99, profile.CurrentExperience)
}

func TestAddExperience_CorruptThresholdRecovers(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	// A save with a zero threshold must not stall the level-up loop
	repo.Seed(&domain.Profile{
		PlayerID:              "alice",
		Level:                 4,
		CurrentExperience:     0,
		ExperienceToNextLevel: 0,
		Gold:                  100,
	})

	profile, err := svc.AddExperience(ctx, "alice", 30)
	require.NoError(t, err)
	assert.Equal(t, 4, profile.Level)
	assert.Equal(t, 30, profile.CurrentExperience)
	assert.Equal(t, domain.BaseExperienceToNextLevel, profile.ExperienceToNextLevel)

	repo.Seed(&domain.Profile{
		PlayerID:              "bob",
		Level:                 2,
		ExperienceToNextLevel: -50,
	})

	profile, err = svc.AddExperience(ctx, "bob", 120)
	require.NoError(t, err)
	assert.Equal(t, 3, profile.Level)
	assert.Equal(t, 20, profile.CurrentExperience)
	assert.Equal(t, 150, profile.ExperienceToNextLevel)
}

func TestAddExperience_InvalidAmount(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice")
	require.NoError(t, err)

	_, err = svc.AddExperience(ctx, "alice", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.AddExperience(ctx, "alice", -5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGold_AddAndSpend(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice")
	require.NoError(t, err)

	profile, err := svc.AddGold(ctx, "alice", 250)
	require.NoError(t, err)
	assert.Equal(t, domain.StartingGold+250, profile.Gold)

	profile, err = svc.SpendGold(ctx, "alice", 1000)
	require.NoError(t, err)
	assert.Equal(t, 250, profile.Gold)
}

func TestSpendGold_InsufficientFunds(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice")
	require.NoError(t, err)

	_, err = svc.SpendGold(ctx, "alice", domain.StartingGold+1)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Balance untouched on failure
	assert.Equal(t, domain.StartingGold, repo.Stored("alice").Gold)
}
