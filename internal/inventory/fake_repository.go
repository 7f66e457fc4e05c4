package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/novatale/armory/internal/domain"
)

// FakeRepository is a stateful in-memory implementation of
// repository.Profile for testing. It clones on Get and Save so tests
// exercise the same read-modify-write cycle as the real stores.
type FakeRepository struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile

	// Optional error injection
	GetErr  error
	SaveErr error
}

// NewFakeRepository creates an empty fake profile repository
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		profiles: make(map[string]*domain.Profile),
	}
}

// Seed stores a profile directly, bypassing error injection
func (f *FakeRepository) Seed(profile *domain.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[profile.PlayerID] = profile.Clone()
}

// Get returns a copy of the stored profile
func (f *FakeRepository) Get(ctx context.Context, playerID string) (*domain.Profile, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	profile, ok := f.profiles[playerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, playerID)
	}
	return profile.Clone(), nil
}

// Save stores a copy of the profile
func (f *FakeRepository) Save(ctx context.Context, profile *domain.Profile) error {
	if f.SaveErr != nil {
		return f.SaveErr
	}
	if profile == nil || profile.PlayerID == "" {
		return domain.ErrInvalidInput
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.profiles[profile.PlayerID] = profile.Clone()
	return nil
}

// Exists reports whether the profile is stored
func (f *FakeRepository) Exists(ctx context.Context, playerID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.profiles[playerID]
	return ok, nil
}

// Delete removes the stored profile
func (f *FakeRepository) Delete(ctx context.Context, playerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.profiles[playerID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, playerID)
	}
	delete(f.profiles, playerID)
	return nil
}

// ListIDs returns the stored player IDs sorted
func (f *FakeRepository) ListIDs(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]string, 0, len(f.profiles))
	for id := range f.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Stored returns a copy of the stored profile for assertions
func (f *FakeRepository) Stored(playerID string) *domain.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()

	profile, ok := f.profiles[playerID]
	if !ok {
		return nil
	}
	return profile.Clone()
}
