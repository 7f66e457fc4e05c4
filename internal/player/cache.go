package player

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/novatale/armory/internal/domain"
	"github.com/novatale/armory/internal/repository"
)

// CachedRepository is a read-through cache over a profile repository.
// Entries expire after a TTL so a store modified out-of-band converges.
// Writes go straight to the backing store and refresh the cache entry;
// deletes evict.
type CachedRepository struct {
	backing repository.Profile
	cache   *expirable.LRU[string, *domain.Profile]
}

// NewCachedRepository wraps backing with an expirable LRU of the given
// size and TTL.
func NewCachedRepository(backing repository.Profile, size int, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		backing: backing,
		cache:   expirable.NewLRU[string, *domain.Profile](size, nil, ttl),
	}
}

// Get returns the cached profile or falls through to the backing store
func (r *CachedRepository) Get(ctx context.Context, playerID string) (*domain.Profile, error) {
	if profile, ok := r.cache.Get(playerID); ok {
		return profile.Clone(), nil
	}

	profile, err := r.backing.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	r.cache.Add(playerID, profile.Clone())
	return profile, nil
}

// Save writes through to the backing store and refreshes the cache
func (r *CachedRepository) Save(ctx context.Context, profile *domain.Profile) error {
	if err := r.backing.Save(ctx, profile); err != nil {
		return err
	}
	r.cache.Add(profile.PlayerID, profile.Clone())
	return nil
}

// Exists consults the cache before the backing store
func (r *CachedRepository) Exists(ctx context.Context, playerID string) (bool, error) {
	if _, ok := r.cache.Get(playerID); ok {
		return true, nil
	}
	return r.backing.Exists(ctx, playerID)
}

// Delete removes from the backing store and evicts the cache entry
func (r *CachedRepository) Delete(ctx context.Context, playerID string) error {
	if err := r.backing.Delete(ctx, playerID); err != nil {
		return err
	}
	r.cache.Remove(playerID)
	return nil
}

// ListIDs always hits the backing store; the cache holds a subset
func (r *CachedRepository) ListIDs(ctx context.Context) ([]string, error) {
	return r.backing.ListIDs(ctx)
}
