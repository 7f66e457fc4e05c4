// Package repository defines persistence interfaces consumed by the
// service layer. Implementations live under internal/database.
package repository

import (
	"context"

	"github.com/novatale/armory/internal/domain"
)

// Profile defines the interface for player profile persistence.
// The persistence key is the player ID; uniqueness across profiles is
// enforced by the registration flow.
type Profile interface {
	// Get returns the profile for playerID, or domain.ErrProfileNotFound.
	Get(ctx context.Context, playerID string) (*domain.Profile, error)

	// Save writes the profile under its player ID, creating or replacing it.
	Save(ctx context.Context, profile *domain.Profile) error

	// Exists reports whether a profile is stored for playerID.
	Exists(ctx context.Context, playerID string) (bool, error)

	// Delete removes the stored profile. Deleting a missing profile
	// returns domain.ErrProfileNotFound.
	Delete(ctx context.Context, playerID string) error

	// ListIDs returns the IDs of every stored profile.
	ListIDs(ctx context.Context) ([]string, error)
}
