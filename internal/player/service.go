// Package player implements the player lifecycle: registration with the
// starting kit, login, logout, deletion, and progression (experience,
// levels, gold). Derived stats are computed on read and never stored.
package player

import (
	"context"
	"fmt"
	"strings"

	"github.com/novatale/armory/internal/catalog"
	"github.com/novatale/armory/internal/concurrency"
	"github.com/novatale/armory/internal/domain"
	"github.com/novatale/armory/internal/event"
	"github.com/novatale/armory/internal/logger"
	"github.com/novatale/armory/internal/repository"
	"github.com/novatale/armory/internal/stats"
)

// Service defines the interface for player lifecycle and progression
type Service interface {
	// Register creates a new profile seeded with the starting kit and
	// starting gold. Registering an existing ID is domain.ErrProfileExists.
	Register(ctx context.Context, playerID string) (*domain.Profile, error)

	// Login loads the profile for an existing player.
	Login(ctx context.Context, playerID string) (*domain.Profile, error)

	// Logout persists the player's profile at end of session.
	Logout(ctx context.Context, playerID string) error

	// Delete removes the player's profile permanently.
	Delete(ctx context.Context, playerID string) error

	// ListPlayers returns the IDs of all registered players.
	ListPlayers(ctx context.Context) ([]string, error)

	// GetProfile returns the stored profile.
	GetProfile(ctx context.Context, playerID string) (*domain.Profile, error)

	// GetStats computes the player's derived stats from level and
	// equipment.
	GetStats(ctx context.Context, playerID string) (domain.DerivedStats, error)

	// AddExperience grants experience, applying as many level-ups as
	// the total supports. Returns the updated profile.
	AddExperience(ctx context.Context, playerID string, amount int) (*domain.Profile, error)

	// AddGold credits gold to the player.
	AddGold(ctx context.Context, playerID string, amount int) (*domain.Profile, error)

	// SpendGold debits gold, failing with domain.ErrInsufficientFunds
	// when the balance does not cover the amount.
	SpendGold(ctx context.Context, playerID string, amount int) (*domain.Profile, error)
}

// service implements the Service interface
type service struct {
	repo    repository.Profile
	catalog *catalog.Catalog
	bus     event.Bus
	locks   *concurrency.LockManager
}

// NewService creates a new player service
func NewService(repo repository.Profile, cat *catalog.Catalog, bus event.Bus) Service {
	return &service{
		repo:    repo,
		catalog: cat,
		bus:     bus,
		locks:   concurrency.NewLockManager(),
	}
}

func validPlayerID(playerID string) error {
	trimmed := strings.TrimSpace(playerID)
	if trimmed == "" || trimmed != playerID {
		return fmt.Errorf("%w: player id must be non-empty without surrounding whitespace", domain.ErrInvalidInput)
	}
	if len(playerID) > MaxPlayerIDLength {
		return fmt.Errorf("%w: player id exceeds %d characters", domain.ErrInvalidInput, MaxPlayerIDLength)
	}
	// The ID is also the save-file name, so path syntax is never legal.
	if playerID == "." || playerID == ".." || strings.ContainsAny(playerID, `/\`) {
		return fmt.Errorf("%w: player id must not contain path separators", domain.ErrInvalidInput)
	}
	return nil
}

// withProfile runs fn against the player's profile under the player
// lock and saves only when fn returns nil.
func (s *service) withProfile(ctx context.Context, playerID string, fn func(*domain.Profile) error) (*domain.Profile, error) {
	lock := s.locks.GetLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	profile, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	profile.EnsureLists()

	if err := fn(profile); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *service) publish(ctx context.Context, e event.Event) {
	log := logger.FromContext(ctx)
	if err := s.bus.Publish(ctx, e); err != nil {
		log.Error("Failed to publish event", "error", err, "event_type", e.Type)
	}
}

// Register creates a new profile with the starting kit
func (s *service) Register(ctx context.Context, playerID string) (*domain.Profile, error) {
	log := logger.FromContext(ctx)

	if err := validPlayerID(playerID); err != nil {
		return nil, err
	}

	lock := s.locks.GetLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	exists, err := s.repo.Exists(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileExists, playerID)
	}

	profile := &domain.Profile{
		PlayerID:              playerID,
		Level:                 domain.StartingLevel,
		CurrentExperience:     domain.StartingExperience,
		ExperienceToNextLevel: domain.BaseExperienceToNextLevel,
		Gold:                  domain.StartingGold,
		BaseAttack:            domain.DefaultBaseAttack,
		BaseDefense:           domain.DefaultBaseDefense,
		BaseHealth:            domain.DefaultBaseHealth,
		BaseSpeed:             domain.DefaultBaseSpeed,
		Inventory:             []int{},
		Equipped:              []int{},
	}

	for _, itemID := range StartingKit {
		if !s.catalog.Contains(itemID) {
			log.Warn("Starting kit item missing from catalog, skipping", "itemID", itemID)
			continue
		}
		profile.Inventory = append(profile.Inventory, itemID)
	}

	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, err
	}

	log.Info("Player registered", "playerID", playerID)
	s.publish(ctx, event.NewPlayerRegisteredEvent(playerID))
	return profile, nil
}

// Login loads an existing profile
func (s *service) Login(ctx context.Context, playerID string) (*domain.Profile, error) {
	log := logger.FromContext(ctx)

	profile, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	profile.EnsureLists()

	log.Info("Player logged in", "playerID", playerID)
	return profile, nil
}

// Logout persists the profile at end of session. The repositories save
// on every mutation, so this is a flush for callers that batch.
func (s *service) Logout(ctx context.Context, playerID string) error {
	log := logger.FromContext(ctx)

	_, err := s.withProfile(ctx, playerID, func(p *domain.Profile) error {
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("Player logged out", "playerID", playerID)
	return nil
}

// Delete removes the profile permanently
func (s *service) Delete(ctx context.Context, playerID string) error {
	log := logger.FromContext(ctx)

	lock := s.locks.GetLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.repo.Delete(ctx, playerID); err != nil {
		return err
	}

	log.Info("Player deleted", "playerID", playerID)
	return nil
}

// ListPlayers returns all registered player IDs
func (s *service) ListPlayers(ctx context.Context) ([]string, error) {
	return s.repo.ListIDs(ctx)
}

// GetProfile returns the stored profile
func (s *service) GetProfile(ctx context.Context, playerID string) (*domain.Profile, error) {
	profile, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	profile.EnsureLists()
	return profile, nil
}

// GetStats computes derived stats from the stored profile
func (s *service) GetStats(ctx context.Context, playerID string) (domain.DerivedStats, error) {
	profile, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return domain.DerivedStats{}, err
	}
	return stats.Compute(profile, s.catalog), nil
}

// AddExperience grants experience and applies pending level-ups
func (s *service) AddExperience(ctx context.Context, playerID string, amount int) (*domain.Profile, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return nil, fmt.Errorf("%w: experience amount %d", domain.ErrInvalidInput, amount)
	}

	oldLevel := 0
	profile, err := s.withProfile(ctx, playerID, func(p *domain.Profile) error {
		oldLevel = p.Level
		// A corrupted save with a non-positive threshold would make the
		// level-up loop spin forever; fall back to the base curve.
		if p.ExperienceToNextLevel <= 0 {
			p.ExperienceToNextLevel = domain.BaseExperienceToNextLevel
		}
		p.CurrentExperience += amount
		for p.CurrentExperience >= p.ExperienceToNextLevel {
			p.CurrentExperience -= p.ExperienceToNextLevel
			p.ExperienceToNextLevel = p.ExperienceToNextLevel * experienceGrowthNumerator / experienceGrowthDenominator
			p.Level++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Experience granted", "playerID", playerID, "amount", amount, "level", profile.Level)
	if profile.Level > oldLevel {
		s.publish(ctx, event.NewPlayerLeveledUpEvent(playerID, oldLevel, profile.Level))
	}
	return profile, nil
}

// AddGold credits gold
func (s *service) AddGold(ctx context.Context, playerID string, amount int) (*domain.Profile, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return nil, fmt.Errorf("%w: gold amount %d", domain.ErrInvalidInput, amount)
	}

	profile, err := s.withProfile(ctx, playerID, func(p *domain.Profile) error {
		p.Gold += amount
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Gold credited", "playerID", playerID, "amount", amount, "balance", profile.Gold)
	return profile, nil
}

// SpendGold debits gold if the balance covers it
func (s *service) SpendGold(ctx context.Context, playerID string, amount int) (*domain.Profile, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return nil, fmt.Errorf("%w: gold amount %d", domain.ErrInvalidInput, amount)
	}

	profile, err := s.withProfile(ctx, playerID, func(p *domain.Profile) error {
		if p.Gold < amount {
			return fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientFunds, p.Gold, amount)
		}
		p.Gold -= amount
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Gold spent", "playerID", playerID, "amount", amount, "balance", profile.Gold)
	return profile, nil
}
