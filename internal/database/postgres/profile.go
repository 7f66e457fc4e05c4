// Package postgres implements the profile repository over PostgreSQL.
// Item ID lists are stored as JSONB so the row mirrors the flat save
// file contract exactly.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novatale/armory/internal/database/schema"
	"github.com/novatale/armory/internal/domain"
)

// ProfileRepository implements repository.Profile for PostgreSQL
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// InitSchema applies the schema initialization script idempotently
func (r *ProfileRepository) InitSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema.SchemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// CheckHealth pings the connection pool
func (r *ProfileRepository) CheckHealth(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Get returns the profile for playerID
func (r *ProfileRepository) Get(ctx context.Context, playerID string) (*domain.Profile, error) {
	query := `
		SELECT player_id, level, current_experience, experience_to_next_level, gold,
		       base_attack, base_defense, base_health, base_speed,
		       inventory_item_ids, equipped_item_ids
		FROM player_profiles
		WHERE player_id = $1
	`

	var profile domain.Profile
	var inventoryJSON, equippedJSON []byte

	err := r.db.QueryRow(ctx, query, playerID).Scan(
		&profile.PlayerID,
		&profile.Level,
		&profile.CurrentExperience,
		&profile.ExperienceToNextLevel,
		&profile.Gold,
		&profile.BaseAttack,
		&profile.BaseDefense,
		&profile.BaseHealth,
		&profile.BaseSpeed,
		&inventoryJSON,
		&equippedJSON,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	if err := json.Unmarshal(inventoryJSON, &profile.Inventory); err != nil {
		return nil, fmt.Errorf("failed to decode inventory for %s: %w", playerID, err)
	}
	if err := json.Unmarshal(equippedJSON, &profile.Equipped); err != nil {
		return nil, fmt.Errorf("failed to decode equipment for %s: %w", playerID, err)
	}
	profile.EnsureLists()

	return &profile, nil
}

// Save upserts the profile row
func (r *ProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	if profile == nil || profile.PlayerID == "" {
		return fmt.Errorf("%w: profile missing player id", domain.ErrInvalidInput)
	}

	inventoryJSON, err := json.Marshal(profile.Inventory)
	if err != nil {
		return fmt.Errorf("failed to encode inventory: %w", err)
	}
	equippedJSON, err := json.Marshal(profile.Equipped)
	if err != nil {
		return fmt.Errorf("failed to encode equipment: %w", err)
	}

	query := `
		INSERT INTO player_profiles (
			player_id, level, current_experience, experience_to_next_level, gold,
			base_attack, base_defense, base_health, base_speed,
			inventory_item_ids, equipped_item_ids, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (player_id) DO UPDATE SET
			level = EXCLUDED.level,
			current_experience = EXCLUDED.current_experience,
			experience_to_next_level = EXCLUDED.experience_to_next_level,
			gold = EXCLUDED.gold,
			base_attack = EXCLUDED.base_attack,
			base_defense = EXCLUDED.base_defense,
			base_health = EXCLUDED.base_health,
			base_speed = EXCLUDED.base_speed,
			inventory_item_ids = EXCLUDED.inventory_item_ids,
			equipped_item_ids = EXCLUDED.equipped_item_ids,
			updated_at = NOW()
	`

	_, err = r.db.Exec(ctx, query,
		profile.PlayerID,
		profile.Level,
		profile.CurrentExperience,
		profile.ExperienceToNextLevel,
		profile.Gold,
		profile.BaseAttack,
		profile.BaseDefense,
		profile.BaseHealth,
		profile.BaseSpeed,
		inventoryJSON,
		equippedJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// Exists reports whether a profile row exists for playerID
func (r *ProfileRepository) Exists(ctx context.Context, playerID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM player_profiles WHERE player_id = $1)`
	if err := r.db.QueryRow(ctx, query, playerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check profile existence: %w", err)
	}
	return exists, nil
}

// Delete removes the profile row for playerID
func (r *ProfileRepository) Delete(ctx context.Context, playerID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM player_profiles WHERE player_id = $1`, playerID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, playerID)
	}
	return nil
}

// ListIDs returns every stored player ID
func (r *ProfileRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT player_id FROM player_profiles ORDER BY player_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan player id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return ids, nil
}
