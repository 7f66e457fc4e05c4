package schema

// SchemaSQL contains the database schema initialization script.
// Applied idempotently at startup when the postgres backend is selected;
// versioned migrations for existing deployments live under
// internal/database/migrations and are run by the devtool.
const SchemaSQL = `
-- Player Profiles Schema

CREATE TABLE IF NOT EXISTS player_profiles (
    player_id VARCHAR(100) PRIMARY KEY,
    level INTEGER NOT NULL DEFAULT 1,
    current_experience INTEGER NOT NULL DEFAULT 0,
    experience_to_next_level INTEGER NOT NULL DEFAULT 100,
    gold INTEGER NOT NULL DEFAULT 0,
    base_attack INTEGER NOT NULL DEFAULT 0,
    base_defense INTEGER NOT NULL DEFAULT 0,
    base_health INTEGER NOT NULL DEFAULT 0,
    base_speed INTEGER NOT NULL DEFAULT 0,
    inventory_item_ids JSONB NOT NULL DEFAULT '[]',
    equipped_item_ids JSONB NOT NULL DEFAULT '[]',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Index for inventory containment queries
CREATE INDEX IF NOT EXISTS idx_profile_inventory ON player_profiles USING GIN (inventory_item_ids);
`
