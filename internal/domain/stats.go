package domain

// DerivedStats is an ephemeral snapshot of a player's computed stats.
// It is recomputed on demand and never persisted.
type DerivedStats struct {
	BaseAttack  int `json:"base_attack"`
	BaseDefense int `json:"base_defense"`
	BaseHealth  int `json:"base_health"`
	BaseSpeed   int `json:"base_speed"`

	BonusAttack  int `json:"bonus_attack"`
	BonusDefense int `json:"bonus_defense"`
	BonusHealth  int `json:"bonus_health"`
	BonusSpeed   int `json:"bonus_speed"`
}

// TotalAttack returns base plus equipment bonus attack.
func (s DerivedStats) TotalAttack() int { return s.BaseAttack + s.BonusAttack }

// TotalDefense returns base plus equipment bonus defense.
func (s DerivedStats) TotalDefense() int { return s.BaseDefense + s.BonusDefense }

// TotalHealth returns base plus equipment bonus health.
func (s DerivedStats) TotalHealth() int { return s.BaseHealth + s.BonusHealth }

// TotalSpeed returns base plus equipment bonus speed.
func (s DerivedStats) TotalSpeed() int { return s.BaseSpeed + s.BonusSpeed }
