package stats

// Per-level base stat increments. Applied once per level above 1 when
// deriving stats; the stored profile base values never change.
const (
	AttackPerLevel  = 3
	DefensePerLevel = 2
	HealthPerLevel  = 15
	SpeedPerLevel   = 1
)
