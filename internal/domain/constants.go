package domain

// New-profile defaults. Registration seeds every profile with these
// values; the stat calculator scales the base stats by level on read.
const (
	StartingLevel      = 1
	StartingGold       = 1000
	StartingExperience = 0

	// Experience required to go from level 1 to level 2. Each further
	// level requires 1.5x the previous amount, truncating.
	BaseExperienceToNextLevel = 100

	DefaultBaseAttack  = 10
	DefaultBaseDefense = 5
	DefaultBaseHealth  = 100
	DefaultBaseSpeed   = 10
)

// MaxTransactionQuantity bounds a single add/remove/use request.
// The inventory itself is unbounded.
const MaxTransactionQuantity = 10000
