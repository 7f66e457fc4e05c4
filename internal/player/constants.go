package player

// StartingKit lists the item IDs granted to every new profile on
// registration, in grant order.
var StartingKit = []int{1, 2, 3, 4}

// experienceGrowthNumerator/Denominator express the 1.5x level curve in
// integer math: next threshold = current * 3 / 2, truncating.
const (
	experienceGrowthNumerator   = 3
	experienceGrowthDenominator = 2
)

// MaxPlayerIDLength bounds the player identifier used as a persistence key.
const MaxPlayerIDLength = 64
