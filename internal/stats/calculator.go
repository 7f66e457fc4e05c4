// Package stats derives a player's effective stats from their profile
// and equipped items. Compute is pure: it never mutates the profile and
// the result is never persisted.
package stats

import (
	"github.com/novatale/armory/internal/catalog"
	"github.com/novatale/armory/internal/domain"
)

// Compute returns the derived stat snapshot for a profile.
//
// Base stats scale linearly with level. Equipment bonuses are summed
// per category; an accessory splits its value across attack and
// defense, both halves truncated from the same value (value 7 gives
// +3/+3). Equipped IDs missing from the catalog are skipped so a stale
// save never fails stat computation.
func Compute(profile *domain.Profile, cat *catalog.Catalog) domain.DerivedStats {
	levelsGained := profile.Level - 1

	derived := domain.DerivedStats{
		BaseAttack:  profile.BaseAttack + levelsGained*AttackPerLevel,
		BaseDefense: profile.BaseDefense + levelsGained*DefensePerLevel,
		BaseHealth:  profile.BaseHealth + levelsGained*HealthPerLevel,
		BaseSpeed:   profile.BaseSpeed + levelsGained*SpeedPerLevel,
	}

	for _, itemID := range profile.Equipped {
		item, err := cat.Lookup(itemID)
		if err != nil {
			continue
		}
		applyBonus(&derived, item)
	}

	return derived
}

// applyBonus is the single category-to-stat mapping used everywhere.
func applyBonus(derived *domain.DerivedStats, item domain.Item) {
	switch item.Category {
	case domain.CategoryWeapon:
		derived.BonusAttack += item.Value
	case domain.CategoryShield, domain.CategoryHelmet, domain.CategoryArmor, domain.CategoryBoots:
		derived.BonusDefense += item.Value
	case domain.CategoryAccessory:
		half := item.Value / 2
		derived.BonusAttack += half
		derived.BonusDefense += half
	case domain.CategoryConsumable:
		// Cannot be equipped; contributes nothing if encountered
	}
}
