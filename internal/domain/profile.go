package domain

// Profile is the mutable per-player record. It is owned exclusively by
// the active session; services serialize access per player.
//
// JSON field names are the persistence contract and must stay stable:
// save files written by earlier builds are loaded by playerId key.
type Profile struct {
	PlayerID              string `json:"playerId"`
	Level                 int    `json:"level"`
	CurrentExperience     int    `json:"currentExperience"`
	ExperienceToNextLevel int    `json:"experienceToNextLevel"`
	Gold                  int    `json:"gold"`

	BaseAttack  int `json:"baseAttack"`
	BaseDefense int `json:"baseDefense"`
	BaseHealth  int `json:"baseHealth"`
	BaseSpeed   int `json:"baseSpeed"`

	// Inventory is an ordered multiset of item IDs; duplicates are
	// allowed and removal walks insertion order.
	Inventory []int `json:"inventoryItemIds"`

	// Equipped holds at most one item ID per non-consumable category.
	Equipped []int `json:"equippedItemIds"`
}

// EnsureLists replaces nil item lists with empty ones. Freshly
// deserialized profiles may carry nil slices; the engine expects
// empty-but-present lists.
func (p *Profile) EnsureLists() {
	if p.Inventory == nil {
		p.Inventory = []int{}
	}
	if p.Equipped == nil {
		p.Equipped = []int{}
	}
}

// HasItem reports whether itemID appears at least once in the inventory.
func (p *Profile) HasItem(itemID int) bool {
	for _, id := range p.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// IsEquipped reports whether itemID is currently equipped.
func (p *Profile) IsEquipped(itemID int) bool {
	for _, id := range p.Equipped {
		if id == itemID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the profile. Stores hand out copies so
// callers never alias persisted state.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.Inventory = append([]int{}, p.Inventory...)
	cp.Equipped = append([]int{}, p.Equipped...)
	return &cp
}
