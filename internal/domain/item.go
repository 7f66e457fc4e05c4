package domain

// Category classifies an item and determines which equipment slot it
// occupies. Equipment is exclusive per category; Consumable items can
// never be equipped.
type Category string

const (
	CategoryWeapon     Category = "weapon"
	CategoryShield     Category = "shield"
	CategoryHelmet     Category = "helmet"
	CategoryArmor      Category = "armor"
	CategoryBoots      Category = "boots"
	CategoryAccessory  Category = "accessory"
	CategoryConsumable Category = "consumable"
)

// Categories lists every valid item category.
var Categories = []Category{
	CategoryWeapon,
	CategoryShield,
	CategoryHelmet,
	CategoryArmor,
	CategoryBoots,
	CategoryAccessory,
	CategoryConsumable,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Equippable reports whether items of this category can occupy an
// equipment slot.
func (c Category) Equippable() bool {
	return c.Valid() && c != CategoryConsumable
}

// Item is an immutable item definition looked up by ID.
// Value is the magnitude used for stat bonuses (equipment) and
// economic calculations (consumables).
type Item struct {
	ID          int      `json:"item_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Value       int      `json:"value"`
}
