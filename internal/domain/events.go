package domain

// EventType identifies a domain event published on the bus.
type EventType string

const (
	EventTypeInventoryChanged EventType = "inventory.changed"
	EventTypeEquipmentChanged EventType = "equipment.changed"
	EventTypeItemUsed         EventType = "item.used"
	EventTypePlayerRegistered EventType = "player.registered"
	EventTypePlayerLeveledUp  EventType = "player.leveled_up"
)

// ItemEffect is the category-tagged effect request returned by UseItem.
// The engine does not interpret consumable effects; callers decide what
// a used item of a given category and value means.
type ItemEffect struct {
	ItemID   int      `json:"item_id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Value    int      `json:"value"`
}
