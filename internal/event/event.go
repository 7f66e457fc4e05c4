package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/novatale/armory/internal/domain"
)

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads for type safety

// InventoryChangedPayloadV1 is the typed payload for inventory change events
type InventoryChangedPayloadV1 struct {
	PlayerID  string `json:"player_id"`
	ItemID    int    `json:"item_id"`
	Delta     int    `json:"delta"` // positive for adds, negative for removals
	Timestamp int64  `json:"timestamp"`
}

// EquipmentChangedPayloadV1 is the typed payload for equipment change events
type EquipmentChangedPayloadV1 struct {
	PlayerID        string `json:"player_id"`
	ItemID          int    `json:"item_id"`
	Equipped        bool   `json:"equipped"` // true on equip, false on unequip
	DisplacedItemID int    `json:"displaced_item_id,omitempty"`
	Timestamp       int64  `json:"timestamp"`
}

// ItemUsedPayloadV1 is the typed payload for item use events
type ItemUsedPayloadV1 struct {
	PlayerID  string            `json:"player_id"`
	Effect    domain.ItemEffect `json:"effect"`
	Timestamp int64             `json:"timestamp"`
}

// PlayerRegisteredPayloadV1 is the typed payload for registration events
type PlayerRegisteredPayloadV1 struct {
	PlayerID  string `json:"player_id"`
	Timestamp int64  `json:"timestamp"`
}

// PlayerLeveledUpPayloadV1 is the typed payload for level-up events
type PlayerLeveledUpPayloadV1 struct {
	PlayerID  string `json:"player_id"`
	OldLevel  int    `json:"old_level"`
	NewLevel  int    `json:"new_level"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewInventoryChangedEvent creates a new inventory changed event
func NewInventoryChangedEvent(playerID string, itemID, delta int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeInventoryChanged),
		Payload: InventoryChangedPayloadV1{
			PlayerID:  playerID,
			ItemID:    itemID,
			Delta:     delta,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewEquipmentChangedEvent creates a new equipment changed event
func NewEquipmentChangedEvent(playerID string, itemID int, equipped bool, displacedItemID int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeEquipmentChanged),
		Payload: EquipmentChangedPayloadV1{
			PlayerID:        playerID,
			ItemID:          itemID,
			Equipped:        equipped,
			DisplacedItemID: displacedItemID,
			Timestamp:       time.Now().Unix(),
		},
	}
}

// NewItemUsedEvent creates a new item used event
func NewItemUsedEvent(playerID string, effect domain.ItemEffect) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeItemUsed),
		Payload: ItemUsedPayloadV1{
			PlayerID:  playerID,
			Effect:    effect,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewPlayerRegisteredEvent creates a new player registered event
func NewPlayerRegisteredEvent(playerID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypePlayerRegistered),
		Payload: PlayerRegisteredPayloadV1{
			PlayerID:  playerID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewPlayerLeveledUpEvent creates a new level up event
func NewPlayerLeveledUpEvent(playerID string, oldLevel, newLevel int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypePlayerLeveledUp),
		Payload: PlayerLeveledUpPayloadV1{
			PlayerID:  playerID,
			OldLevel:  oldLevel,
			NewLevel:  newLevel,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus.
// Handlers run synchronously, in-line with the publishing call.
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("encountered %d errors while handling event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
