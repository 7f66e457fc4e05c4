package metrics

import (
	"context"
	"strconv"

	"github.com/novatale/armory/internal/domain"
	"github.com/novatale/armory/internal/event"
	"github.com/novatale/armory/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []domain.EventType{
		domain.EventTypeInventoryChanged,
		domain.EventTypeEquipmentChanged,
		domain.EventTypeItemUsed,
		domain.EventTypePlayerRegistered,
		domain.EventTypePlayerLeveledUp,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(event.Type(eventType), e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case event.InventoryChangedPayloadV1:
		item := strconv.Itoa(payload.ItemID)
		if payload.Delta > 0 {
			ItemsAdded.WithLabelValues(item).Add(float64(payload.Delta))
		} else if payload.Delta < 0 {
			ItemsRemoved.WithLabelValues(item).Add(float64(-payload.Delta))
		}

	case event.EquipmentChangedPayloadV1:
		if payload.Equipped {
			ItemsEquipped.WithLabelValues(strconv.Itoa(payload.ItemID)).Inc()
		}

	case event.ItemUsedPayloadV1:
		ItemsUsed.WithLabelValues(payload.Effect.Name, string(payload.Effect.Category)).Inc()

	case event.PlayerRegisteredPayloadV1:
		PlayersRegistered.Inc()

	case event.PlayerLeveledUpPayloadV1:
		LevelUps.Add(float64(payload.NewLevel - payload.OldLevel))

	default:
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
