package event

import (
	"context"
	"errors"
	"testing"

	"github.com/novatale/armory/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()

	var received []Event
	bus.Subscribe(Type(domain.EventTypeInventoryChanged), func(ctx context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	err := bus.Publish(context.Background(), NewInventoryChangedEvent("alice", 1, 2))
	require.NoError(t, err)

	require.Len(t, received, 1)
	payload, ok := received[0].Payload.(InventoryChangedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, "alice", payload.PlayerID)
	assert.Equal(t, 1, payload.ItemID)
	assert.Equal(t, 2, payload.Delta)
	assert.Equal(t, EventSchemaVersion, received[0].Version)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	err := bus.Publish(context.Background(), NewPlayerRegisteredEvent("bob"))
	assert.NoError(t, err)
}

func TestMemoryBus_HandlerErrorsAggregated(t *testing.T) {
	bus := NewMemoryBus()

	calls := 0
	bus.Subscribe(Type(domain.EventTypeEquipmentChanged), func(ctx context.Context, e Event) error {
		calls++
		return errors.New("boom")
	})
	bus.Subscribe(Type(domain.EventTypeEquipmentChanged), func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), NewEquipmentChangedEvent("alice", 1, true, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 errors")
	assert.Equal(t, 2, calls)
}

func TestMemoryBus_MultipleSubscribersAllCalled(t *testing.T) {
	bus := NewMemoryBus()

	calls := 0
	handler := func(ctx context.Context, e Event) error {
		calls++
		return nil
	}
	bus.Subscribe(Type(domain.EventTypeItemUsed), handler)
	bus.Subscribe(Type(domain.EventTypeItemUsed), handler)

	effect := domain.ItemEffect{ItemID: 4, Category: domain.CategoryConsumable, Value: 5}
	err := bus.Publish(context.Background(), NewItemUsedEvent("alice", effect))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
