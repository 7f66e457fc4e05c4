// Package inventory implements the item operations over a player
// profile: add, remove, equip, unequip and use. Every operation either
// fully succeeds (profile saved, events published) or fully fails with
// a domain error and no state change.
package inventory

import (
	"context"
	"fmt"

	"github.com/novatale/armory/internal/catalog"
	"github.com/novatale/armory/internal/concurrency"
	"github.com/novatale/armory/internal/domain"
	"github.com/novatale/armory/internal/event"
	"github.com/novatale/armory/internal/logger"
	"github.com/novatale/armory/internal/repository"
)

// Entry is one line of a quantity-grouped inventory listing.
type Entry struct {
	Item     domain.Item `json:"item"`
	Quantity int         `json:"quantity"`
}

// Service defines the interface for inventory operations
type Service interface {
	// AddItem appends quantity copies of itemID to the player's inventory.
	AddItem(ctx context.Context, playerID string, itemID, quantity int) error

	// RemoveItem removes up to quantity occurrences of itemID and
	// returns how many were actually removed. Removing fewer than
	// requested is success; removing zero is domain.ErrNothingRemoved.
	RemoveItem(ctx context.Context, playerID string, itemID, quantity int) (int, error)

	// EquipItem moves itemID from inventory to the equipment set,
	// displacing any currently equipped item of the same category back
	// to inventory.
	EquipItem(ctx context.Context, playerID string, itemID int) error

	// UnequipItem returns an equipped item to the inventory.
	UnequipItem(ctx context.Context, playerID string, itemID int) error

	// UseItem consumes one occurrence of itemID and returns the
	// category-tagged effect request for the caller to interpret.
	UseItem(ctx context.Context, playerID string, itemID int) (domain.ItemEffect, error)

	// GetInventory returns the inventory grouped by item, in order of
	// first appearance.
	GetInventory(ctx context.Context, playerID string) ([]Entry, error)

	// GetInventoryCounts returns a map of item ID to held quantity.
	GetInventoryCounts(ctx context.Context, playerID string) (map[int]int, error)

	// GetEquipment returns the currently equipped item definitions.
	GetEquipment(ctx context.Context, playerID string) ([]domain.Item, error)
}

// service implements the Service interface
type service struct {
	repo    repository.Profile
	catalog *catalog.Catalog
	bus     event.Bus
	locks   *concurrency.LockManager
}

// NewService creates a new inventory service
func NewService(repo repository.Profile, cat *catalog.Catalog, bus event.Bus) Service {
	return &service{
		repo:    repo,
		catalog: cat,
		bus:     bus,
		locks:   concurrency.NewLockManager(),
	}
}

// withProfile runs fn against the player's profile under the player
// lock. The profile is saved only when fn returns nil, so a failing
// operation leaves no partial state.
func (s *service) withProfile(ctx context.Context, playerID string, fn func(*domain.Profile) error) error {
	lock := s.locks.GetLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	profile, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return err
	}
	profile.EnsureLists()

	if err := fn(profile); err != nil {
		return err
	}

	return s.repo.Save(ctx, profile)
}

func (s *service) publish(ctx context.Context, e event.Event) {
	log := logger.FromContext(ctx)
	if err := s.bus.Publish(ctx, e); err != nil {
		log.Error("Failed to publish event", "error", err, "event_type", e.Type)
	}
}

func validQuantity(quantity int) error {
	if quantity <= 0 || quantity > domain.MaxTransactionQuantity {
		return fmt.Errorf("%w: quantity %d", domain.ErrInvalidInput, quantity)
	}
	return nil
}

// AddItem appends quantity copies of itemID to the inventory
func (s *service) AddItem(ctx context.Context, playerID string, itemID, quantity int) error {
	log := logger.FromContext(ctx)

	if err := validQuantity(quantity); err != nil {
		return err
	}
	if !s.catalog.Contains(itemID) {
		log.Warn("Item not found", "itemID", itemID)
		return fmt.Errorf("%w: id %d", domain.ErrItemNotFound, itemID)
	}

	err := s.withProfile(ctx, playerID, func(p *domain.Profile) error {
		for i := 0; i < quantity; i++ {
			p.Inventory = append(p.Inventory, itemID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("Item added", "playerID", playerID, "itemID", itemID, "quantity", quantity)
	s.publish(ctx, event.NewInventoryChangedEvent(playerID, itemID, quantity))
	return nil
}

// RemoveItem removes up to quantity occurrences of itemID
func (s *service) RemoveItem(ctx context.Context, playerID string, itemID, quantity int) (int, error) {
	log := logger.FromContext(ctx)

	if err := validQuantity(quantity); err != nil {
		return 0, err
	}

	var removed int
	err := s.withProfile(ctx, playerID, func(p *domain.Profile) error {
		p.Inventory, removed = removeOccurrences(p.Inventory, itemID, quantity)
		if removed == 0 {
			return fmt.Errorf("%w: id %d", domain.ErrNothingRemoved, itemID)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info("Item removed", "playerID", playerID, "itemID", itemID, "removed", removed)
	s.publish(ctx, event.NewInventoryChangedEvent(playerID, itemID, -removed))
	return removed, nil
}

// EquipItem equips itemID, displacing any same-category occupant
func (s *service) EquipItem(ctx context.Context, playerID string, itemID int) error {
	log := logger.FromContext(ctx)

	item, err := s.catalog.Lookup(itemID)
	if err != nil {
		log.Warn("Item not found", "itemID", itemID)
		return err
	}
	if !item.Category.Equippable() {
		log.Warn("Item not equippable", "itemID", itemID, "category", item.Category)
		return fmt.Errorf("%w: %s", domain.ErrNotEquippable, item.Name)
	}

	displaced := 0
	err = s.withProfile(ctx, playerID, func(p *domain.Profile) error {
		if !p.HasItem(itemID) {
			return fmt.Errorf("%w: id %d", domain.ErrNotInInventory, itemID)
		}

		// One slot per category: the old occupant is always displaced
		// back to inventory, never stacked.
		if occupant, ok := s.equippedOfCategory(p, item.Category); ok {
			p.Equipped = removeFirst(p.Equipped, occupant)
			p.Inventory = append(p.Inventory, occupant)
			displaced = occupant
		}

		p.Inventory = removeFirst(p.Inventory, itemID)
		p.Equipped = append(p.Equipped, itemID)
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("Item equipped", "playerID", playerID, "itemID", itemID, "displaced", displaced)
	s.publish(ctx, event.NewInventoryChangedEvent(playerID, itemID, -1))
	s.publish(ctx, event.NewEquipmentChangedEvent(playerID, itemID, true, displaced))
	return nil
}

// UnequipItem returns an equipped item to the inventory
func (s *service) UnequipItem(ctx context.Context, playerID string, itemID int) error {
	log := logger.FromContext(ctx)

	err := s.withProfile(ctx, playerID, func(p *domain.Profile) error {
		if !p.IsEquipped(itemID) {
			return fmt.Errorf("%w: id %d", domain.ErrNotEquipped, itemID)
		}
		p.Equipped = removeFirst(p.Equipped, itemID)
		p.Inventory = append(p.Inventory, itemID)
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("Item unequipped", "playerID", playerID, "itemID", itemID)
	s.publish(ctx, event.NewInventoryChangedEvent(playerID, itemID, 1))
	s.publish(ctx, event.NewEquipmentChangedEvent(playerID, itemID, false, 0))
	return nil
}

// UseItem consumes one occurrence of itemID. The engine does not apply
// any mechanical effect; it reports what was used and lets the caller
// decide what the effect means.
func (s *service) UseItem(ctx context.Context, playerID string, itemID int) (domain.ItemEffect, error) {
	log := logger.FromContext(ctx)

	item, err := s.catalog.Lookup(itemID)
	if err != nil {
		log.Warn("Item not found", "itemID", itemID)
		return domain.ItemEffect{}, err
	}

	err = s.withProfile(ctx, playerID, func(p *domain.Profile) error {
		if !p.HasItem(itemID) {
			return fmt.Errorf("%w: id %d", domain.ErrNotInInventory, itemID)
		}
		p.Inventory = removeFirst(p.Inventory, itemID)
		return nil
	})
	if err != nil {
		return domain.ItemEffect{}, err
	}

	effect := domain.ItemEffect{
		ItemID:   item.ID,
		Name:     item.Name,
		Category: item.Category,
		Value:    item.Value,
	}

	log.Info("Item used", "playerID", playerID, "itemID", itemID, "category", item.Category)
	s.publish(ctx, event.NewInventoryChangedEvent(playerID, itemID, -1))
	s.publish(ctx, event.NewItemUsedEvent(playerID, effect))
	return effect, nil
}

// GetInventory returns the inventory grouped by item in order of first appearance
func (s *service) GetInventory(ctx context.Context, playerID string) ([]Entry, error) {
	log := logger.FromContext(ctx)

	profile, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int)
	order := make([]int, 0)
	for _, itemID := range profile.Inventory {
		if _, seen := counts[itemID]; !seen {
			order = append(order, itemID)
		}
		counts[itemID]++
	}

	entries := make([]Entry, 0, len(order))
	for _, itemID := range order {
		item, err := s.catalog.Lookup(itemID)
		if err != nil {
			log.Warn("Item missing from catalog, skipping", "itemID", itemID)
			continue
		}
		entries = append(entries, Entry{Item: item, Quantity: counts[itemID]})
	}

	return entries, nil
}

// GetInventoryCounts groups the inventory multiset by item ID
func (s *service) GetInventoryCounts(ctx context.Context, playerID string) (map[int]int, error) {
	profile, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int, len(profile.Inventory))
	for _, itemID := range profile.Inventory {
		counts[itemID]++
	}
	return counts, nil
}

// GetEquipment returns the equipped item definitions
func (s *service) GetEquipment(ctx context.Context, playerID string) ([]domain.Item, error) {
	log := logger.FromContext(ctx)

	profile, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(profile.Equipped))
	for _, itemID := range profile.Equipped {
		item, err := s.catalog.Lookup(itemID)
		if err != nil {
			log.Warn("Equipped item missing from catalog, skipping", "itemID", itemID)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// equippedOfCategory finds the equipped item occupying the category
// slot, if any. Stale IDs absent from the catalog never occupy a slot.
func (s *service) equippedOfCategory(p *domain.Profile, category domain.Category) (int, bool) {
	for _, itemID := range p.Equipped {
		item, err := s.catalog.Lookup(itemID)
		if err != nil {
			continue
		}
		if item.Category == category {
			return itemID, true
		}
	}
	return 0, false
}
