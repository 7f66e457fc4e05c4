// Package catalog provides the static, shared table of item
// definitions. A Catalog is immutable after construction and safe for
// concurrent readers.
package catalog

import (
	"fmt"

	"golang.org/x/text/cases"

	"github.com/novatale/armory/internal/domain"
)

// Catalog is the read-only item definition lookup.
type Catalog struct {
	byID       map[int]domain.Item
	byCategory map[domain.Category][]domain.Item
	byName     map[string]domain.Item // case-folded name -> item
	ordered    []domain.Item          // definition order, for All()
}

var nameFolder = cases.Fold()

// foldName normalizes an item name for case-insensitive lookup.
func foldName(name string) string {
	return nameFolder.String(name)
}

// New builds a Catalog from validated item definitions. Definitions
// with duplicate IDs or names are rejected by the loader before this
// point; New assumes clean input and copies it.
func New(items []domain.Item) *Catalog {
	c := &Catalog{
		byID:       make(map[int]domain.Item, len(items)),
		byCategory: make(map[domain.Category][]domain.Item),
		byName:     make(map[string]domain.Item, len(items)),
		ordered:    append([]domain.Item{}, items...),
	}
	for _, item := range items {
		c.byID[item.ID] = item
		c.byCategory[item.Category] = append(c.byCategory[item.Category], item)
		c.byName[foldName(item.Name)] = item
	}
	return c
}

// Lookup returns the item definition for id.
// Returns domain.ErrItemNotFound for unknown IDs.
func (c *Catalog) Lookup(id int) (domain.Item, error) {
	item, ok := c.byID[id]
	if !ok {
		return domain.Item{}, fmt.Errorf("%w: id %d", domain.ErrItemNotFound, id)
	}
	return item, nil
}

// Contains reports whether id is defined in the catalog.
func (c *Catalog) Contains(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// FindByName returns the item whose name matches, ignoring case.
func (c *Catalog) FindByName(name string) (domain.Item, error) {
	item, ok := c.byName[foldName(name)]
	if !ok {
		return domain.Item{}, fmt.Errorf("%w: %q", domain.ErrItemNotFound, name)
	}
	return item, nil
}

// All returns every item definition in definition order.
func (c *Catalog) All() []domain.Item {
	return append([]domain.Item{}, c.ordered...)
}

// AllOfCategory returns every item definition of the given category.
func (c *Catalog) AllOfCategory(category domain.Category) []domain.Item {
	return append([]domain.Item{}, c.byCategory[category]...)
}

// Len returns the number of item definitions.
func (c *Catalog) Len() int {
	return len(c.byID)
}
