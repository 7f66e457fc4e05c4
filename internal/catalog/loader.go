package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/novatale/armory/internal/domain"
)

// Sentinel errors for the catalog loader
var (
	ErrDuplicateItemID   = errors.New("duplicate item id")
	ErrDuplicateItemName = errors.New("duplicate item name")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config represents the JSON configuration for items
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Items []Def `json:"items"`
}

// Def represents a single item definition in the JSON
type Def struct {
	ID          int    `json:"item_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Value       int    `json:"value"`
}

// Loader handles loading and validating item configuration
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
	Build(config *Config) (*Catalog, error)
}

type itemLoader struct{}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &itemLoader{}
}

// Load reads and parses an items JSON file
func (l *itemLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// Validate checks the item configuration for errors
func (l *itemLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if len(config.Items) == 0 {
		return fmt.Errorf("%w: no items defined", ErrInvalidConfig)
	}

	// Track IDs and names for duplicate detection
	ids := make(map[int]bool, len(config.Items))
	names := make(map[string]bool, len(config.Items))

	for i := range config.Items {
		item := &config.Items[i]

		if err := l.validateItemDef(i, item, ids, names); err != nil {
			return err
		}
	}

	return nil
}

func (l *itemLoader) validateItemDef(index int, item *Def, ids map[int]bool, names map[string]bool) error {
	if item.ID <= 0 {
		return fmt.Errorf("%w: item at index %d has non-positive id %d", ErrInvalidConfig, index, item.ID)
	}

	if ids[item.ID] {
		return fmt.Errorf("%w: %d", ErrDuplicateItemID, item.ID)
	}
	ids[item.ID] = true

	if item.Name == "" {
		return fmt.Errorf("%w: item %d has empty name", ErrInvalidConfig, item.ID)
	}

	folded := foldName(item.Name)
	if names[folded] {
		return fmt.Errorf("%w: %q", ErrDuplicateItemName, item.Name)
	}
	names[folded] = true

	if !domain.Category(item.Category).Valid() {
		return fmt.Errorf("%w: item %q has unknown category %q", ErrInvalidConfig, item.Name, item.Category)
	}

	if item.Value < 0 {
		return fmt.Errorf("%w: item %q has negative value", ErrInvalidConfig, item.Name)
	}

	return nil
}

// Build validates the configuration and constructs the immutable Catalog
func (l *itemLoader) Build(config *Config) (*Catalog, error) {
	if err := l.Validate(config); err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(config.Items))
	for _, def := range config.Items {
		items = append(items, domain.Item{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Category:    domain.Category(def.Category),
			Value:       def.Value,
		})
	}

	return New(items), nil
}

// LoadCatalog is a convenience wrapper: read, validate and build in one step.
func LoadCatalog(path string) (*Catalog, error) {
	loader := NewLoader()
	config, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	return loader.Build(config)
}
