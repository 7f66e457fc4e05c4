package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Inventory errors
	ErrMsgNotEquippable  = "item is not equippable"
	ErrMsgNotInInventory = "item not in inventory"
	ErrMsgNotEquipped    = "item not equipped"
	ErrMsgNothingRemoved = "no matching items to remove"

	// Profile errors
	ErrMsgProfileNotFound = "profile not found"
	ErrMsgProfileExists   = "profile already exists"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Item errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// Inventory errors
	ErrNotEquippable  = errors.New(ErrMsgNotEquippable)
	ErrNotInInventory = errors.New(ErrMsgNotInInventory)
	ErrNotEquipped    = errors.New(ErrMsgNotEquipped)
	ErrNothingRemoved = errors.New(ErrMsgNothingRemoved)

	// Profile errors
	ErrProfileNotFound = errors.New(ErrMsgProfileNotFound)
	ErrProfileExists   = errors.New(ErrMsgProfileExists)

	// Economy errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
