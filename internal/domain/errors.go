package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Profile errors
	ErrMsgProfileNotFound = "profile not found"
	ErrMsgProfileExists   = "profile already exists"

	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Slot errors
	ErrMsgInvalidSlot      = "invalid slot index"
	ErrMsgInvalidAmount    = "amount must be positive"
	ErrMsgSlotEmpty        = "slot is empty"
	ErrMsgSlotOccupied     = "slot is occupied"
	ErrMsgNoChange         = "nothing to change"
	ErrMsgUnknownContainer = "unknown container"

	// Inventory errors
	ErrMsgInsufficientQuantity = "insufficient quantity"
	ErrMsgInventoryFull        = "inventory is full"

	// Bag errors
	ErrMsgNotABag           = "item is not a bag"
	ErrMsgSelfNesting       = "a bag cannot be placed inside itself"
	ErrMsgNestedBagNotEmpty = "bag holds a nested bag with items"
	ErrMsgAlreadyEquipped   = "bag is already equipped"

	// Equipment errors
	ErrMsgNotEquippable    = "item cannot be equipped"
	ErrMsgIncompatibleSlot = "item does not fit that equipment slot"
	ErrMsgUnknownEquipSlot = "unknown equipment slot"

	// Save errors
	ErrMsgUnsupportedSaveVersion = "unsupported save version"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Profile errors
	ErrProfileNotFound = errors.New(ErrMsgProfileNotFound)
	ErrProfileExists   = errors.New(ErrMsgProfileExists)

	// Item errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// Slot errors
	ErrInvalidSlot      = errors.New(ErrMsgInvalidSlot)
	ErrInvalidAmount    = errors.New(ErrMsgInvalidAmount)
	ErrSlotEmpty        = errors.New(ErrMsgSlotEmpty)
	ErrSlotOccupied     = errors.New(ErrMsgSlotOccupied)
	ErrNoChange         = errors.New(ErrMsgNoChange)
	ErrUnknownContainer = errors.New(ErrMsgUnknownContainer)

	// Inventory errors
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
	ErrInventoryFull        = errors.New(ErrMsgInventoryFull)

	// Bag errors
	ErrNotABag           = errors.New(ErrMsgNotABag)
	ErrSelfNesting       = errors.New(ErrMsgSelfNesting)
	ErrNestedBagNotEmpty = errors.New(ErrMsgNestedBagNotEmpty)
	ErrAlreadyEquipped   = errors.New(ErrMsgAlreadyEquipped)

	// Equipment errors
	ErrNotEquippable    = errors.New(ErrMsgNotEquippable)
	ErrIncompatibleSlot = errors.New(ErrMsgIncompatibleSlot)
	ErrUnknownEquipSlot = errors.New(ErrMsgUnknownEquipSlot)

	// Save errors
	ErrUnsupportedSaveVersion = errors.New(ErrMsgUnsupportedSaveVersion)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
