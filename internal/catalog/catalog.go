package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/osse101/satchel/internal/domain"
)

// Sentinel errors for catalog construction
var (
	ErrDuplicateID   = errors.New("duplicate id")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the on-disk shape of the content tables
type Config struct {
	Version       string               `json:"version" yaml:"version"`
	Description   string               `json:"description,omitempty" yaml:"description,omitempty"`
	BaseSlotCount int                  `json:"base_slot_count" yaml:"base_slot_count"`
	EquipSlots    []string             `json:"equip_slots,omitempty" yaml:"equip_slots,omitempty"`
	TypeSlots     map[string]string    `json:"type_slots,omitempty" yaml:"type_slots,omitempty"`
	Items         []domain.ItemDef     `json:"items" yaml:"items"`
	Bags          []domain.BagDef      `json:"bags,omitempty" yaml:"bags,omitempty"`
	StarterKit    []domain.StarterItem `json:"starter_kit,omitempty" yaml:"starter_kit,omitempty"`
}

// Catalog is the read-only lookup over the content tables.
// It is safe for concurrent use once built.
type Catalog struct {
	version       string
	baseSlotCount int
	equipSlots    []string
	equipSet      map[string]struct{}
	typeSlots     map[string]string
	items         map[string]domain.ItemDef
	itemOrder     []string
	bags          map[string]domain.BagDef
	starterKit    []domain.StarterItem
}

// New validates cfg and builds a Catalog from it
func New(cfg *Config) (*Catalog, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	equipSlots := cfg.EquipSlots
	if len(equipSlots) == 0 {
		equipSlots = domain.DefaultEquipSlots
	}

	c := &Catalog{
		version:       cfg.Version,
		baseSlotCount: cfg.BaseSlotCount,
		equipSlots:    slices.Clone(equipSlots),
		equipSet:      make(map[string]struct{}, len(equipSlots)),
		typeSlots:     make(map[string]string, len(cfg.TypeSlots)),
		items:         make(map[string]domain.ItemDef, len(cfg.Items)+len(cfg.Bags)),
		bags:          make(map[string]domain.BagDef, len(cfg.Bags)),
		starterKit:    slices.Clone(cfg.StarterKit),
	}
	for _, s := range equipSlots {
		c.equipSet[s] = struct{}{}
	}
	for k, v := range cfg.TypeSlots {
		c.typeSlots[k] = v
	}
	for _, def := range cfg.Items {
		def.Types = slices.Clone(def.Types)
		c.items[def.ID] = def
		c.itemOrder = append(c.itemOrder, def.ID)
	}
	for _, bag := range cfg.Bags {
		c.bags[bag.ID] = bag
		// Bags are always items; a bag without an item entry gets a bare one.
		if _, ok := c.items[bag.ID]; !ok {
			c.items[bag.ID] = domain.ItemDef{ID: bag.ID, Name: bag.ID, MaxStack: 1}
			c.itemOrder = append(c.itemOrder, bag.ID)
		}
	}
	return c, nil
}

// Validate checks a catalog configuration for errors
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}
	if len(cfg.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoItemsDefined)
	}
	if cfg.BaseSlotCount < 1 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgBadBaseSlotCount)
	}

	equipSlots := cfg.EquipSlots
	if len(equipSlots) == 0 {
		equipSlots = domain.DefaultEquipSlots
	}
	known := func(slot string) bool {
		return slot == domain.EquipSlotBag || slices.Contains(equipSlots, slot)
	}

	ids := make(map[string]bool, len(cfg.Items))
	maxStack := make(map[string]int, len(cfg.Items))
	for i := range cfg.Items {
		item := &cfg.Items[i]
		if item.ID == "" {
			return fmt.Errorf(ErrFmtItemAtIndexEmpty, ErrInvalidConfig, i)
		}
		if ids[item.ID] {
			return fmt.Errorf("%w: item '%s'", ErrDuplicateID, item.ID)
		}
		ids[item.ID] = true
		maxStack[item.ID] = item.MaxStack
		if item.MaxStack < 0 {
			return fmt.Errorf(ErrFmtItemNegativeMaxStack, ErrInvalidConfig, item.ID)
		}
		if item.Slot != "" && !known(item.Slot) {
			return fmt.Errorf(ErrFmtUnknownItemSlot, ErrInvalidConfig, item.ID, item.Slot)
		}
	}

	bagIDs := make(map[string]bool, len(cfg.Bags))
	for _, bag := range cfg.Bags {
		if bagIDs[bag.ID] {
			return fmt.Errorf("%w: bag '%s'", ErrDuplicateID, bag.ID)
		}
		bagIDs[bag.ID] = true
		if bag.Capacity < 1 {
			return fmt.Errorf(ErrFmtBagBadCapacity, ErrInvalidConfig, bag.ID)
		}
		// Every bag unit owns its own slot array, so bags never share a slot.
		if maxStack[bag.ID] > 1 {
			return fmt.Errorf(ErrFmtBagStackable, ErrInvalidConfig, bag.ID, maxStack[bag.ID])
		}
	}

	for typ, slot := range cfg.TypeSlots {
		if !known(slot) {
			return fmt.Errorf(ErrFmtTypeSlotUnknown, ErrInvalidConfig, typ, slot)
		}
	}

	for _, entry := range cfg.StarterKit {
		if !ids[entry.ItemID] && !bagIDs[entry.ItemID] {
			return fmt.Errorf(ErrFmtStarterUnknownItem, ErrInvalidConfig, entry.ItemID)
		}
		if entry.Count < 1 {
			return fmt.Errorf(ErrFmtStarterBadCount, ErrInvalidConfig, entry.ItemID)
		}
	}
	return nil
}

// Version returns the catalog version string
func (c *Catalog) Version() string { return c.version }

// BaseSlotCount returns the length of a player's root inventory
func (c *Catalog) BaseSlotCount() int { return c.baseSlotCount }

// Item looks up an item definition
func (c *Catalog) Item(id string) (domain.ItemDef, bool) {
	def, ok := c.items[id]
	return def, ok
}

// Items returns every item definition in declaration order
func (c *Catalog) Items() []domain.ItemDef {
	out := make([]domain.ItemDef, 0, len(c.itemOrder))
	for _, id := range c.itemOrder {
		out = append(out, c.items[id])
	}
	return out
}

// Bag looks up a bag type
func (c *Catalog) Bag(id string) (domain.BagDef, bool) {
	bag, ok := c.bags[id]
	return bag, ok
}

// IsBag reports whether an item type is a bag
func (c *Catalog) IsBag(id string) bool {
	_, ok := c.bags[id]
	return ok
}

// StackLimit returns the stack limit of an item type, 1 for unknown types and bags
func (c *Catalog) StackLimit(id string) int {
	def, ok := c.items[id]
	if !ok || c.IsBag(id) {
		return 1
	}
	return def.StackLimit()
}

// SlotForType maps a type tag to its equipment slot
func (c *Catalog) SlotForType(tag string) (string, bool) {
	slot, ok := c.typeSlots[tag]
	return slot, ok
}

// EquipSlots returns the character slot taxonomy
func (c *Catalog) EquipSlots() []string { return slices.Clone(c.equipSlots) }

// IsEquipSlot reports whether id is a character slot (the bag pseudo slot excluded)
func (c *Catalog) IsEquipSlot(id string) bool {
	_, ok := c.equipSet[id]
	return ok
}

// StarterKit returns the new-player kit
func (c *Catalog) StarterKit() []domain.StarterItem { return slices.Clone(c.starterKit) }
