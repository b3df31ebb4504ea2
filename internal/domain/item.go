package domain

// ItemDef is the static content-table entry for an item type
type ItemDef struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	MaxStack    int      `json:"max_stack" yaml:"max_stack"`
	Slot        string   `json:"slot,omitempty" yaml:"slot,omitempty"`   // explicit equip slot, wins over Types
	Types       []string `json:"types,omitempty" yaml:"types,omitempty"` // type tags resolved through the type→slot table
}

// StackLimit returns the effective stack limit; anything below 1 means not stackable
func (d ItemDef) StackLimit() int {
	if d.MaxStack < 1 {
		return 1
	}
	return d.MaxStack
}

// Stackable reports whether more than one unit fits in a slot
func (d ItemDef) Stackable() bool {
	return d.MaxStack > 1
}

// BagDef describes a bag item type
type BagDef struct {
	ID       string `json:"id" yaml:"id"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

// StarterItem is one entry of the new-player kit
type StarterItem struct {
	ItemID string `json:"id" yaml:"id"`
	Count  int    `json:"count" yaml:"count"`
}
