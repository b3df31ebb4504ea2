// Package inventory is the transaction engine for a player's carried items,
// nested bags and equipment. Every operation takes a snapshot and returns a
// new one; the input is never mutated and a rejected operation hands back the
// input pointer unchanged.
package inventory

import (
	"github.com/osse101/satchel/internal/domain"
)

// Catalog is the read-only content lookup the engine depends on
type Catalog interface {
	Item(id string) (domain.ItemDef, bool)
	Bag(id string) (domain.BagDef, bool)
	IsBag(id string) bool
	StackLimit(id string) int
	SlotForType(tag string) (string, bool)
	IsEquipSlot(id string) bool
	BaseSlotCount() int
	StarterKit() []domain.StarterItem
}

// Result is the outcome of a transaction.
// When OK is false, Next is the input snapshot and Reason says why.
type Result struct {
	Next   *domain.Snapshot
	OK     bool
	Reason error
}

// Engine applies inventory transactions against a catalog
type Engine struct {
	catalog Catalog
	minter  *Minter
}

// Option configures an Engine
type Option func(*Engine)

// WithMinter replaces the bag id minter
func WithMinter(m *Minter) Option {
	return func(e *Engine) {
		e.minter = m
	}
}

// NewEngine creates an engine over the given catalog
func NewEngine(catalog Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		minter:  NewMinter(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the content tables the engine was built with
func (e *Engine) Catalog() Catalog {
	return e.catalog
}

func reject(s *domain.Snapshot, reason error) Result {
	return Result{Next: s, Reason: reason}
}

func accept(next *domain.Snapshot) Result {
	return Result{Next: next, OK: true}
}

// visibleSlot resolves a visible index against n.
// The returned slice aliases n's storage, so writes through it change n.
func visibleSlot(n *domain.Snapshot, index int) (slots []*domain.Slot, i int, inBag bool, ok bool) {
	if index < 0 {
		return nil, 0, false, false
	}
	if index < len(n.BaseSlots) {
		return n.BaseSlots, index, false, true
	}
	open := n.OpenBagSlots()
	if j := index - len(n.BaseSlots); j < len(open) {
		return open, j, true, true
	}
	return nil, 0, false, false
}

// BagTypeForInstance resolves the bag type behind an instance id.
// Ids without a minted suffix are taken to be the bare bag type.
func BagTypeForInstance(instanceID string) string {
	if bagType, ok := BagTypeOf(instanceID); ok {
		return migrateItemID(bagType)
	}
	return migrateItemID(instanceID)
}
