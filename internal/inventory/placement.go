package inventory

import (
	"fmt"

	"github.com/osse101/satchel/internal/domain"
)

// PlaceOptions tunes where Place deposits units
type PlaceOptions struct {
	// InstanceID restores a specific bag instance into the first empty slot
	// used instead of minting a new one
	InstanceID string
	// PreferBase fills the base inventory before the open bag
	PreferBase bool
	// BaseOnly never touches the open bag
	BaseOnly bool
	// StackLimit overrides the catalog stack limit when positive
	StackLimit int
}

// PlaceResult is the outcome of Place. Remaining units did not fit.
type PlaceResult struct {
	Next      *domain.Snapshot
	Remaining int
	Reason    error
}

// Place deposits amount units of itemID into the visible slots: existing
// stacks first, then empty slots, the open bag ahead of the base inventory
// unless opts says otherwise. Units that do not fit are reported in
// Remaining together with ErrInventoryFull; nothing is ever dropped.
func (e *Engine) Place(s *domain.Snapshot, itemID string, amount int, opts PlaceOptions) PlaceResult {
	if amount <= 0 {
		return PlaceResult{Next: s, Reason: domain.ErrInvalidAmount}
	}
	if _, ok := e.catalog.Item(itemID); !ok {
		return PlaceResult{Next: s, Remaining: amount, Reason: fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)}
	}

	next := s.Clone()
	remaining := e.placeInto(next, itemID, amount, opts)
	if remaining == amount {
		return PlaceResult{Next: s, Remaining: remaining, Reason: domain.ErrInventoryFull}
	}
	res := PlaceResult{Next: next, Remaining: remaining}
	if remaining > 0 {
		res.Reason = domain.ErrInventoryFull
	}
	return res
}

// placeInto is Place without the checks. It writes into n and returns what did not fit.
func (e *Engine) placeInto(n *domain.Snapshot, itemID string, amount int, opts PlaceOptions) int {
	limit := opts.StackLimit
	if limit < 1 {
		limit = e.catalog.StackLimit(itemID)
	}
	isBag := e.catalog.IsBag(itemID)

	var open []*domain.Slot
	// A bag is never restored into its own slot array.
	isSelf := opts.InstanceID != "" && opts.InstanceID == n.EquippedBagID
	if !opts.BaseOnly && !isSelf {
		open = n.OpenBagSlots()
	}
	containers := [][]*domain.Slot{open, n.BaseSlots}
	if opts.PreferBase {
		containers = [][]*domain.Slot{n.BaseSlots, open}
	}

	remaining := amount

	if limit > 1 && !isBag && opts.InstanceID == "" {
		for _, slots := range containers {
			for _, slot := range slots {
				if remaining == 0 {
					return 0
				}
				if slot == nil || slot.ItemID != itemID || slot.Count >= limit {
					continue
				}
				add := min(limit-slot.Count, remaining)
				slot.Count += add
				remaining -= add
			}
		}
	}

	override := opts.InstanceID
	for _, slots := range containers {
		for i := range slots {
			if remaining == 0 {
				return 0
			}
			if slots[i] != nil {
				continue
			}
			take := min(limit, remaining)
			if isBag {
				take = 1
			}
			slot := &domain.Slot{ItemID: itemID, Count: take}
			switch {
			case override != "":
				slot.InstanceID = override
				override = ""
			case isBag:
				slot.InstanceID = e.minter.Mint(itemID)
			}
			slots[i] = slot
			remaining -= take
		}
	}
	return remaining
}
