package inventory

import (
	"slices"

	"github.com/osse101/satchel/internal/domain"
)

// NewSnapshot builds a new player's snapshot from the starter kit
func (e *Engine) NewSnapshot() *domain.Snapshot {
	s := e.emptySnapshot()
	for _, entry := range e.catalog.StarterKit() {
		e.placeInto(s, migrateItemID(entry.ItemID), entry.Count, PlaceOptions{BaseOnly: true})
	}
	return s
}

// ConsumeItem removes exactly amount units of itemID from the visible slots,
// taking from the open bag first and from the last slot backwards
func (e *Engine) ConsumeItem(s *domain.Snapshot, itemID string, amount int) Result {
	if amount <= 0 {
		return reject(s, domain.ErrInvalidAmount)
	}
	if CountItem(s, itemID) < amount {
		return reject(s, domain.ErrInsufficientQuantity)
	}

	next := s.Clone()
	remaining := amount
	for _, slots := range [][]*domain.Slot{next.OpenBagSlots(), next.BaseSlots} {
		for i := len(slots) - 1; i >= 0 && remaining > 0; i-- {
			slot := slots[i]
			if slot == nil || slot.ItemID != itemID {
				continue
			}
			take := min(slot.Count, remaining)
			slots[i] = DecrementOrClear(slot, take)
			remaining -= take
		}
	}
	return accept(CleanupOrphanedBagSlots(next))
}

// MarkSeen records item ids the player has been shown
func (e *Engine) MarkSeen(s *domain.Snapshot, itemIDs ...string) Result {
	var fresh []string
	for _, id := range itemIDs {
		if id != "" && !slices.Contains(s.SeenItemIDs, id) && !slices.Contains(fresh, id) {
			fresh = append(fresh, id)
		}
	}
	if len(fresh) == 0 {
		return reject(s, domain.ErrNoChange)
	}
	next := s.Clone()
	next.SeenItemIDs = append(next.SeenItemIDs, fresh...)
	return accept(next)
}
