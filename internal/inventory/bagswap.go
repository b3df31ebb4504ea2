package inventory

import (
	"fmt"

	"github.com/osse101/satchel/internal/domain"
)

// PerformBagEquipSwap equips the bag in visible slot dragIndex. The bag that
// was open goes back to the base inventory, into the vacated slot when the
// drag started there. When it cannot be placed the swap is rejected.
func (e *Engine) PerformBagEquipSwap(s *domain.Snapshot, dragIndex int) Result {
	slots, i, inBag, ok := visibleSlot(s, dragIndex)
	if !ok {
		return reject(s, domain.ErrInvalidSlot)
	}
	source := slots[i]
	if source == nil {
		return reject(s, domain.ErrSlotEmpty)
	}
	bag, ok := e.catalog.Bag(source.ItemID)
	if !ok {
		return reject(s, fmt.Errorf("%w: %s", domain.ErrNotABag, source.ItemID))
	}
	if source.InstanceID != "" && source.InstanceID == s.EquippedBagID {
		return reject(s, domain.ErrAlreadyEquipped)
	}

	next := s.Clone()
	nextSlots, ni, _, _ := visibleSlot(next, dragIndex)
	instanceID := source.InstanceID
	if instanceID == "" {
		instanceID = e.minter.Mint(source.ItemID)
	}
	nextSlots[ni] = DecrementOrClear(nextSlots[ni], 1)

	if previous := next.EquippedBagID; previous != "" {
		// Checked after the dragged bag has left, in case it came out of this one.
		if e.HasNestedBagWithItems(previous, next) {
			return reject(s, domain.ErrNestedBagNotEmpty)
		}
		displaced := &domain.Slot{ItemID: BagTypeForInstance(previous), Count: 1, InstanceID: previous}
		next.EquippedBagID = ""
		if !inBag && next.BaseSlots[i] == nil {
			next.BaseSlots[i] = displaced
		} else if left := e.placeInto(next, displaced.ItemID, 1, PlaceOptions{InstanceID: previous, BaseOnly: true}); left > 0 {
			return reject(s, domain.ErrInventoryFull)
		}
	}

	next.EquippedBagID = instanceID
	if _, exists := next.BagSlotsByID[instanceID]; !exists {
		next.BagSlotsByID[instanceID] = make([]*domain.Slot, bag.Capacity)
	}
	return accept(CleanupOrphanedBagSlots(next))
}
