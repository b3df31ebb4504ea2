package inventory

import (
	"fmt"

	"github.com/osse101/satchel/internal/domain"
)

// DeleteFromInventory destroys up to amount units from one slot of a
// container ("base" or a bag instance id)
func (e *Engine) DeleteFromInventory(s *domain.Snapshot, container string, slotIndex, amount int) Result {
	var slots []*domain.Slot
	if container == domain.ContainerBase {
		slots = s.BaseSlots
	} else {
		var ok bool
		if slots, ok = s.BagSlotsByID[container]; !ok {
			return reject(s, fmt.Errorf("%w: %s", domain.ErrUnknownContainer, container))
		}
	}
	if slotIndex < 0 || slotIndex >= len(slots) {
		return reject(s, domain.ErrInvalidSlot)
	}
	amount = max(amount, 0)
	if amount == 0 {
		return reject(s, domain.ErrInvalidAmount)
	}
	slot := slots[slotIndex]
	if slot == nil {
		return reject(s, domain.ErrSlotEmpty)
	}

	next := s.Clone()
	if container == domain.ContainerBase {
		next.BaseSlots[slotIndex] = DecrementOrClear(slot, amount)
	} else {
		next.BagSlotsByID[container][slotIndex] = DecrementOrClear(slot, amount)
	}
	return accept(CleanupOrphanedBagSlots(next))
}

// DeleteEquipped destroys whatever an equipment slot holds. For "bag" the
// open bag is closed and, unless referenced elsewhere, its contents go too.
func (e *Engine) DeleteEquipped(s *domain.Snapshot, slotID string) Result {
	if slotID == domain.EquipSlotBag {
		if s.EquippedBagID == "" {
			return reject(s, domain.ErrSlotEmpty)
		}
		next := s.Clone()
		next.EquippedBagID = ""
		return accept(CleanupOrphanedBagSlots(next))
	}

	if !e.catalog.IsEquipSlot(slotID) {
		return reject(s, fmt.Errorf("%w: %s", domain.ErrUnknownEquipSlot, slotID))
	}
	if s.EquippedItems[slotID] == nil {
		return reject(s, domain.ErrSlotEmpty)
	}
	next := s.Clone()
	delete(next.EquippedItems, slotID)
	return accept(CleanupOrphanedBagSlots(next))
}
