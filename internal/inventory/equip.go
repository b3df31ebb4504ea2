package inventory

import (
	"fmt"

	"github.com/osse101/satchel/internal/domain"
)

// EquipFromVisibleIndex equips one unit from a visible slot. targetSlot may
// name a specific equipment slot; empty means resolve it from the item.
// Bags are routed to PerformBagEquipSwap.
func (e *Engine) EquipFromVisibleIndex(s *domain.Snapshot, index int, targetSlot string) Result {
	slots, i, _, ok := visibleSlot(s, index)
	if !ok {
		return reject(s, domain.ErrInvalidSlot)
	}
	source := slots[i]
	if source == nil {
		return reject(s, domain.ErrSlotEmpty)
	}

	if e.catalog.IsBag(source.ItemID) {
		if targetSlot != "" && targetSlot != domain.EquipSlotBag {
			return reject(s, domain.ErrIncompatibleSlot)
		}
		return e.PerformBagEquipSwap(s, index)
	}
	if targetSlot == domain.EquipSlotBag {
		return reject(s, domain.ErrNotABag)
	}

	def, ok := e.catalog.Item(source.ItemID)
	if !ok {
		return reject(s, fmt.Errorf("%w: %s", domain.ErrItemNotFound, source.ItemID))
	}

	slotID := targetSlot
	if slotID != "" {
		if !e.catalog.IsEquipSlot(slotID) {
			return reject(s, fmt.Errorf("%w: %s", domain.ErrUnknownEquipSlot, slotID))
		}
		if !e.CanEquipInSlot(def, slotID) {
			return reject(s, domain.ErrIncompatibleSlot)
		}
	} else {
		slotID, ok = e.ResolveTargetSlot(def, s.EquippedItems)
		if !ok || !e.catalog.IsEquipSlot(slotID) {
			return reject(s, domain.ErrNotEquippable)
		}
	}

	next := s.Clone()
	nextSlots, ni, _, _ := visibleSlot(next, index)
	src := nextSlots[ni]
	previous := next.EquippedItems[slotID]

	if previous != nil && src.Count > 1 {
		// The source stays occupied, so the old item needs somewhere else to go.
		if left := e.placeInto(next, previous.ItemID, 1, PlaceOptions{InstanceID: previous.InstanceID}); left > 0 {
			return reject(s, domain.ErrInventoryFull)
		}
		nextSlots[ni] = DecrementOrClear(src, 1)
	} else {
		nextSlots[ni] = DecrementOrClear(src, 1)
		if previous != nil {
			nextSlots[ni] = &domain.Slot{ItemID: previous.ItemID, Count: 1, InstanceID: previous.InstanceID}
		}
	}

	next.EquippedItems[slotID] = &domain.EquippedItem{ItemID: src.ItemID, InstanceID: src.InstanceID}
	return accept(next)
}

// DropEquippedOnVisibleSlot moves an equipped item (or the open bag, for
// "bag") onto a specific visible slot
func (e *Engine) DropEquippedOnVisibleSlot(s *domain.Snapshot, equipSlot string, index int) Result {
	slots, i, inBag, ok := visibleSlot(s, index)
	if !ok {
		return reject(s, domain.ErrInvalidSlot)
	}
	target := slots[i]

	if equipSlot == domain.EquipSlotBag {
		bagID := s.EquippedBagID
		if bagID == "" {
			return reject(s, domain.ErrSlotEmpty)
		}
		if inBag {
			return reject(s, domain.ErrSelfNesting)
		}
		if e.HasNestedBagWithItems(bagID, s) {
			return reject(s, domain.ErrNestedBagNotEmpty)
		}
		if target != nil {
			if e.catalog.IsBag(target.ItemID) {
				return e.PerformBagEquipSwap(s, index)
			}
			return reject(s, domain.ErrSlotOccupied)
		}

		next := s.Clone()
		next.BaseSlots[i] = &domain.Slot{ItemID: BagTypeForInstance(bagID), Count: 1, InstanceID: bagID}
		next.EquippedBagID = ""
		return accept(CleanupOrphanedBagSlots(next))
	}

	if !e.catalog.IsEquipSlot(equipSlot) {
		return reject(s, fmt.Errorf("%w: %s", domain.ErrUnknownEquipSlot, equipSlot))
	}
	equipped := s.EquippedItems[equipSlot]
	if equipped == nil {
		return reject(s, domain.ErrSlotEmpty)
	}

	next := s.Clone()
	nextSlots, ni, _, _ := visibleSlot(next, index)

	switch {
	case target == nil:
		nextSlots[ni] = &domain.Slot{ItemID: equipped.ItemID, Count: 1, InstanceID: equipped.InstanceID}
		delete(next.EquippedItems, equipSlot)

	case target.ItemID == equipped.ItemID && target.InstanceID == "" && equipped.InstanceID == "" &&
		target.Count < e.catalog.StackLimit(target.ItemID):
		nextSlots[ni].Count++
		delete(next.EquippedItems, equipSlot)

	case target.Count == 1 && e.fitsSlot(target.ItemID, equipSlot):
		nextSlots[ni] = &domain.Slot{ItemID: equipped.ItemID, Count: 1, InstanceID: equipped.InstanceID}
		next.EquippedItems[equipSlot] = &domain.EquippedItem{ItemID: target.ItemID, InstanceID: target.InstanceID}

	default:
		return reject(s, domain.ErrSlotOccupied)
	}
	return accept(next)
}

// UnequipToInventory returns an equipped item (or the open bag, for "bag")
// to the inventory, base slots first
func (e *Engine) UnequipToInventory(s *domain.Snapshot, equipSlot string) Result {
	if equipSlot == domain.EquipSlotBag {
		bagID := s.EquippedBagID
		if bagID == "" {
			return reject(s, domain.ErrSlotEmpty)
		}
		if e.HasNestedBagWithItems(bagID, s) {
			return reject(s, domain.ErrNestedBagNotEmpty)
		}

		next := s.Clone()
		next.EquippedBagID = ""
		if left := e.placeInto(next, BagTypeForInstance(bagID), 1, PlaceOptions{InstanceID: bagID, BaseOnly: true}); left > 0 {
			return reject(s, domain.ErrInventoryFull)
		}
		return accept(CleanupOrphanedBagSlots(next))
	}

	if !e.catalog.IsEquipSlot(equipSlot) {
		return reject(s, fmt.Errorf("%w: %s", domain.ErrUnknownEquipSlot, equipSlot))
	}
	equipped := s.EquippedItems[equipSlot]
	if equipped == nil {
		return reject(s, domain.ErrSlotEmpty)
	}

	next := s.Clone()
	delete(next.EquippedItems, equipSlot)
	if left := e.placeInto(next, equipped.ItemID, 1, PlaceOptions{InstanceID: equipped.InstanceID, PreferBase: true}); left > 0 {
		return reject(s, domain.ErrInventoryFull)
	}
	return accept(CleanupOrphanedBagSlots(next))
}

func (e *Engine) fitsSlot(itemID, slotID string) bool {
	if e.catalog.IsBag(itemID) {
		return false
	}
	def, ok := e.catalog.Item(itemID)
	return ok && e.CanEquipInSlot(def, slotID)
}
