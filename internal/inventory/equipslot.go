package inventory

import "github.com/osse101/satchel/internal/domain"

// ResolveTargetSlot picks the equipment slot for an item. An explicit slot
// wins over type tags. When the primary slot of a left/right family is taken
// and its partner is free, the partner is chosen.
func (e *Engine) ResolveTargetSlot(def domain.ItemDef, equipped map[string]*domain.EquippedItem) (string, bool) {
	slot := def.Slot
	if slot == "" {
		for _, tag := range def.Types {
			if mapped, ok := e.catalog.SlotForType(tag); ok {
				slot = mapped
				break
			}
		}
	}
	if slot == "" {
		return "", false
	}
	if partner, ok := domain.DualSlotPairs[slot]; ok && equipped[slot] != nil && equipped[partner] == nil {
		return partner, true
	}
	return slot, true
}

// CanEquipInSlot reports whether def fits slotID, either half of a dual family included
func (e *Engine) CanEquipInSlot(def domain.ItemDef, slotID string) bool {
	fits := func(slot string) bool {
		if slot == slotID {
			return true
		}
		partner, ok := domain.PartnerSlot(slot)
		return ok && partner == slotID
	}

	if def.Slot != "" && fits(def.Slot) {
		return true
	}
	for _, tag := range def.Types {
		if mapped, ok := e.catalog.SlotForType(tag); ok && fits(mapped) {
			return true
		}
	}
	return false
}
