package inventory

import "github.com/osse101/satchel/internal/domain"

// DecrementOrClear returns a copy of slot with n fewer units, or nil once it runs out
func DecrementOrClear(slot *domain.Slot, n int) *domain.Slot {
	if slot == nil || slot.Count <= n {
		return nil
	}
	next := slot.Clone()
	next.Count -= n
	return next
}

// VisibleSlots returns a copy of the base slots followed by the open bag's slots
func VisibleSlots(s *domain.Snapshot) []*domain.Slot {
	open := s.OpenBagSlots()
	out := make([]*domain.Slot, 0, len(s.BaseSlots)+len(open))
	out = append(out, domain.CloneSlots(s.BaseSlots)...)
	return append(out, domain.CloneSlots(open)...)
}

// CountItem totals the units of itemID across the visible slots
func CountItem(s *domain.Snapshot, itemID string) int {
	total := 0
	for _, slots := range [][]*domain.Slot{s.BaseSlots, s.OpenBagSlots()} {
		for _, slot := range slots {
			if slot != nil && slot.ItemID == itemID {
				total += slot.Count
			}
		}
	}
	return total
}
