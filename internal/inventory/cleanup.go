package inventory

import "github.com/osse101/satchel/internal/domain"

// CleanupOrphanedBagSlots drops every bag slot array that no live reference
// reaches. Roots are the equipped bag, base slots and equipped items; bag
// arrays only count as references once their own bag is reachable, so an
// orphan's children go with it and a second sweep finds nothing left.
// The input is returned as-is when nothing is dropped.
func CleanupOrphanedBagSlots(s *domain.Snapshot) *domain.Snapshot {
	reachable := make(map[string]bool, len(s.BagSlotsByID))
	var queue []string
	mark := func(id string) {
		if id == "" || reachable[id] {
			return
		}
		reachable[id] = true
		queue = append(queue, id)
	}

	mark(s.EquippedBagID)
	for _, slot := range s.BaseSlots {
		if slot != nil {
			mark(slot.InstanceID)
		}
	}
	for _, item := range s.EquippedItems {
		if item != nil {
			mark(item.InstanceID)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, slot := range s.BagSlotsByID[id] {
			if slot != nil {
				mark(slot.InstanceID)
			}
		}
	}

	orphaned := false
	for id := range s.BagSlotsByID {
		if !reachable[id] {
			orphaned = true
			break
		}
	}
	if !orphaned {
		return s
	}

	next := s.Clone()
	for id := range next.BagSlotsByID {
		if !reachable[id] {
			delete(next.BagSlotsByID, id)
		}
	}
	return next
}
