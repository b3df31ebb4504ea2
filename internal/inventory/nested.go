package inventory

import "github.com/osse101/satchel/internal/domain"

// HasNestedBagWithItems reports whether the bag containerID holds, directly
// or through further bags, another bag whose slot array is not empty.
// Empty nested bags never count.
func (e *Engine) HasNestedBagWithItems(containerID string, s *domain.Snapshot) bool {
	return e.hasNestedBagWithItems(containerID, s, map[string]bool{containerID: true})
}

func (e *Engine) hasNestedBagWithItems(containerID string, s *domain.Snapshot, visited map[string]bool) bool {
	for _, slot := range s.BagSlotsByID[containerID] {
		if slot == nil || slot.InstanceID == "" || !e.catalog.IsBag(slot.ItemID) {
			continue
		}
		child := slot.InstanceID
		if visited[child] {
			continue
		}
		visited[child] = true

		for _, inner := range s.BagSlotsByID[child] {
			if inner != nil && inner.Count > 0 {
				return true
			}
		}
		if e.hasNestedBagWithItems(child, s, visited) {
			return true
		}
	}
	return false
}

// buryCheck rejects moving the bag in slot somewhere its contents would drop
// out of view: into the open bag, or into itself
func (e *Engine) buryCheck(s *domain.Snapshot, slot *domain.Slot) error {
	if slot == nil || slot.InstanceID == "" {
		return nil
	}
	if slot.InstanceID == s.EquippedBagID {
		return domain.ErrSelfNesting
	}
	if e.catalog.IsBag(slot.ItemID) && e.HasNestedBagWithItems(slot.InstanceID, s) {
		return domain.ErrNestedBagNotEmpty
	}
	return nil
}
