package inventory

import "github.com/osse101/satchel/internal/domain"

// ApplyStackDrop resolves dropping source onto target into a move, a stack
// merge or a swap. Inputs are not modified.
func ApplyStackDrop(source, target *domain.Slot, stackLimitOf func(string) int) (*domain.Slot, *domain.Slot, bool) {
	if source == nil {
		return source, target, false
	}
	if target == nil {
		return nil, source.Clone(), true
	}
	if source.ItemID != target.ItemID {
		return target.Clone(), source.Clone(), true
	}

	limit := stackLimitOf(source.ItemID)
	if limit <= 1 && source.InstanceID != target.InstanceID {
		// Two distinct individual items
		return target.Clone(), source.Clone(), true
	}

	room := limit - target.Count
	if room <= 0 {
		return source, target, false
	}
	moved := min(room, source.Count)
	merged := target.Clone()
	merged.Count += moved
	return DecrementOrClear(source, moved), merged, true
}

// DropOnVisibleSlot drops visible slot from onto visible slot to
func (e *Engine) DropOnVisibleSlot(s *domain.Snapshot, from, to int) Result {
	if from == to {
		return reject(s, domain.ErrNoChange)
	}
	fromSlots, fi, fromBag, ok := visibleSlot(s, from)
	if !ok {
		return reject(s, domain.ErrInvalidSlot)
	}
	toSlots, ti, toBag, ok := visibleSlot(s, to)
	if !ok {
		return reject(s, domain.ErrInvalidSlot)
	}
	source, target := fromSlots[fi], toSlots[ti]
	if source == nil {
		return reject(s, domain.ErrSlotEmpty)
	}

	newSource, newTarget, changed := ApplyStackDrop(source, target, e.catalog.StackLimit)
	if !changed {
		return reject(s, domain.ErrNoChange)
	}

	// Whatever crosses from base into the open bag must not bury contents.
	if !fromBag && toBag {
		if err := e.buryCheck(s, newTarget); err != nil {
			return reject(s, err)
		}
	}
	if fromBag && !toBag {
		if err := e.buryCheck(s, newSource); err != nil {
			return reject(s, err)
		}
	}

	next := s.Clone()
	nextFrom, nfi, _, _ := visibleSlot(next, from)
	nextTo, nti, _, _ := visibleSlot(next, to)
	nextFrom[nfi] = newSource
	nextTo[nti] = newTarget
	return accept(next)
}
