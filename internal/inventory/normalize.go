package inventory

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/osse101/satchel/internal/domain"
)

// legacyItemIDs rewrites retired item ids on load. It is a one-way content
// migration, not an aliasing mechanism.
var legacyItemIDs = map[string]string{
	"peasant_pouch": "peasant_bag",
}

func migrateItemID(id string) string {
	if renamed, ok := legacyItemIDs[id]; ok {
		return renamed
	}
	return id
}

// NormalizeJSON decodes and normalizes a stored snapshot. Undecodable input
// yields the empty snapshot.
func (e *Engine) NormalizeJSON(data []byte) *domain.Snapshot {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return e.emptySnapshot()
	}
	return e.Normalize(raw)
}

// Normalize repairs an untrusted value into a well-formed snapshot. It never
// fails: anything unusable is replaced by a safe default.
func (e *Engine) Normalize(raw any) *domain.Snapshot {
	var rec map[string]any
	switch v := raw.(type) {
	case map[string]any:
		rec = v
	case []byte:
		return e.NormalizeJSON(v)
	case json.RawMessage:
		return e.NormalizeJSON(v)
	case *domain.Snapshot, domain.Snapshot:
		data, err := json.Marshal(v)
		if err != nil {
			return e.emptySnapshot()
		}
		return e.NormalizeJSON(data)
	default:
		return e.emptySnapshot()
	}

	s := e.emptySnapshot()

	if arr, ok := rec["baseSlots"].([]any); ok {
		base := e.normalizeSlots(arr)
		for len(base) < e.catalog.BaseSlotCount() {
			base = append(base, nil)
		}
		s.BaseSlots = base
	}

	if bags, ok := rec["bagSlotsById"].(map[string]any); ok {
		for id, v := range bags {
			arr, ok := v.([]any)
			if id == "" || !ok {
				continue
			}
			slots := e.normalizeSlots(arr)
			if bag, ok := e.catalog.Bag(BagTypeForInstance(id)); ok {
				slots = resizeSlots(slots, bag.Capacity)
			}
			s.BagSlotsByID[id] = slots
		}
	}

	if id, ok := rec["equippedBagId"].(string); ok && id != "" {
		if _, has := s.BagSlotsByID[id]; has {
			s.EquippedBagID = id
		} else if bag, known := e.catalog.Bag(BagTypeForInstance(id)); known {
			s.EquippedBagID = id
			s.BagSlotsByID[id] = make([]*domain.Slot, bag.Capacity)
		}
	}

	if equipped, ok := rec["equippedItems"].(map[string]any); ok {
		for slotID, v := range equipped {
			if !e.catalog.IsEquipSlot(slotID) {
				continue
			}
			item, ok := v.(map[string]any)
			if !ok {
				continue
			}
			itemID, _ := item["id"].(string)
			if itemID == "" {
				continue
			}
			instanceID, _ := item["instanceId"].(string)
			s.EquippedItems[slotID] = &domain.EquippedItem{ItemID: migrateItemID(itemID), InstanceID: instanceID}
		}
	}

	if seen, ok := rec["seenItemIds"].([]any); ok {
		dedup := make(map[string]bool, len(seen))
		for _, v := range seen {
			id, ok := v.(string)
			if !ok || id == "" {
				continue
			}
			id = migrateItemID(id)
			if dedup[id] {
				continue
			}
			dedup[id] = true
			s.SeenItemIDs = append(s.SeenItemIDs, id)
		}
	}

	return CleanupOrphanedBagSlots(s)
}

func (e *Engine) emptySnapshot() *domain.Snapshot {
	return domain.NewEmptySnapshot(e.catalog.BaseSlotCount())
}

func (e *Engine) normalizeSlots(arr []any) []*domain.Slot {
	slots := make([]*domain.Slot, len(arr))
	for i, v := range arr {
		slots[i] = e.normalizeSlot(v)
	}
	return slots
}

func (e *Engine) normalizeSlot(v any) *domain.Slot {
	rec, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	id, ok := rec["id"].(string)
	if !ok || strings.TrimSpace(id) == "" {
		return nil
	}
	count, ok := coerceCount(rec["count"])
	if !ok {
		return nil
	}

	slot := &domain.Slot{ItemID: migrateItemID(id), Count: count}
	if _, known := e.catalog.Item(slot.ItemID); known {
		slot.Count = min(slot.Count, e.catalog.StackLimit(slot.ItemID))
	}
	if instanceID, ok := rec["instanceId"].(string); ok && instanceID != "" {
		if _, known := e.catalog.Item(slot.ItemID); !known || e.catalog.IsBag(slot.ItemID) {
			slot.InstanceID = instanceID
		}
	}
	return slot
}

// coerceCount accepts any finite number (or numeric string) of at least one
// whole unit, floored
func coerceCount(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 {
		return 0, false
	}
	f = math.Floor(f)
	if f < 1 {
		return 0, false
	}
	return int(f), true
}

func resizeSlots(slots []*domain.Slot, capacity int) []*domain.Slot {
	if len(slots) >= capacity {
		return slots[:capacity]
	}
	return append(slots, make([]*domain.Slot, capacity-len(slots))...)
}
