package domain

// Slot is one occupied inventory cell. An empty cell is a nil *Slot.
type Slot struct {
	ItemID     string `json:"id"`
	Count      int    `json:"count"`
	InstanceID string `json:"instanceId,omitempty"` // set only for a specific bag instance
}

// Clone returns a copy of the slot, or nil for an empty slot
func (s *Slot) Clone() *Slot {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// EquippedItem is the single unit held by an equipment slot
type EquippedItem struct {
	ItemID     string `json:"id"`
	InstanceID string `json:"instanceId,omitempty"`
}

// Clone returns a copy of the equipped item, or nil
func (e *EquippedItem) Clone() *EquippedItem {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

// Snapshot is the entire serializable inventory state of one player.
// Transactions never mutate a Snapshot in place; they return a new one.
type Snapshot struct {
	BaseSlots     []*Slot                  `json:"baseSlots"`
	BagSlotsByID  map[string][]*Slot       `json:"bagSlotsById"`
	EquippedBagID string                   `json:"equippedBagId,omitempty"`
	EquippedItems map[string]*EquippedItem `json:"equippedItems"`
	SeenItemIDs   []string                 `json:"seenItemIds"`
}

// NewEmptySnapshot creates a snapshot with baseSlotCount empty base slots
func NewEmptySnapshot(baseSlotCount int) *Snapshot {
	if baseSlotCount < 0 {
		baseSlotCount = 0
	}
	return &Snapshot{
		BaseSlots:     make([]*Slot, baseSlotCount),
		BagSlotsByID:  make(map[string][]*Slot),
		EquippedItems: make(map[string]*EquippedItem),
		SeenItemIDs:   []string{},
	}
}

// Clone deep-copies the snapshot
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := &Snapshot{
		BaseSlots:     CloneSlots(s.BaseSlots),
		BagSlotsByID:  make(map[string][]*Slot, len(s.BagSlotsByID)),
		EquippedBagID: s.EquippedBagID,
		EquippedItems: make(map[string]*EquippedItem, len(s.EquippedItems)),
		SeenItemIDs:   append([]string{}, s.SeenItemIDs...),
	}
	for id, slots := range s.BagSlotsByID {
		c.BagSlotsByID[id] = CloneSlots(slots)
	}
	for slot, item := range s.EquippedItems {
		c.EquippedItems[slot] = item.Clone()
	}
	return c
}

// OpenBagSlots returns the slot array of the currently equipped bag, or nil
func (s *Snapshot) OpenBagSlots() []*Slot {
	if s.EquippedBagID == "" {
		return nil
	}
	return s.BagSlotsByID[s.EquippedBagID]
}

// CloneSlots deep-copies a slot array
func CloneSlots(slots []*Slot) []*Slot {
	if slots == nil {
		return nil
	}
	c := make([]*Slot, len(slots))
	for i, slot := range slots {
		c[i] = slot.Clone()
	}
	return c
}
