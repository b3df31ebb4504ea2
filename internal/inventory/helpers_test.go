package inventory

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osse101/satchel/internal/catalog"
	"github.com/osse101/satchel/internal/domain"
)

const testBaseSlots = 4

var testClock = time.UnixMilli(1_700_000_000_000)

func testCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(&catalog.Config{
		Version:       "test",
		BaseSlotCount: testBaseSlots,
		TypeSlots: map[string]string{
			"sword":   domain.EquipSlotWeaponMain,
			"ring":    domain.EquipSlotRingLeft,
			"earring": domain.EquipSlotEarringLeft,
			"javelin": domain.EquipSlotWeaponOuter1,
			"shield":  domain.EquipSlotWeaponOff,
		},
		Items: []domain.ItemDef{
			{ID: "potion", Name: "Potion", MaxStack: 5},
			{ID: "ore", Name: "Ore", MaxStack: 20},
			{ID: "sword", Name: "Sword", MaxStack: 1, Types: []string{"sword"}},
			{ID: "ring", Name: "Ring", MaxStack: 1, Types: []string{"ring"}},
			{ID: "earring", Name: "Earring", MaxStack: 1, Types: []string{"earring"}},
			{ID: "javelin", Name: "Javelin", MaxStack: 3, Types: []string{"javelin"}},
			{ID: "helm", Name: "Helm", MaxStack: 1, Slot: domain.EquipSlotHead},
			{ID: "shield", Name: "Shield", MaxStack: 1, Types: []string{"trinket", "shield"}},
			{ID: "sack", Name: "Sack", MaxStack: 1},
			{ID: "pouch", Name: "Pouch", MaxStack: 1},
			{ID: "peasant_bag", Name: "Peasant Bag", MaxStack: 1},
		},
		Bags: []domain.BagDef{
			{ID: "sack", Capacity: 3},
			{ID: "pouch", Capacity: 2},
			{ID: "peasant_bag", Capacity: 6},
		},
		StarterKit: []domain.StarterItem{
			{ItemID: "potion", Count: 7},
			{ItemID: "sack", Count: 1},
		},
	})
	require.NoError(t, err)
	return c
}

// testEngine returns an engine whose minted ids are <type>__<ts>_s1, _s2, ...
func testEngine(t testing.TB) *Engine {
	t.Helper()
	seq := 0
	minter := NewMinter(
		WithClock(func() time.Time { return testClock }),
		WithSuffix(func() string {
			seq++
			return fmt.Sprintf("s%d", seq)
		}),
	)
	return NewEngine(testCatalog(t), WithMinter(minter))
}

func mintedID(bagType string, n int) string {
	return MintBagID(bagType, testClock, fmt.Sprintf("s%d", n))
}

func slot(id string, count int) *domain.Slot {
	return &domain.Slot{ItemID: id, Count: count}
}

func bagSlot(bagType, instanceID string) *domain.Slot {
	return &domain.Slot{ItemID: bagType, Count: 1, InstanceID: instanceID}
}

// snap builds a snapshot with testBaseSlots base slots filled from base
func snap(base ...*domain.Slot) *domain.Snapshot {
	s := domain.NewEmptySnapshot(testBaseSlots)
	copy(s.BaseSlots, base)
	return s
}

// withOpenBag equips bag instanceID holding contents, padded to capacity
func withOpenBag(s *domain.Snapshot, instanceID string, capacity int, contents ...*domain.Slot) *domain.Snapshot {
	slots := make([]*domain.Slot, capacity)
	copy(slots, contents)
	s.BagSlotsByID[instanceID] = slots
	s.EquippedBagID = instanceID
	return s
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

// requireRejected asserts a transaction handed back its input untouched
func requireRejected(t *testing.T, input *domain.Snapshot, before string, res Result, reason error) {
	t.Helper()
	require.False(t, res.OK)
	require.Same(t, input, res.Next)
	require.ErrorIs(t, res.Reason, reason)
	require.JSONEq(t, before, mustJSON(t, input))
}
