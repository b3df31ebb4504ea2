package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/satchel/internal/domain"
)

func TestDeleteFromInventory(t *testing.T) {
	e := testEngine(t)

	tests := []struct {
		name   string
		amount int
		want   *domain.Slot
	}{
		{"part of a stack", 2, slot("ore", 3)},
		{"whole stack", 5, nil},
		{"more than the stack", 50, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := snap(slot("ore", 5))
			res := e.DeleteFromInventory(s, domain.ContainerBase, 0, tt.amount)
			require.True(t, res.OK)
			assert.Equal(t, tt.want, res.Next.BaseSlots[0])
			assert.Equal(t, 5, s.BaseSlots[0].Count)
		})
	}

	t.Run("from a bag container", func(t *testing.T) {
		s := withOpenBag(snap(), "sack__1_a", 3, nil, slot("potion", 4))
		res := e.DeleteFromInventory(s, "sack__1_a", 1, 1)
		require.True(t, res.OK)
		assert.Equal(t, slot("potion", 3), res.Next.BagSlotsByID["sack__1_a"][1])
	})

	t.Run("deleting a bag drops its storage", func(t *testing.T) {
		s := snap(bagSlot("pouch", "pouch__1_b"))
		s.BagSlotsByID["pouch__1_b"] = []*domain.Slot{slot("ore", 9), nil}
		res := e.DeleteFromInventory(s, domain.ContainerBase, 0, 1)
		require.True(t, res.OK)
		assert.Empty(t, res.Next.BagSlotsByID)
		assert.Contains(t, s.BagSlotsByID, "pouch__1_b")
	})

	rejections := []struct {
		name      string
		container string
		index     int
		amount    int
		reason    error
	}{
		{"unknown container", "ghost__1_z", 0, 1, domain.ErrUnknownContainer},
		{"index out of range", domain.ContainerBase, testBaseSlots, 1, domain.ErrInvalidSlot},
		{"negative index", domain.ContainerBase, -1, 1, domain.ErrInvalidSlot},
		{"zero amount", domain.ContainerBase, 0, 0, domain.ErrInvalidAmount},
		{"negative amount clamps to zero", domain.ContainerBase, 0, -3, domain.ErrInvalidAmount},
		{"empty slot", domain.ContainerBase, 1, 1, domain.ErrSlotEmpty},
	}
	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			s := snap(slot("ore", 5))
			before := mustJSON(t, s)
			requireRejected(t, s, before, e.DeleteFromInventory(s, tt.container, tt.index, tt.amount), tt.reason)
		})
	}
}

func TestDeleteEquipped(t *testing.T) {
	e := testEngine(t)

	t.Run("body slot", func(t *testing.T) {
		s := snap()
		s.EquippedItems[domain.EquipSlotHead] = &domain.EquippedItem{ItemID: "helm"}
		res := e.DeleteEquipped(s, domain.EquipSlotHead)
		require.True(t, res.OK)
		assert.Empty(t, res.Next.EquippedItems)
	})

	t.Run("bag slot drops the bag and its contents", func(t *testing.T) {
		s := withOpenBag(snap(), "sack__1_a", 3, slot("ore", 4))
		res := e.DeleteEquipped(s, domain.EquipSlotBag)
		require.True(t, res.OK)
		assert.Empty(t, res.Next.EquippedBagID)
		assert.Empty(t, res.Next.BagSlotsByID)
	})

	rejections := []struct {
		name   string
		slot   string
		reason error
	}{
		{"empty body slot", domain.EquipSlotHead, domain.ErrSlotEmpty},
		{"no bag", domain.EquipSlotBag, domain.ErrSlotEmpty},
		{"unknown slot", "tail", domain.ErrUnknownEquipSlot},
	}
	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			s := snap()
			before := mustJSON(t, s)
			requireRejected(t, s, before, e.DeleteEquipped(s, tt.slot), tt.reason)
		})
	}
}
