package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/satchel/internal/domain"
)

func TestNewSnapshot(t *testing.T) {
	e := testEngine(t)
	s := e.NewSnapshot()

	require.Len(t, s.BaseSlots, testBaseSlots)
	assert.Equal(t, slot("potion", 5), s.BaseSlots[0])
	assert.Equal(t, slot("potion", 2), s.BaseSlots[1])
	assert.Equal(t, bagSlot("sack", mintedID("sack", 1)), s.BaseSlots[2])
	assert.Empty(t, s.EquippedBagID)
	assert.Empty(t, s.BagSlotsByID)
	assert.Empty(t, s.EquippedItems)
}

func TestConsumeItem(t *testing.T) {
	e := testEngine(t)

	t.Run("open bag first, last slot first", func(t *testing.T) {
		s := withOpenBag(snap(slot("potion", 5), slot("potion", 1)), "sack__1_a", 3, slot("potion", 2))
		res := e.ConsumeItem(s, "potion", 4)
		require.True(t, res.OK)
		assert.Nil(t, res.Next.BagSlotsByID["sack__1_a"][0])
		assert.Nil(t, res.Next.BaseSlots[1])
		assert.Equal(t, slot("potion", 4), res.Next.BaseSlots[0])
		assert.Equal(t, 8, CountItem(s, "potion"))
	})

	rejections := []struct {
		name   string
		amount int
		reason error
	}{
		{"not enough", 7, domain.ErrInsufficientQuantity},
		{"zero", 0, domain.ErrInvalidAmount},
	}
	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			s := snap(slot("potion", 5), slot("potion", 1))
			before := mustJSON(t, s)
			requireRejected(t, s, before, e.ConsumeItem(s, "potion", tt.amount), tt.reason)
		})
	}
}

func TestMarkSeen(t *testing.T) {
	e := testEngine(t)
	s := snap()
	s.SeenItemIDs = []string{"ore"}

	res := e.MarkSeen(s, "ore", "potion", "potion", "")
	require.True(t, res.OK)
	assert.Equal(t, []string{"ore", "potion"}, res.Next.SeenItemIDs)
	assert.Equal(t, []string{"ore"}, s.SeenItemIDs)

	before := mustJSON(t, s)
	requireRejected(t, s, before, e.MarkSeen(s, "ore"), domain.ErrNoChange)
}
