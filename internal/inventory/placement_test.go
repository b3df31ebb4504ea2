package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/satchel/internal/domain"
)

func TestPlace_Order(t *testing.T) {
	e := testEngine(t)

	t.Run("open bag stacks, base stacks, open bag empties, base empties", func(t *testing.T) {
		s := withOpenBag(snap(slot("potion", 3), nil), "sack__1_a", 3, slot("potion", 4), nil)

		res := e.Place(s, "potion", 12, PlaceOptions{})
		require.NoError(t, res.Reason)
		assert.Zero(t, res.Remaining)

		n := res.Next
		assert.Equal(t, slot("potion", 5), n.BagSlotsByID["sack__1_a"][0], "open bag stack first")
		assert.Equal(t, slot("potion", 5), n.BaseSlots[0], "then base stack")
		assert.Equal(t, slot("potion", 5), n.BagSlotsByID["sack__1_a"][1], "then open bag empty")
		assert.Equal(t, slot("potion", 4), n.BagSlotsByID["sack__1_a"][2])
		assert.Nil(t, n.BaseSlots[1], "base empties untouched while the bag has room")
	})

	t.Run("prefer base", func(t *testing.T) {
		s := withOpenBag(snap(), "sack__1_a", 3)

		res := e.Place(s, "ore", 5, PlaceOptions{PreferBase: true})
		require.NoError(t, res.Reason)
		assert.Equal(t, slot("ore", 5), res.Next.BaseSlots[0])
		assert.Nil(t, res.Next.BagSlotsByID["sack__1_a"][0])
	})

	t.Run("base only", func(t *testing.T) {
		s := withOpenBag(snap(slot("ore", 1), slot("ore", 1), slot("ore", 1), slot("ore", 20)), "sack__1_a", 3, slot("ore", 1))

		res := e.Place(s, "ore", 60, PlaceOptions{BaseOnly: true})
		assert.ErrorIs(t, res.Reason, domain.ErrInventoryFull)
		assert.Equal(t, 3, res.Remaining)
		assert.Equal(t, slot("ore", 1), res.Next.BagSlotsByID["sack__1_a"][0])
	})

	t.Run("stack limit override", func(t *testing.T) {
		res := e.Place(snap(), "ore", 5, PlaceOptions{StackLimit: 2})
		require.NoError(t, res.Reason)
		assert.Equal(t, []*domain.Slot{slot("ore", 2), slot("ore", 2), slot("ore", 1), nil}, res.Next.BaseSlots)
	})
}

func TestPlace_Bags(t *testing.T) {
	e := testEngine(t)

	t.Run("mints an instance per slot", func(t *testing.T) {
		res := e.Place(snap(), "pouch", 2, PlaceOptions{})
		require.NoError(t, res.Reason)
		assert.Equal(t, bagSlot("pouch", mintedID("pouch", 1)), res.Next.BaseSlots[0])
		assert.Equal(t, bagSlot("pouch", mintedID("pouch", 2)), res.Next.BaseSlots[1])
	})

	t.Run("one bag per slot even with a stack limit override", func(t *testing.T) {
		e := testEngine(t)
		res := e.Place(snap(), "sack", 3, PlaceOptions{StackLimit: 5})
		require.NoError(t, res.Reason)
		for i := 0; i < 3; i++ {
			assert.Equal(t, bagSlot("sack", mintedID("sack", i+1)), res.Next.BaseSlots[i])
		}

		swap := e.PerformBagEquipSwap(res.Next, 0)
		require.True(t, swap.OK)
		assert.Equal(t, mintedID("sack", 1), swap.Next.EquippedBagID)
		for _, slot := range swap.Next.BaseSlots {
			if slot != nil {
				assert.NotEqual(t, swap.Next.EquippedBagID, slot.InstanceID, "the open bag is not also in base")
			}
		}
	})

	t.Run("restores a known instance", func(t *testing.T) {
		res := e.Place(snap(slot("ore", 1)), "sack", 1, PlaceOptions{InstanceID: "sack__9_z"})
		require.NoError(t, res.Reason)
		assert.Equal(t, bagSlot("sack", "sack__9_z"), res.Next.BaseSlots[1])
	})

	t.Run("never inside itself", func(t *testing.T) {
		s := withOpenBag(snap(slot("ore", 1), slot("ore", 1), slot("ore", 1), slot("ore", 1)), "sack__1_a", 3)

		res := e.Place(s, "sack", 1, PlaceOptions{InstanceID: "sack__1_a"})
		assert.ErrorIs(t, res.Reason, domain.ErrInventoryFull)
		assert.Equal(t, 1, res.Remaining)
		assert.Same(t, s, res.Next)
	})
}

func TestPlace_Rejections(t *testing.T) {
	e := testEngine(t)
	s := snap(slot("ore", 20), slot("ore", 20), slot("ore", 20), slot("ore", 20))
	before := mustJSON(t, s)

	tests := []struct {
		name      string
		item      string
		amount    int
		remaining int
		reason    error
	}{
		{"unknown item", "relic", 2, 2, domain.ErrItemNotFound},
		{"zero amount", "ore", 0, 0, domain.ErrInvalidAmount},
		{"negative amount", "ore", -4, 0, domain.ErrInvalidAmount},
		{"full", "potion", 3, 3, domain.ErrInventoryFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Place(s, tt.item, tt.amount, PlaceOptions{})
			assert.Same(t, s, res.Next)
			assert.Equal(t, tt.remaining, res.Remaining)
			assert.ErrorIs(t, res.Reason, tt.reason)
			assert.JSONEq(t, before, mustJSON(t, s))
		})
	}
}

func TestPlace_Conservation(t *testing.T) {
	e := testEngine(t)

	starts := map[string]*domain.Snapshot{
		"empty":      snap(),
		"partial":    snap(slot("potion", 4), nil, slot("ore", 19), slot("potion", 1)),
		"open bag":   withOpenBag(snap(slot("potion", 2)), "sack__1_a", 3, nil, slot("potion", 5)),
		"nearly full": snap(slot("sword", 1), slot("potion", 5), slot("ore", 3), slot("potion", 3)),
	}

	for name, s := range starts {
		for _, item := range []string{"potion", "ore", "sword", "pouch"} {
			for amount := 1; amount <= 40; amount += 3 {
				res := e.Place(s, item, amount, PlaceOptions{})
				added := CountItem(res.Next, item) - CountItem(s, item)
				require.Equal(t, amount, res.Remaining+added, "%s: %d x %s", name, amount, item)
				for _, sl := range VisibleSlots(res.Next) {
					if sl != nil {
						require.LessOrEqual(t, sl.Count, e.catalog.StackLimit(sl.ItemID))
						require.GreaterOrEqual(t, sl.Count, 1)
					}
				}
			}
		}
	}
}
