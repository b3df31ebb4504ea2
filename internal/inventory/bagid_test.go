package inventory

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMintBagID(t *testing.T) {
	id := MintBagID("peasant_bag", time.UnixMilli(36), "abc")
	assert.Equal(t, "peasant_bag__10_abc", id)

	bagType, ok := BagTypeOf(id)
	assert.True(t, ok)
	assert.Equal(t, "peasant_bag", bagType)
}

func TestBagTypeOf(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		want   string
		wantOK bool
	}{
		{"minted", "sack__lq2_x1", "sack", true},
		{"double separator", "sack__a__b", "sack", true},
		{"bare type", "sack", "", false},
		{"leading separator", "__abc", "", false},
		{"empty", "", "", false},
		{"single underscore", "peasant_bag", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BagTypeOf(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinter(t *testing.T) {
	t.Run("default minter yields unique ids", func(t *testing.T) {
		m := NewMinter()
		a, b := m.Mint("sack"), m.Mint("sack")
		assert.NotEqual(t, a, b)
		assert.True(t, strings.HasPrefix(a, "sack__"))
	})

	t.Run("injected sources", func(t *testing.T) {
		m := NewMinter(
			WithClock(func() time.Time { return time.UnixMilli(35) }),
			WithSuffix(func() string { return "zz" }),
		)
		assert.Equal(t, "pouch__z_zz", m.Mint("pouch"))
	})
}

func TestBagTypeForInstance(t *testing.T) {
	assert.Equal(t, "sack", BagTypeForInstance("sack__1_a"))
	assert.Equal(t, "sack", BagTypeForInstance("sack"))
	assert.Equal(t, "peasant_bag", BagTypeForInstance("peasant_pouch__1_a"))
}
