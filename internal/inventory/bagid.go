package inventory

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const bagIDSeparator = "__"

// MintBagID builds a bag instance id: the bag type, the separator, then a
// base36 millisecond timestamp and the suffix
func MintBagID(bagType string, ts time.Time, suffix string) string {
	return bagType + bagIDSeparator + strconv.FormatInt(ts.UnixMilli(), 36) + "_" + suffix
}

// BagTypeOf extracts the bag type from an instance id. Malformed ids report false.
func BagTypeOf(instanceID string) (string, bool) {
	i := strings.Index(instanceID, bagIDSeparator)
	if i <= 0 {
		return "", false
	}
	return instanceID[:i], true
}

// Minter hands out fresh bag instance ids
type Minter struct {
	now    func() time.Time
	suffix func() string
}

// MinterOption configures a Minter
type MinterOption func(*Minter)

// WithClock sets the timestamp source
func WithClock(now func() time.Time) MinterOption {
	return func(m *Minter) {
		m.now = now
	}
}

// WithSuffix sets the random suffix source
func WithSuffix(suffix func() string) MinterOption {
	return func(m *Minter) {
		m.suffix = suffix
	}
}

// NewMinter creates a minter using the wall clock and uuid-derived suffixes
func NewMinter(opts ...MinterOption) *Minter {
	m := &Minter{
		now: time.Now,
		suffix: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mint returns a new instance id for bagType
func (m *Minter) Mint(bagType string) string {
	return MintBagID(bagType, m.now(), m.suffix())
}
