// Package save reads and writes the persisted game-state envelope that
// carries an inventory snapshot alongside other game state.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/osse101/satchel/internal/domain"
)

// Normalizer repairs a stored inventory snapshot
type Normalizer interface {
	NormalizeJSON(data []byte) *domain.Snapshot
}

// Envelope is the versioned save document
type Envelope struct {
	Version int  `json:"version"`
	Data    Data `json:"data"`
}

// Data holds the inventory plus sibling game state, which is kept verbatim
type Data struct {
	Inventory      *domain.Snapshot `json:"inventory"`
	Resources      json.RawMessage  `json:"resources,omitempty"`
	Perks          json.RawMessage  `json:"perks,omitempty"`
	KnownAbilities json.RawMessage  `json:"knownAbilities,omitempty"`
}

// New wraps a snapshot in a current-version envelope
func New(inventory *domain.Snapshot) *Envelope {
	return &Envelope{Version: domain.SaveVersion, Data: Data{Inventory: inventory}}
}

// Decode parses a stored payload. The inventory always comes back
// normalized; payloads without an envelope are treated as a bare snapshot.
// Only an envelope from a newer or unknown version is an error.
func Decode(raw []byte, n Normalizer) (*Envelope, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return New(n.NormalizeJSON(raw)), nil
	}

	versionRaw, hasVersion := top["version"]
	dataRaw, hasData := top["data"]
	if !hasVersion || !hasData {
		return New(n.NormalizeJSON(raw)), nil
	}

	var version int
	if err := json.Unmarshal(versionRaw, &version); err != nil || version != domain.SaveVersion {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedSaveVersion, string(versionRaw))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(dataRaw, &fields); err != nil {
		fields = nil
	}

	return &Envelope{
		Version: version,
		Data: Data{
			Inventory:      n.NormalizeJSON(fields["inventory"]),
			Resources:      fields["resources"],
			Perks:          fields["perks"],
			KnownAbilities: fields["knownAbilities"],
		},
	}, nil
}

// Encode serializes the envelope at the current version
func Encode(env *Envelope) ([]byte, error) {
	out := *env
	out.Version = domain.SaveVersion
	data, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode save: %w", err)
	}
	return data, nil
}
