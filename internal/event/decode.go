package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns an event payload as T. Payloads published in-process
// are already T or *T; anything else (raw JSON, or maps from a decoded
// envelope) goes through a JSON round trip.
func DecodePayload[T any](payload any) (T, error) {
	var out T
	if v, ok := payload.(T); ok {
		return v, nil
	}
	if p, ok := payload.(*T); ok {
		if p == nil {
			return out, fmt.Errorf(ErrMsgNilPayloadFormat, out)
		}
		return *p, nil
	}

	var data []byte
	switch v := payload.(type) {
	case nil:
		return out, fmt.Errorf(ErrMsgNilPayloadFormat, out)
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	default:
		var err error
		if data, err = json.Marshal(payload); err != nil {
			return out, err
		}
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
