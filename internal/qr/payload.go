package qr

import (
	"encoding/json"
	"fmt"

	types "github.com/bayanihan-ph/relief-backend/internal/domain"
)

// Payload is the wire format embedded in a rendered QR image. It crosses a
// physical boundary (camera scan) and must round-trip exactly: the decoded
// fields are used verbatim as store lookup keys.
type Payload struct {
	ID           string `json:"id"`
	LastName     string `json:"lastName"`
	BrgyName     string `json:"brgyName"`
	CalamityName string `json:"calamityName,omitempty"`
}

// Encode validates and serializes the payload.
func Encode(p Payload) ([]byte, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal qr payload: %w", err)
	}
	return raw, nil
}

// Decode parses a scanned payload. A payload missing id or brgyName is
// rejected here, before any store access.
func Decode(raw []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		ve := types.NewValidationError()
		ve.Add("payload", "not a valid QR payload")
		return Payload{}, ve
	}
	if err := validate(p); err != nil {
		return Payload{}, err
	}
	return p, nil
}

func validate(p Payload) error {
	ve := types.NewValidationError()
	if p.ID == "" {
		ve.Add("id", "required")
	}
	if p.BrgyName == "" {
		ve.Add("brgyName", "required")
	}
	return ve.OrNil()
}
