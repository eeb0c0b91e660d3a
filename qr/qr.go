// Package qr implements the scannable identity payload printed on shipment
// labels. The payload is a convenience pointer, not a credential: it must
// be resolved against the shipment store before anything acts on it.
package qr

import (
	"encoding/json"
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

// PayloadTypeShipment is the only payload type this service issues.
const PayloadTypeShipment = "shipment"

var (
	// ErrMalformedPayload means the scanned text is not a parseable payload.
	// Continuous camera input makes this a routine, recoverable condition.
	ErrMalformedPayload = errors.New("qr: malformed payload")
	// ErrWrongType means the payload parsed but is not a shipment pointer.
	ErrWrongType = errors.New("qr: not a shipment payload")
)

// Payload is the transient value carried inside a shipment QR code.
// Decoders tolerate and ignore unknown extra keys.
type Payload struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Encode produces the canonical payload JSON for a tracking identifier.
func Encode(trackingID string) ([]byte, error) {
	return json.Marshal(Payload{ID: trackingID, Type: PayloadTypeShipment})
}

// Decode parses raw scanner text into a Payload. It never panics on junk
// input; malformed text and non-shipment payloads come back as typed
// errors the caller can surface as "scan again".
func Decode(raw string) (Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Payload{}, ErrMalformedPayload
	}
	if p.ID == "" {
		return Payload{}, ErrMalformedPayload
	}
	if p.Type != PayloadTypeShipment {
		return Payload{}, ErrWrongType
	}
	return p, nil
}

// LabelPNG renders the payload as a printable QR image for shipment labels.
func LabelPNG(trackingID string, size int) ([]byte, error) {
	data, err := Encode(trackingID)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(string(data), qrcode.Medium, size)
}
