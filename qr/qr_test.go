package qr_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/qr"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	data, err := qr.Encode("WC-SH-10245")
	assert.NoError(t, err)

	payload, err := qr.Decode(string(data))
	assert.NoError(t, err)
	assert.Equal(t, "WC-SH-10245", payload.ID)
	assert.Equal(t, qr.PayloadTypeShipment, payload.Type)
}

func TestEncode_CanonicalShape(t *testing.T) {
	data, err := qr.Encode("WC-SH-20891")
	assert.NoError(t, err)

	var m map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &m))
	assert.Len(t, m, 2)
	assert.Equal(t, "WC-SH-20891", m["id"])
	assert.Equal(t, "shipment", m["type"])
}

func TestDecode_Malformed(t *testing.T) {
	for _, raw := range []string{"not json", "", "{", "42", `"just a string"`} {
		_, err := qr.Decode(raw)
		assert.ErrorIs(t, err, qr.ErrMalformedPayload, "input %q", raw)
	}
}

func TestDecode_MissingID(t *testing.T) {
	_, err := qr.Decode(`{"type":"shipment"}`)
	assert.ErrorIs(t, err, qr.ErrMalformedPayload)
}

func TestDecode_WrongType(t *testing.T) {
	_, err := qr.Decode(`{"id":"WC-SH-10245","type":"flight"}`)
	assert.ErrorIs(t, err, qr.ErrWrongType)
}

func TestDecode_IgnoresUnknownKeys(t *testing.T) {
	payload, err := qr.Decode(`{"id":"WC-SH-10245","type":"shipment","v":2,"extra":"x"}`)
	assert.NoError(t, err)
	assert.Equal(t, "WC-SH-10245", payload.ID)
}

func TestLabelPNG(t *testing.T) {
	png, err := qr.LabelPNG("WC-SH-10245", 256)
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
