package qr

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_ProducesPNGOfRequestedSize(t *testing.T) {
	data, err := Encode([]byte(`{"ticketId":"TKT-1-ABCDEFGHI"}`), DefaultOptions())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
	assert.Equal(t, DefaultSize, img.Bounds().Dy())
}

func TestEncode_Deterministic(t *testing.T) {
	payload := []byte("same payload")

	first, err := Encode(payload, DefaultOptions())
	require.NoError(t, err)
	second, err := Encode(payload, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEncodeBase64_RoundTrips(t *testing.T) {
	encoded, err := EncodeBase64([]byte("payload"), DefaultOptions())
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
}

func TestEncode_ZeroSizeFallsBackToDefault(t *testing.T) {
	data, err := Encode([]byte("x"), Options{})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
}
