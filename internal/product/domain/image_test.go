package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageRoundTrip(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	encoded := EncodeImage(raw)
	assert.Equal(t, raw, DecodeImage(encoded))
}

func TestDecodeImageToleratesBadInput(t *testing.T) {
	assert.Nil(t, DecodeImage(""))
	assert.Nil(t, DecodeImage("not base64!!!"))
}

func TestEncodeImageEmpty(t *testing.T) {
	assert.Equal(t, "", EncodeImage(nil))
	assert.Equal(t, "", EncodeImage([]byte{}))
}
