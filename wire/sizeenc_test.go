package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize_RoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 253, 254, 255, 256, 0xffff, 0xfffffffe, 0xffffffff, 0x100000000, 0xffffffffffffffff}
	for _, v := range cases {
		w := NewWriter(LittleEndian)
		PutSize(w, v)
		r := NewReader(w.Bytes(), LittleEndian)
		got, err := GetSize(r)
		require.NoError(t, err)
		assert.Equal(t, v, got, "round-trip of %d", v)
	}
}

func TestSize_CompactEncodingWidth(t *testing.T) {
	w := NewWriter(LittleEndian)
	PutSize(w, 10)
	assert.Equal(t, 1, w.Len(), "values under 254 encode as a single byte")

	w = NewWriter(LittleEndian)
	PutSize(w, 254)
	assert.Equal(t, 5, w.Len(), "254 sentinel introduces a 32-bit length")

	w = NewWriter(LittleEndian)
	PutSize(w, 0x100000000)
	assert.Equal(t, 9, w.Len(), "255 sentinel introduces a 64-bit length")
}

func TestSize_TruncatedBufferIsBadWire(t *testing.T) {
	r := NewReader([]byte{254, 0x01}, LittleEndian)
	_, err := GetSize(r)
	assert.Error(t, err)
}
