package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitMask_EncodeDecodeRoundTrip(t *testing.T) {
	mask := NewBitMask(10)
	mask.Set(1)
	mask.Set(7)

	w := NewWriter(LittleEndian)
	mask.Encode(w)

	r := NewReader(w.Bytes(), LittleEndian)
	got, err := DecodeBitMask(r)
	require.NoError(t, err)

	assert.Equal(t, 10, got.Len())
	for i := 0; i < 10; i++ {
		assert.Equal(t, i == 1 || i == 7, got.Get(i), "bit %d", i)
	}
}

// TestBitMask_S2Layout matches spec scenario S2: shape { int32 value;
// string label; }, root=0 value=1 label=2, only value marked, so the
// encoded mask is 0b010 (bit 1 set).
func TestBitMask_S2Layout(t *testing.T) {
	mask := NewBitMask(3)
	mask.Set(1)

	w := NewWriter(LittleEndian)
	mask.Encode(w)
	b := w.Bytes()

	// size byte (3) then ceil(3/8)=1 byte of bits, LSB first: bit1 set -> 0b010 == 2.
	require.Equal(t, []byte{3, 0b010}, b)
}

func TestBitMask_AnyReportsWhetherAnyBitSet(t *testing.T) {
	mask := NewBitMask(4)
	assert.False(t, mask.Any())
	mask.Set(2)
	assert.True(t, mask.Any())
}

func TestBitMask_LengthMismatchIsBadWire(t *testing.T) {
	r := NewReader([]byte{5}, LittleEndian) // claims 5 bits but no payload bytes follow
	_, err := DecodeBitMask(r)
	assert.Error(t, err)
}
