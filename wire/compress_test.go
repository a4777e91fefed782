package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ISISComputingGroup/pvxs-go/pvdata"
)

func TestCompress_UInt8ARoundTripsUncompressedByDefault(t *testing.T) {
	SetConfig(pvdata.DefaultCodecConfig())

	desc, err := pvdata.NewScalarTypeDef(pvdata.UInt8A).Finalize()
	require.NoError(t, err)
	v := pvdata.Build(desc)
	require.NoError(t, v.CopyIn([]int64{1, 2, 3, 4, 5}))

	store := NewTypeStore()
	w := NewWriter(LittleEndian)
	require.NoError(t, EncodeValueFull(w, store, v))

	assert.Equal(t, byte(0), w.Bytes()[0], "compression off by default")

	got := pvdata.Build(desc)
	require.NoError(t, DecodeValueFull(NewReader(w.Bytes(), LittleEndian), NewTypeStore(), got))
	out, err := got.CopyOut()
	require.NoError(t, err)
	arr := out.(*pvdata.SharedArray)
	require.Equal(t, 5, arr.Len())
}

func TestCompress_UInt8ACompressesAboveThreshold(t *testing.T) {
	defer SetConfig(pvdata.DefaultCodecConfig())
	SetConfig(pvdata.CodecConfig{CompressArrays: true, CompressMinLen: 4})

	raw := make([]int64, 64)
	for i := range raw {
		raw[i] = int64(i % 7) // repetitive enough for s2 to shrink
	}

	desc, err := pvdata.NewScalarTypeDef(pvdata.UInt8A).Finalize()
	require.NoError(t, err)
	v := pvdata.Build(desc)
	require.NoError(t, v.CopyIn(raw))

	store := NewTypeStore()
	w := NewWriter(LittleEndian)
	require.NoError(t, EncodeValueFull(w, store, v))
	assert.Equal(t, byte(1), w.Bytes()[0], "compression flag set above CompressMinLen")

	got := pvdata.Build(desc)
	require.NoError(t, DecodeValueFull(NewReader(w.Bytes(), LittleEndian), NewTypeStore(), got))
	out, err := got.CopyOut()
	require.NoError(t, err)
	gotUints := out.(*pvdata.SharedArray).Uints()
	require.Len(t, gotUints, 64)
	for i, x := range gotUints {
		assert.Equal(t, uint64(raw[i]), x)
	}
}
