package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ISISComputingGroup/pvxs-go/pvdata"
)

func demoStructDesc(t *testing.T) *pvdata.TypeDesc {
	t.Helper()
	desc, err := pvdata.NewTypeDef(pvdata.Struct, "demo_t",
		pvdata.MInt32("value"),
		pvdata.MString("label"),
	).Finalize()
	require.NoError(t, err)
	return desc
}

// TestTypeStore_S5_SecondSendIsTagOnly matches spec scenario S5: the
// same TypeDesc sent twice over one connection emits the full
// description the first time and only a 3-byte control+tag payload
// the second, and both sides decode to equal hashes.
func TestTypeStore_S5_SecondSendIsTagOnly(t *testing.T) {
	desc := demoStructDesc(t)
	store := NewTypeStore()

	w1 := NewWriter(LittleEndian)
	store.EncodeType(w1, desc)
	firstLen := w1.Len()

	w2 := NewWriter(LittleEndian)
	store.EncodeType(w2, desc)
	secondLen := w2.Len()

	assert.Equal(t, 3, secondLen, "control byte + 16-bit tag")
	assert.Less(t, secondLen, firstLen)

	recvStore := NewTypeStore()
	got1, err := recvStore.DecodeType(NewReader(w1.Bytes(), LittleEndian))
	require.NoError(t, err)
	got2, err := recvStore.DecodeType(NewReader(w2.Bytes(), LittleEndian))
	require.NoError(t, err)

	assert.Equal(t, desc.Hash(), got1.Hash())
	assert.Equal(t, desc.Hash(), got2.Hash())
}

func TestTypeStore_DistinctShapesGetDistinctTags(t *testing.T) {
	a := demoStructDesc(t)
	b, err := pvdata.NewScalarTypeDef(pvdata.Int32).Finalize()
	require.NoError(t, err)

	store := NewTypeStore()
	w1 := NewWriter(LittleEndian)
	store.EncodeType(w1, a)
	w2 := NewWriter(LittleEndian)
	store.EncodeType(w2, b)

	// Both are first sightings, so both carry the full form, not a bare tag.
	assert.Greater(t, w1.Len(), 3)
	assert.Greater(t, w2.Len(), 3)
}

func TestTypeStore_UnresolvedTagIsBadWire(t *testing.T) {
	store := NewTypeStore()
	w := NewWriter(LittleEndian)
	w.PutUint8(uint8(CtrlOnlyIdTag))
	w.PutUint16(42)

	_, err := store.DecodeType(NewReader(w.Bytes(), LittleEndian))
	assert.ErrorIs(t, err, pvdata.ErrBadWire)
}

func TestTypeStore_NullTypeRoundTrips(t *testing.T) {
	store := NewTypeStore()
	w := NewWriter(LittleEndian)
	store.EncodeType(w, nil)

	got, err := store.DecodeType(NewReader(w.Bytes(), LittleEndian))
	require.NoError(t, err)
	assert.Nil(t, got)
}
