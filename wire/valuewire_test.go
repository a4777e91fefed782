package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ISISComputingGroup/pvxs-go/pvdata"
)

// TestValueWire_S1_ScalarRoundTrip matches spec scenario S1: build
// NTScalar<Int32>, assign value=42, freeze, full-encode, decode via
// the combined type+value form, and read "value" back as 42.
func TestValueWire_S1_ScalarRoundTrip(t *testing.T) {
	v, err := pvdata.NTScalar(pvdata.Int32).Build()
	require.NoError(t, err)
	value, err := v.Field("value")
	require.NoError(t, err)
	require.NoError(t, value.CopyIn(int64(42)))

	frozen, err := v.Freeze()
	require.NoError(t, err)

	store := NewTypeStore()
	w := NewWriter(LittleEndian)
	store.EncodeType(w, frozen.Type())
	require.NoError(t, EncodeValueFull(w, store, frozen))

	r := NewReader(w.Bytes(), LittleEndian)
	got, err := DecodeTypeValue(r, NewTypeStore())
	require.NoError(t, err)

	gotValue, err := got.Field("value")
	require.NoError(t, err)
	out, err := gotValue.CopyOut()
	require.NoError(t, err)
	assert.Equal(t, int64(42), out)
}

// TestValueWire_S3_UnionSelection matches spec scenario S3: selecting
// choice->s = "hi" on a { union choice { int32 i; string s; } } shape
// serializes selector index 2 (1-based, "s" is the second variant)
// followed by the string, and decodes back to the same selection.
func TestValueWire_S3_UnionSelection(t *testing.T) {
	desc, err := pvdata.NewTypeDef(pvdata.Struct, "holder_t",
		pvdata.MUnion("choice", "choice_t", pvdata.M(pvdata.Int32, "i"), pvdata.MString("s")),
	).Finalize()
	require.NoError(t, err)
	v := pvdata.Build(desc)

	choice, err := v.Field("choice")
	require.NoError(t, err)
	sub, err := choice.Select("s")
	require.NoError(t, err)
	require.NoError(t, sub.CopyIn("hi"))

	store := NewTypeStore()
	w := NewWriter(LittleEndian)
	require.NoError(t, EncodeValueFull(w, store, v))

	b := w.Bytes()
	// selector is size-encoded 2 (single byte, value < 254), followed
	// by the size-prefixed string "hi".
	require.GreaterOrEqual(t, len(b), 1)
	assert.Equal(t, byte(2), b[0])

	got := pvdata.Build(desc)
	recvStore := NewTypeStore()
	r := NewReader(b, LittleEndian)
	require.NoError(t, DecodeValueFull(r, recvStore, got))

	gotChoice, err := got.Field("choice")
	require.NoError(t, err)
	assert.Equal(t, "s", gotChoice.SelectedTag())

	sVal, err := gotChoice.Select("s")
	require.NoError(t, err)
	out, err := sVal.CopyOut()
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}

func TestValueWire_StructRoundTrip(t *testing.T) {
	desc, err := pvdata.NewTypeDef(pvdata.Struct, "demo_t",
		pvdata.MInt32("value"),
		pvdata.MString("label"),
		pvdata.MInt32A("tags"),
	).Finalize()
	require.NoError(t, err)
	v := pvdata.Build(desc)

	value, _ := v.Field("value")
	require.NoError(t, value.CopyIn(int64(7)))
	label, _ := v.Field("label")
	require.NoError(t, label.CopyIn("seven"))
	tags, _ := v.Field("tags")
	require.NoError(t, tags.CopyIn([]int64{1, 2, 3}))

	store := NewTypeStore()
	w := NewWriter(LittleEndian)
	require.NoError(t, EncodeValueFull(w, store, v))

	got := pvdata.Build(desc)
	recvStore := NewTypeStore()
	require.NoError(t, DecodeValueFull(NewReader(w.Bytes(), LittleEndian), recvStore, got))

	gotValue, _ := got.Field("value")
	out, err := gotValue.CopyOut()
	require.NoError(t, err)
	assert.Equal(t, int64(7), out)

	gotLabel, _ := got.Field("label")
	outLabel, err := gotLabel.CopyOut()
	require.NoError(t, err)
	assert.Equal(t, "seven", outLabel)

	gotTags, _ := got.Field("tags")
	outTags, err := gotTags.CopyOut()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, outTags.(*pvdata.SharedArray).Ints())
}

// TestValueWire_Float32ARoundTrip guards against the 4-byte/8-byte
// width mismatch between encodeScalarArray (which writes Float32A
// elements with PutFloat32) and decodeScalarArray (which must read
// them back with GetFloat32, not the default GetFloat64).
func TestValueWire_Float32ARoundTrip(t *testing.T) {
	desc, err := pvdata.NewScalarTypeDef(pvdata.Float32A).Finalize()
	require.NoError(t, err)
	v := pvdata.Build(desc)
	require.NoError(t, v.CopyIn([]float64{1.5, -2.25, 3}))

	store := NewTypeStore()
	w := NewWriter(LittleEndian)
	require.NoError(t, EncodeValueFull(w, store, v))

	got := pvdata.Build(desc)
	require.NoError(t, DecodeValueFull(NewReader(w.Bytes(), LittleEndian), NewTypeStore(), got))

	out, err := got.CopyOut()
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2.25, 3}, out.(*pvdata.SharedArray).Reals())
}

func TestValueWire_DecodeNewValueBuildsEmptyValueOfDecodedType(t *testing.T) {
	desc, err := pvdata.NewScalarTypeDef(pvdata.Int32).Finalize()
	require.NoError(t, err)

	store := NewTypeStore()
	w := NewWriter(LittleEndian)
	store.EncodeType(w, desc)

	got, err := DecodeNewValue(NewReader(w.Bytes(), LittleEndian), NewTypeStore())
	require.NoError(t, err)
	assert.True(t, got.Type().Equal(desc))
	_, err = got.CopyOut()
	assert.ErrorIs(t, err, pvdata.ErrNoField, "DecodeNewValue reads only the type, not a value payload")
}

func TestValueWire_DecodeNewValueOnNullTypeIsBadWire(t *testing.T) {
	w := NewWriter(LittleEndian)
	NewTypeStore().EncodeType(w, nil)

	_, err := DecodeNewValue(NewReader(w.Bytes(), LittleEndian), NewTypeStore())
	assert.ErrorIs(t, err, pvdata.ErrBadWire)
}

func TestValueWire_BigEndianRoundTrip(t *testing.T) {
	desc, err := pvdata.NewScalarTypeDef(pvdata.Int32).Finalize()
	require.NoError(t, err)
	v := pvdata.Build(desc)
	require.NoError(t, v.CopyIn(int64(-7)))

	store := NewTypeStore()
	w := NewWriter(BigEndian)
	require.NoError(t, EncodeValueFull(w, store, v))

	got := pvdata.Build(desc)
	recvStore := NewTypeStore()
	require.NoError(t, DecodeValueFull(NewReader(w.Bytes(), BigEndian), recvStore, got))
	out, err := got.CopyOut()
	require.NoError(t, err)
	assert.Equal(t, int64(-7), out)
}

// TestValueWire_S6_TruncatedStructIsBadWire matches spec scenario S6:
// a buffer declaring a struct but truncated mid-member reports
// BadWire and leaves the target empty of the truncated field.
func TestValueWire_S6_TruncatedStructIsBadWire(t *testing.T) {
	desc, err := pvdata.NewTypeDef(pvdata.Struct, "demo_t",
		pvdata.MInt32("a"),
		pvdata.MInt32("b"),
		pvdata.MInt32("c"),
	).Finalize()
	require.NoError(t, err)
	v := pvdata.Build(desc)
	a, _ := v.Field("a")
	require.NoError(t, a.CopyIn(int64(1)))
	b, _ := v.Field("b")
	require.NoError(t, b.CopyIn(int64(2)))
	c, _ := v.Field("c")
	require.NoError(t, c.CopyIn(int64(3)))

	store := NewTypeStore()
	w := NewWriter(LittleEndian)
	require.NoError(t, EncodeValueFull(w, store, v))

	truncated := w.Bytes()[:5] // cuts off partway into the second int32

	got := pvdata.Build(desc)
	err = DecodeValueFull(NewReader(truncated, LittleEndian), NewTypeStore(), got)
	assert.Error(t, err)

	gotC, _ := got.Field("c")
	_, err = gotC.CopyOut()
	assert.ErrorIs(t, err, pvdata.ErrNoField, "a field never reached by the aborted decode stays unwritten")
}
