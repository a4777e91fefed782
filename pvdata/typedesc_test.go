package pvdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeDefFinalize_StructShape(t *testing.T) {
	desc, err := NewTypeDef(Struct, "demo_t",
		MInt32("value"),
		MString("label"),
	).Finalize()
	require.NoError(t, err)

	assert.Equal(t, Struct, desc.Code())
	assert.Equal(t, "demo_t", desc.ID())
	assert.Equal(t, 3, desc.Size()) // root + 2 leaves

	children := desc.Iter()
	require.Len(t, children, 2)
	assert.Equal(t, "value", children[0].Name)
	assert.Equal(t, Int32, children[0].Desc.Code())
	assert.Equal(t, "label", children[1].Name)
	assert.Equal(t, String, children[1].Desc.Code())
}

func TestTypeDefFinalize_DuplicateFieldNameAggregates(t *testing.T) {
	_, err := NewTypeDef(Struct, "demo_t",
		MInt32("value"),
		MString("value"),
	).Finalize()
	require.Error(t, err)
}

func TestLookup_DottedPathIntoNestedStruct(t *testing.T) {
	desc, err := NewTypeDef(Struct, "outer_t",
		MStruct("inner", "inner_t", MInt32("x")),
	).Finalize()
	require.NoError(t, err)

	sub, ok := desc.Lookup("inner.x")
	require.True(t, ok)
	assert.Equal(t, Int32, sub.Code())
}

func TestHash_StructuralNotAllocationEquality(t *testing.T) {
	a, err := NewTypeDef(Struct, "demo_t", MInt32("value")).Finalize()
	require.NoError(t, err)
	b, err := NewTypeDef(Struct, "demo_t", MInt32("value")).Finalize()
	require.NoError(t, err)
	c, err := NewTypeDef(Struct, "demo_t", MInt32("other")).Finalize()
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestHash_FieldOrderIndependent(t *testing.T) {
	a, err := NewTypeDef(Struct, "demo_t", MInt32("x"), MString("y")).Finalize()
	require.NoError(t, err)
	b, err := NewTypeDef(Struct, "demo_t", MString("y"), MInt32("x")).Finalize()
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestUnion_VariantByTag(t *testing.T) {
	desc, err := NewTypeDef(Union, "choice_t",
		MInt32("asInt"),
		MString("asString"),
	).Finalize()
	require.NoError(t, err)

	sub, idx, ok := desc.VariantByTag("asString")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, String, sub.Code())

	_, _, ok = desc.VariantByTag("missing")
	assert.False(t, ok)
}

func TestNTScalar_HasAlarmAndTimeStamp(t *testing.T) {
	desc, err := NTScalar(Int32).Finalize()
	require.NoError(t, err)

	_, ok := desc.Lookup("value")
	assert.True(t, ok)
	_, ok = desc.Lookup("alarm.severity")
	assert.True(t, ok)
	_, ok = desc.Lookup("timeStamp.secondsPastEpoch")
	assert.True(t, ok)
}
