package pvdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharedArray_ScalarRoundTrip(t *testing.T) {
	desc, err := NewTypeDef(Struct, "demo_t", MInt32A("values")).Finalize()
	require.NoError(t, err)
	v := Build(desc)

	values, err := v.Field("values")
	require.NoError(t, err)
	require.NoError(t, values.CopyIn([]int64{1, 2, 3}))

	out, err := values.CopyOut()
	require.NoError(t, err)
	arr := out.(*SharedArray)
	assert.Equal(t, 3, arr.Len())
	assert.Equal(t, []int64{1, 2, 3}, arr.Ints())
}

func TestSharedArray_RefRelease(t *testing.T) {
	a := NewSharedArray(Int32, nil, 2)
	assert.True(t, a.IsUnique())

	alias := a.Ref()
	assert.False(t, a.IsUnique())

	alias.Release()
	assert.True(t, a.IsUnique())
}

func TestSharedArray_Clone_IsIndependent(t *testing.T) {
	a := NewSharedArray(Int32, nil, 2)
	a.SetInts([]int64{1, 2})

	b := a.Clone()
	b.SetInts([]int64{9, 9})

	assert.Equal(t, []int64{1, 2}, a.Ints())
	assert.Equal(t, []int64{9, 9}, b.Ints())
}

func TestSharedArray_AnyAElementsStartNil(t *testing.T) {
	desc, err := NewTypeDef(Struct, "demo_t", MAnyA("items")).Finalize()
	require.NoError(t, err)
	v := Build(desc)

	items, err := v.Field("items")
	require.NoError(t, err)
	require.NoError(t, items.Resize(2))

	elem, err := items.SetAnyAt(0, mustScalarDesc(t, Int32))
	require.NoError(t, err)
	require.NoError(t, elem.CopyIn(int64(3)))

	arr := items.Array()
	require.Nil(t, arr.compounds[1], "un-set AnyA elements stay nil until SetAnyAt")
}

func TestSharedArray_CloneToleratesNilAnyASlots(t *testing.T) {
	desc, err := NewTypeDef(Struct, "demo_t", MAnyA("items")).Finalize()
	require.NoError(t, err)
	v := Build(desc)

	items, err := v.Field("items")
	require.NoError(t, err)
	require.NoError(t, items.Resize(2))

	elem, err := items.SetAnyAt(0, mustScalarDesc(t, Int32))
	require.NoError(t, err)
	require.NoError(t, elem.CopyIn(int64(3)))

	clone := items.Array().Clone()
	require.Len(t, clone.Compounds(), 2)
	assert.Nil(t, clone.Compounds()[1], "a nil AnyA slot stays nil through Clone instead of panicking")
	require.NotNil(t, clone.Compounds()[0])
}

func mustScalarDesc(t *testing.T, code TypeCode) *TypeDesc {
	t.Helper()
	desc, err := NewScalarTypeDef(code).Finalize()
	require.NoError(t, err)
	return desc
}
