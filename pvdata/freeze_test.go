package pvdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeze_SucceedsWhenUnique(t *testing.T) {
	v := Build(demoScalarDesc(t))
	frozen, err := v.Freeze()
	require.NoError(t, err)
	assert.True(t, frozen.IsFrozen())
	assert.False(t, frozen.IsMutable())
}

func TestFreeze_FailsWhenAliased(t *testing.T) {
	v := Build(demoScalarDesc(t))
	alias := v.Ref()
	defer alias.Release()

	_, err := v.Freeze()
	assert.ErrorIs(t, err, ErrFreeze)
}

func TestFreeze_FailsOnAlreadyImmutableValue(t *testing.T) {
	v := Build(demoScalarDesc(t))
	frozen, err := v.Freeze()
	require.NoError(t, err)

	_, err = frozen.Freeze()
	assert.ErrorIs(t, err, ErrFreeze)
}

func TestThaw_InPlaceWhenUnique(t *testing.T) {
	v := Build(demoScalarDesc(t))
	frozen, err := v.Freeze()
	require.NoError(t, err)

	thawed := frozen.Thaw()
	assert.True(t, thawed.IsMutable())
	assert.False(t, thawed.IsFrozen())
}

func TestThaw_ClonesWhenShared(t *testing.T) {
	v := Build(demoScalarDesc(t))
	frozen, err := v.Freeze()
	require.NoError(t, err)

	alias := frozen.Ref()
	defer alias.Release()

	thawed := frozen.Thaw()
	assert.True(t, thawed.IsMutable())
	// The original frozen handle must remain untouched by the thawed clone.
	value, err := thawed.Field("value")
	require.NoError(t, err)
	require.NoError(t, value.CopyIn(int64(1)))

	frozenValue, err := frozen.Field("value")
	require.NoError(t, err)
	_, err = frozenValue.CopyOut()
	assert.ErrorIs(t, err, ErrNoField)
}
