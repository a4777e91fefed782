package pvdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectFields_EmptyRequestSelectsEverything(t *testing.T) {
	full, err := NTScalar(Int32).Finalize()
	require.NoError(t, err)

	empty, err := NewTypeDef(Struct, "").Finalize()
	require.NoError(t, err)
	req := Build(empty)

	got, err := SelectFields(full, req)
	require.NoError(t, err)
	assert.True(t, got.Equal(full))
}

func TestSelectFields_PrunesToNamedPaths(t *testing.T) {
	full, err := NTScalar(Int32).Finalize()
	require.NoError(t, err)

	reqDesc, err := NewTypeDef(Struct, "",
		M(Int32, "value"),
	).Finalize()
	require.NoError(t, err)
	req := Build(reqDesc)

	got, err := SelectFields(full, req)
	require.NoError(t, err)

	_, ok := got.Lookup("value")
	assert.True(t, ok)
	_, ok = got.Lookup("alarm")
	assert.False(t, ok, "fields not named by the request must be pruned")
}

func TestSelectFields_UnknownRequestedFieldErrors(t *testing.T) {
	full, err := NTScalar(Int32).Finalize()
	require.NoError(t, err)

	reqDesc, err := NewTypeDef(Struct, "", M(Int32, "nonexistent")).Finalize()
	require.NoError(t, err)
	req := Build(reqDesc)

	_, err = SelectFields(full, req)
	assert.ErrorIs(t, err, ErrNoField)
}
