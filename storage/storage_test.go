package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundtrip(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.Set(KeyToken, "tok-abc"))

	got, err := st.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", got)
}

func TestGetMissingKeyIsEmpty(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)

	got, err := st.Get(KeyUser)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDelete(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.Set(KeyUser, `{"id":"u1"}`))
	require.NoError(t, st.Delete(KeyUser))

	got, err := st.Get(KeyUser)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Deleting again is fine.
	require.NoError(t, st.Delete(KeyUser))
}

func TestSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	st, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, st.Set(KeyToken, "persisted"))

	st2, err := Open(dir)
	require.NoError(t, err)
	got, err := st2.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)
}
