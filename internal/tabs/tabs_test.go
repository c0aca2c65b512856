package tabs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRenameRecolorDelete(t *testing.T) {
	s := NewService(t.TempDir())

	tab, err := s.Create("Trips", "#ff0000")
	require.NoError(t, err)
	assert.NotEmpty(t, tab.ID)
	assert.Equal(t, "Trips", tab.Name)

	renamed, err := s.Rename(tab.ID, "Hikes")
	require.NoError(t, err)
	assert.Equal(t, "Hikes", renamed.Name)

	recolored, err := s.Recolor(tab.ID, "#00ff00")
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", recolored.Color)

	got, ok := s.Get(tab.ID)
	require.True(t, ok)
	assert.Equal(t, "Hikes", got.Name)
	assert.Equal(t, "#00ff00", got.Color)

	require.NoError(t, s.Delete(tab.ID))
	_, ok = s.Get(tab.ID)
	assert.False(t, ok)
}

func TestCreateCapsAtMax(t *testing.T) {
	s := NewService(t.TempDir())

	for i := 0; i < MaxTabs; i++ {
		_, err := s.Create("", "")
		require.NoError(t, err)
	}
	_, err := s.Create("overflow", "")
	require.Error(t, err)
	assert.Len(t, s.List(), MaxTabs)
}

func TestPersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()

	s := NewService(dir)
	tab, err := s.Create("Saved", "#123456")
	require.NoError(t, err)

	reloaded := NewService(dir)
	got, ok := reloaded.Get(tab.ID)
	require.True(t, ok)
	assert.Equal(t, "Saved", got.Name)
	assert.Equal(t, "#123456", got.Color)
}

func TestUnknownTabErrors(t *testing.T) {
	s := NewService(t.TempDir())

	_, err := s.Rename("nope", "x")
	assert.Error(t, err)
	assert.Error(t, s.Delete("nope"))
}
