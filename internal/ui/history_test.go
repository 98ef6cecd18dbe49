package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-templategen/internal/history"
)

func TestHistoryAdd(t *testing.T) {
	h := NewHistory(3)

	h.Add("")
	h.Add("one")
	h.Add("one")
	h.Add("two")
	assert.Equal(t, []string{"one", "two"}, h.GetAll())

	h.Add("three")
	h.Add("four")
	assert.Equal(t, []string{"two", "three", "four"}, h.GetAll())
}

func TestHistoryAddUnique(t *testing.T) {
	h := NewHistory(10)
	h.Add("a")
	h.Add("b")
	h.AddUnique("a")

	assert.Equal(t, []string{"b", "a"}, h.GetAll())
}

func TestHistoryNavigation(t *testing.T) {
	h := NewHistory(10)
	h.Add("first")
	h.Add("second")

	got, ok := h.Previous("typing")
	assert.True(t, ok)
	assert.Equal(t, "second", got)
	assert.True(t, h.IsNavigating())

	got, _ = h.Previous("ignored")
	assert.Equal(t, "first", got)
	got, _ = h.Previous("ignored")
	assert.Equal(t, "first", got)

	got, _ = h.Next()
	assert.Equal(t, "second", got)
	got, ok = h.Next()
	assert.True(t, ok)
	assert.Equal(t, "typing", got)
	assert.False(t, h.IsNavigating())

	_, ok = h.Next()
	assert.False(t, ok)
}

func TestHistoryPersistence(t *testing.T) {
	manager, err := history.NewManagerAt(t.TempDir())
	require.NoError(t, err)

	h, err := NewHistoryWithManager(2, manager, history.PropertiesFile)
	require.NoError(t, err)
	require.NoError(t, h.Add("donor.age"))
	require.NoError(t, h.Add("donor.sex"))
	require.NoError(t, h.Add("donor.weight"))

	reloaded, err := NewHistoryWithManager(2, manager, history.PropertiesFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"donor.sex", "donor.weight"}, reloaded.GetAll())
}
