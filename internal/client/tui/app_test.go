package tui

import (
	"testing"

	"github.com/asorokin/decat/internal/client/api"
	"github.com/asorokin/decat/internal/client/store"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel() *Model {
	m := New(Options{DarkMode: true})
	m.width = 80
	m.height = 24
	return m
}

func TestStaleDebounceTimerIsIgnored(t *testing.T) {
	m := newTestModel()
	m.debounceSeq = 5

	_, cmd := m.Update(searchDebounceMsg{seq: 3})
	assert.Nil(t, cmd)

	_, cmd = m.Update(searchDebounceMsg{seq: 5})
	assert.NotNil(t, cmd)
}

func TestDebounceCommitsSearchTerm(t *testing.T) {
	m := newTestModel()
	m.searchInput.SetValue("spiders")
	m.debounceSeq = 1

	m.Update(searchDebounceMsg{seq: 1})

	assert.Equal(t, "spiders", m.entries.Snapshot().SearchTerm)
}

func TestSortToggleTriggersFetch(t *testing.T) {
	m := newTestModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})

	assert.NotNil(t, cmd)
	assert.True(t, m.entries.Snapshot().Ascending)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	assert.NotNil(t, cmd)
	assert.False(t, m.entries.Snapshot().Ascending)
}

func TestAddKeyOpensForm(t *testing.T) {
	m := newTestModel()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	assert.True(t, m.dialogs.IsOpen(store.DialogAdd))
	require.NotNil(t, m.form)
	assert.False(t, m.form.editing)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.dialogs.IsOpen(store.DialogAdd))
	assert.Nil(t, m.form)
}

func TestToastExpiryRemovesToast(t *testing.T) {
	m := newTestModel()
	id := m.toasts.Info("hello", "world")

	m.Update(toastExpiredMsg{id: id})

	assert.Empty(t, m.toasts.Items())
}

func TestFormFocusCycle(t *testing.T) {
	f := newEntryForm()
	assert.Equal(t, 0, f.focused)

	f.focusNext()
	assert.Equal(t, 1, f.focused)

	f.focusPrev()
	f.focusPrev()
	assert.Equal(t, formFieldCount-1, f.focused)

	f.focusNext()
	assert.Equal(t, 0, f.focused)
}

func TestEditFormPrefillsFields(t *testing.T) {
	f := newEditForm(api.Entry{
		ID:                9,
		WorstCase:         "a",
		WorstConsequences: "b",
		WhatCanIDo:        "c",
		HowWillICope:      "d",
	})

	assert.True(t, f.editing)
	assert.EqualValues(t, 9, f.id)
	assert.Equal(t, api.EntryFields{
		WorstCase:         "a",
		WorstConsequences: "b",
		WhatCanIDo:        "c",
		HowWillICope:      "d",
	}, f.fields())
}

func TestThemeForMode(t *testing.T) {
	assert.Equal(t, "dark", ThemeForMode(true).Name)
	assert.Equal(t, "light", ThemeForMode(false).Name)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "multi line", truncate("multi\nline", 20))
	assert.Equal(t, "exactly...", truncate("exactly-this-long", 10))
}
