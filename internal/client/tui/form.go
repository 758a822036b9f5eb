package tui

import (
	"github.com/asorokin/decat/internal/client/api"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// formFieldCount is the number of inputs on the entry form.
const formFieldCount = 4

var formLabels = [formFieldCount]string{
	"Worst case",
	"Worst consequences",
	"What can I do",
	"How will I cope",
}

// entryForm is the add/edit form: four text areas cycled with tab.
type entryForm struct {
	inputs  [formFieldCount]textarea.Model
	focused int
	editing bool
	id      int64
	errMsg  string
}

func newEntryForm() *entryForm {
	f := &entryForm{}
	for i := range f.inputs {
		ta := textarea.New()
		ta.Placeholder = formLabels[i]
		ta.SetHeight(3)
		ta.CharLimit = 0
		f.inputs[i] = ta
	}
	f.inputs[0].Focus()
	return f
}

// newEditForm pre-fills the form from an existing entry.
func newEditForm(entry api.Entry) *entryForm {
	f := newEntryForm()
	f.editing = true
	f.id = entry.ID
	f.inputs[0].SetValue(entry.WorstCase)
	f.inputs[1].SetValue(entry.WorstConsequences)
	f.inputs[2].SetValue(entry.WhatCanIDo)
	f.inputs[3].SetValue(entry.HowWillICope)
	return f
}

func (f *entryForm) focusNext() {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused + 1) % formFieldCount
	f.inputs[f.focused].Focus()
}

func (f *entryForm) focusPrev() {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused + formFieldCount - 1) % formFieldCount
	f.inputs[f.focused].Focus()
}

func (f *entryForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd
}

func (f *entryForm) fields() api.EntryFields {
	return api.EntryFields{
		WorstCase:         f.inputs[0].Value(),
		WorstConsequences: f.inputs[1].Value(),
		WhatCanIDo:        f.inputs[2].Value(),
		HowWillICope:      f.inputs[3].Value(),
	}
}

func (f *entryForm) setSize(width int) {
	for i := range f.inputs {
		f.inputs[i].SetWidth(width)
	}
}
