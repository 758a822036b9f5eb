package tui

import (
	"time"

	"github.com/asorokin/decat/internal/client/store"
	tea "github.com/charmbracelet/bubbletea"
)

// Commands run the store operations off the update loop. The stores record
// their own results; the returned messages just trigger a re-render.

func (m *Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		m.entries.Fetch(m.ctx)
		return fetchDoneMsg{}
	}
}

func (m *Model) loadMoreCmd() tea.Cmd {
	return func() tea.Msg {
		m.entries.LoadMore(m.ctx)
		return loadMoreDoneMsg{}
	}
}

func (m *Model) saveFormCmd() tea.Cmd {
	form := m.form
	if form == nil {
		return nil
	}

	fields := form.fields()
	if form.editing {
		id := form.id
		return func() tea.Msg {
			m.entries.Edit(m.ctx, id, fields)
			return entrySavedMsg{editing: true}
		}
	}
	return func() tea.Msg {
		m.entries.Create(m.ctx, fields)
		return entrySavedMsg{}
	}
}

func (m *Model) deleteCmd() tea.Cmd {
	snap := m.entries.Snapshot()
	if !snap.HasDeleteTarget {
		return nil
	}
	id := snap.DeleteTargetID
	return func() tea.Msg {
		m.entries.Delete(m.ctx, id)
		return entryDeletedMsg{}
	}
}

func (m *Model) requestLoginLinkCmd(email string) tea.Cmd {
	return func() tea.Msg {
		return loginLinkSentMsg{err: m.session.RequestLoginLink(m.ctx, email)}
	}
}

func (m *Model) signInCmd(token string) tea.Cmd {
	return func() tea.Msg {
		return signedInMsg{err: m.session.SignIn(m.ctx, token)}
	}
}

func (m *Model) signOutCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.session.SignOut(m.ctx)
		return signedOutMsg{}
	}
}

func (m *Model) exportCmd() tea.Cmd {
	return func() tea.Msg {
		result, err := m.client.Export(m.ctx)
		return exportDoneMsg{result: result, err: err}
	}
}

// toastCmd schedules removal of the toast after its duration plus the exit
// animation delay.
func (m *Model) toastCmd(id string) tea.Cmd {
	duration := store.DefaultToastDuration
	for _, t := range m.toasts.Items() {
		if t.ID == id {
			duration = t.Duration
			break
		}
	}
	return tea.Tick(duration+toastExitDelay, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
