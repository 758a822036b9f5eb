// Package tui is the terminal front end: a list of diary entries with
// search, sort, pagination and modal dialogs for adding, editing and
// deleting entries.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/asorokin/decat/internal/client/api"
	"github.com/asorokin/decat/internal/client/prefs"
	"github.com/asorokin/decat/internal/client/session"
	"github.com/asorokin/decat/internal/client/store"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// searchDebounce is how long search input must be quiet before a fetch.
const searchDebounce = time.Second

// toastExitDelay is the extra time a toast lingers for its exit animation.
const toastExitDelay = 300 * time.Millisecond

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *api.Client
	Session   *session.Manager
	PrefsPath string
	DarkMode  bool
}

// Model is the root application state.
type Model struct {
	ctx       context.Context
	client    *api.Client
	session   *session.Manager
	prefsPath string

	entries *store.Entries
	dialogs *store.Dialogs
	toasts  *store.Toasts
	theme   *store.Theme

	keys   keyMap
	styles Styles

	width  int
	height int

	selected int

	searchInput textinput.Model
	searching   bool
	debounceSeq int

	form *entryForm

	authEmail textinput.Model
	authToken textinput.Model
	authStage int // 0 = email, 1 = token
	authErr   string

	infoMessage string
}

func New(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	search := textinput.New()
	search.Placeholder = "search entries"
	search.CharLimit = 120

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254

	token := textinput.New()
	token.Placeholder = "paste login token"
	token.CharLimit = 120

	theme := store.NewTheme(opts.DarkMode)

	return &Model{
		ctx:         ctx,
		client:      opts.Client,
		session:     opts.Session,
		prefsPath:   opts.PrefsPath,
		entries:     store.NewEntries(opts.Client),
		dialogs:     store.NewDialogs(),
		toasts:      store.NewToasts(),
		theme:       theme,
		keys:        defaultKeyMap(),
		styles:      ThemeForMode(theme.Dark()).Styles(),
		searchInput: search,
		authEmail:   email,
		authToken:   token,
	}
}

func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		return sessionRestoredMsg{restored: m.session.Restore(m.ctx)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = msg.Width - 20
		if m.form != nil {
			m.form.setSize(msg.Width - 10)
		}
		return m, nil

	case sessionRestoredMsg:
		if !msg.restored {
			m.dialogs.Open(store.DialogAuth)
			m.authEmail.Focus()
			return m, nil
		}
		return m, m.fetchCmd()

	case fetchDoneMsg, loadMoreDoneMsg:
		m.clampSelection()
		return m, nil

	case searchDebounceMsg:
		if msg.seq != m.debounceSeq {
			return m, nil
		}
		m.entries.SetSearchTerm(m.searchInput.Value())
		return m, m.fetchCmd()

	case entrySavedMsg:
		return m.onEntrySaved(msg)

	case entryDeletedMsg:
		return m.onEntryDeleted(msg)

	case loginLinkSentMsg:
		if msg.err != nil {
			m.authErr = msg.err.Error()
			return m, nil
		}
		m.authErr = ""
		m.authStage = 1
		m.authEmail.Blur()
		m.authToken.Focus()
		return m, m.toastCmd(m.toasts.Info("Check your mail", "A login link is on its way"))

	case signedInMsg:
		if msg.err != nil {
			m.authErr = msg.err.Error()
			return m, nil
		}
		m.dialogs.Close(store.DialogAuth)
		m.authErr = ""
		m.authStage = 0
		m.authToken.Reset()
		return m, tea.Batch(
			m.fetchCmd(),
			m.toastCmd(m.toasts.Success("Signed in", "Welcome back")),
		)

	case signedOutMsg:
		m.dialogs.Open(store.DialogAuth)
		m.authEmail.Reset()
		m.authEmail.Focus()
		return m, m.toastCmd(m.toasts.Info("Signed out", "Session ended"))

	case exportDoneMsg:
		if msg.err != nil {
			return m, m.toastCmd(m.toasts.Danger("Export failed", msg.err.Error()))
		}
		return m, m.toastCmd(m.toasts.Success("Export ready", msg.result.URL))

	case toastExpiredMsg:
		m.toasts.Remove(msg.id)
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m, nil
}

func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal input wins over list shortcuts.
	switch {
	case m.dialogs.IsOpen(store.DialogAuth):
		return m.updateAuthDialog(msg)
	case m.dialogs.IsOpen(store.DialogAdd) || m.dialogs.IsOpen(store.DialogEdit):
		return m.updateFormDialog(msg)
	case m.dialogs.IsOpen(store.DialogDelete):
		return m.updateDeleteDialog(msg)
	case m.dialogs.IsOpen(store.DialogInfo):
		if key.Matches(msg, m.keys.Cancel) || key.Matches(msg, m.keys.Confirm) {
			m.dialogs.Close(store.DialogInfo)
		}
		return m, nil
	case m.searching:
		return m.updateSearch(msg)
	}

	snap := m.entries.Snapshot()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(snap.Entries)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.form = newEntryForm()
		m.form.setSize(m.width - 10)
		m.dialogs.Open(store.DialogAdd)
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if entry, ok := m.selectedEntry(snap); ok {
			m.entries.SetEditTarget(entry.ID)
			m.form = newEditForm(entry)
			m.form.setSize(m.width - 10)
			m.dialogs.Open(store.DialogEdit)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if entry, ok := m.selectedEntry(snap); ok {
			m.entries.SetDeleteTarget(entry.ID)
			m.dialogs.Open(store.DialogDelete)
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Sort):
		m.entries.SetAscending(!snap.Ascending)
		return m, m.fetchCmd()

	case key.Matches(msg, m.keys.LoadMore):
		if snap.HasMore() && snap.LoadMoreStatus != store.StatusPending {
			return m, m.loadMoreCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		dark := m.theme.Toggle()
		m.styles = ThemeForMode(dark).Styles()
		m.persistTheme(dark)
		return m, nil

	case key.Matches(msg, m.keys.Info):
		m.dialogs.Open(store.DialogInfo)
		return m, nil

	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()

	case key.Matches(msg, m.keys.SignOut):
		return m, m.signOutCmd()
	}

	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.searchInput.Blur()
		m.debounceSeq++
		m.entries.SetSearchTerm(m.searchInput.Value())
		return m, m.fetchCmd()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	m.debounceSeq++
	seq := m.debounceSeq
	debounce := tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
	return m, tea.Batch(cmd, debounce)
}

func (m *Model) updateFormDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.form.focusNext()
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.form.focusPrev()
		return m, nil
	case msg.Type == tea.KeyCtrlS:
		return m, m.saveFormCmd()
	}

	return m, m.form.update(msg)
}

func (m *Model) updateDeleteDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.entries.ClearDeleteTarget()
		m.dialogs.Close(store.DialogDelete)
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m, m.deleteCmd()
	}
	return m, nil
}

func (m *Model) updateAuthDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keys.Confirm):
		if m.authStage == 0 {
			email := strings.TrimSpace(m.authEmail.Value())
			if email == "" {
				m.authErr = "email is required"
				return m, nil
			}
			return m, m.requestLoginLinkCmd(email)
		}
		token := strings.TrimSpace(m.authToken.Value())
		if token == "" {
			m.authErr = "token is required"
			return m, nil
		}
		return m, m.signInCmd(token)

	case key.Matches(msg, m.keys.Cancel):
		if m.authStage == 1 {
			m.authStage = 0
			m.authToken.Blur()
			m.authEmail.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.authStage == 0 {
		m.authEmail, cmd = m.authEmail.Update(msg)
	} else {
		m.authToken, cmd = m.authToken.Update(msg)
	}
	return m, cmd
}

func (m *Model) onEntrySaved(msg entrySavedMsg) (tea.Model, tea.Cmd) {
	snap := m.entries.Snapshot()
	if snap.MutateStatus == store.StatusRejected {
		if m.form != nil {
			m.form.errMsg = snap.Err
		}
		return m, nil
	}

	editing := msg.editing
	m.closeForm()
	m.clampSelection()

	if editing {
		return m, m.toastCmd(m.toasts.Success("Saved", "Entry updated"))
	}
	return m, m.toastCmd(m.toasts.Success("Saved", "Entry added"))
}

func (m *Model) onEntryDeleted(entryDeletedMsg) (tea.Model, tea.Cmd) {
	m.entries.ClearDeleteTarget()
	m.dialogs.Close(store.DialogDelete)

	if snap := m.entries.Snapshot(); snap.MutateStatus == store.StatusRejected {
		return m, m.toastCmd(m.toasts.Danger("Delete failed", snap.Err))
	}

	m.clampSelection()
	return m, m.toastCmd(m.toasts.Success("Deleted", "Entry removed"))
}

func (m *Model) closeForm() {
	if m.form != nil && m.form.editing {
		m.entries.ClearEditTarget()
	}
	m.form = nil
	m.dialogs.Close(store.DialogAdd)
	m.dialogs.Close(store.DialogEdit)
}

func (m *Model) selectedEntry(snap store.EntriesSnapshot) (api.Entry, bool) {
	if m.selected < 0 || m.selected >= len(snap.Entries) {
		return api.Entry{}, false
	}
	return snap.Entries[m.selected], true
}

func (m *Model) clampSelection() {
	n := len(m.entries.Snapshot().Entries)
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) persistTheme(dark bool) {
	mode := prefs.ModeLight
	if dark {
		mode = prefs.ModeDark
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: mode})
}
