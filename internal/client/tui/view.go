package tui

import (
	"fmt"
	"strings"

	"github.com/asorokin/decat/internal/client/store"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var body string
	switch {
	case m.dialogs.IsOpen(store.DialogAuth):
		body = m.viewAuthDialog()
	case m.dialogs.IsOpen(store.DialogAdd) || m.dialogs.IsOpen(store.DialogEdit):
		body = m.viewFormDialog()
	case m.dialogs.IsOpen(store.DialogDelete):
		body = m.viewDeleteDialog()
	case m.dialogs.IsOpen(store.DialogInfo):
		body = m.viewInfoDialog()
	default:
		body = m.viewList()
	}

	toasts := m.viewToasts()
	if toasts == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, toasts, body)
}

func (m *Model) viewList() string {
	snap := m.entries.Snapshot()

	var b strings.Builder

	title := m.styles.Title.Render("decat")
	sort := "newest first"
	if snap.Ascending {
		sort = "oldest first"
	}
	header := fmt.Sprintf("%s  %s", title,
		m.styles.Muted.Render(fmt.Sprintf("%d of %d entries, %s", len(snap.Entries), snap.Count, sort)))
	b.WriteString(header)
	b.WriteString("\n")

	if m.searching || m.searchInput.Value() != "" {
		b.WriteString(m.styles.Accent.Render("search: "))
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case snap.InitialLoad || snap.FetchStatus == store.StatusPending:
		b.WriteString(m.styles.Muted.Render("loading entries..."))
	case snap.FetchStatus == store.StatusRejected:
		b.WriteString(m.styles.Danger.Render("could not load entries: " + snap.Err))
	case len(snap.Entries) == 0:
		b.WriteString(m.styles.Muted.Render("no entries yet, press 'a' to add one"))
	default:
		for i, entry := range snap.Entries {
			line := fmt.Sprintf("%s  %s",
				entry.CreatedAt.Local().Format("2006-01-02 15:04"),
				truncate(entry.WorstCase, m.width-24))
			if i == m.selected {
				b.WriteString(m.styles.Selected.Render("> " + line))
			} else {
				b.WriteString(m.styles.Text.Render("  " + line))
			}
			b.WriteString("\n")
		}

		if snap.HasMore() {
			if snap.LoadMoreStatus == store.StatusPending {
				b.WriteString(m.styles.Muted.Render("\nloading more..."))
			} else {
				b.WriteString(m.styles.Muted.Render("\npress 'm' to load more"))
			}
		}
	}

	if entry, ok := m.selectedEntry(snap); ok {
		b.WriteString("\n\n")
		detail := strings.Join([]string{
			m.styles.Accent.Render(formLabels[0]+": ") + entry.WorstCase,
			m.styles.Accent.Render(formLabels[1]+": ") + entry.WorstConsequences,
			m.styles.Accent.Render(formLabels[2]+": ") + entry.WhatCanIDo,
			m.styles.Accent.Render(formLabels[3]+": ") + entry.HowWillICope,
		}, "\n")
		b.WriteString(m.styles.Box.Width(m.width - 4).Render(detail))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("a add · e edit · d delete · / search · s sort · t theme · x export · i about · q quit"))

	return b.String()
}

func (m *Model) viewFormDialog() string {
	title := "New entry"
	if m.form.editing {
		title = "Edit entry"
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	for i := range m.form.inputs {
		label := formLabels[i]
		if i == m.form.focused {
			b.WriteString(m.styles.Accent.Render("▸ " + label))
		} else {
			b.WriteString(m.styles.Muted.Render("  " + label))
		}
		b.WriteString("\n")
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("\n")
	}

	if m.form.errMsg != "" {
		b.WriteString(m.styles.Danger.Render(m.form.errMsg))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Muted.Render("tab next field · ctrl+s save · esc cancel"))

	return m.overlay(m.styles.DialogBox.Render(b.String()))
}

func (m *Model) viewDeleteDialog() string {
	snap := m.entries.Snapshot()

	var preview string
	if entry, ok := snap.EntryByID(snap.DeleteTargetID); ok {
		preview = truncate(entry.WorstCase, 50)
	}

	content := strings.Join([]string{
		m.styles.Title.Render("Delete entry?"),
		"",
		preview,
		"",
		m.styles.Muted.Render("enter delete · esc cancel"),
	}, "\n")

	return m.overlay(m.styles.DialogBox.Render(content))
}

func (m *Model) viewAuthDialog() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Sign in"))
	b.WriteString("\n\n")

	if m.authStage == 0 {
		b.WriteString("Enter your email to receive a login link:\n")
		b.WriteString(m.authEmail.View())
	} else {
		b.WriteString("Paste the token from your login link:\n")
		b.WriteString(m.authToken.View())
	}
	b.WriteString("\n")

	if m.authErr != "" {
		b.WriteString(m.styles.Danger.Render(m.authErr))
		b.WriteString("\n")
	}

	if m.authStage == 0 {
		b.WriteString(m.styles.Muted.Render("enter send link · ctrl+c quit"))
	} else {
		b.WriteString(m.styles.Muted.Render("enter sign in · esc back · ctrl+c quit"))
	}

	return m.overlay(m.styles.DialogBox.Render(b.String()))
}

func (m *Model) viewInfoDialog() string {
	content := strings.Join([]string{
		m.styles.Title.Render("About decat"),
		"",
		"A catastrophizing diary. Write down the worst case,",
		"its consequences, what you can do and how you will cope.",
		"",
		m.styles.Muted.Render("esc close"),
	}, "\n")

	return m.overlay(m.styles.DialogBox.Render(content))
}

func (m *Model) viewToasts() string {
	items := m.toasts.Items()
	if len(items) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(items))
	for _, t := range items {
		var style lipgloss.Style
		switch t.Severity {
		case store.ToastSuccess:
			style = m.styles.Success
		case store.ToastWarning:
			style = m.styles.Warning
		case store.ToastDanger:
			style = m.styles.Danger
		default:
			style = m.styles.Info
		}

		text := t.Title
		if t.Message != "" {
			text += ": " + t.Message
		}
		rendered = append(rendered, m.styles.ToastBox.Render(style.Render(text)))
	}

	row := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, row)
}

func (m *Model) overlay(dialog string) string {
	return lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center, dialog)
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
