package tui

import "github.com/asorokin/decat/internal/client/api"

// Messages delivered back into the update loop when background work
// finishes. The stores are mutated by the commands; these messages only make
// the model re-read its snapshot.

type fetchDoneMsg struct{}

type loadMoreDoneMsg struct{}

type entrySavedMsg struct {
	editing bool
}

type entryDeletedMsg struct{}

type loginLinkSentMsg struct {
	err error
}

type signedInMsg struct {
	err error
}

type signedOutMsg struct{}

type sessionRestoredMsg struct {
	restored bool
}

type exportDoneMsg struct {
	result *api.ExportResult
	err    error
}

// searchDebounceMsg fires when the search debounce timer elapses. Stale
// timers are recognized by sequence number and dropped.
type searchDebounceMsg struct {
	seq int
}

// toastExpiredMsg removes a toast after its display duration.
type toastExpiredMsg struct {
	id string
}
