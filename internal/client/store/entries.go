// Package store holds the client-side view state: the entry collection,
// dialog visibility, toast queue and theme choice. Each store owns its state
// exclusively and hands out copies, never references.
package store

import (
	"context"
	"sync"

	"github.com/asorokin/decat/internal/client/api"
	"github.com/asorokin/decat/internal/client/query"
)

// entriesLimit is the page size for listing and for each load-more step.
const entriesLimit = 10

// entriesBackend is the slice of the API client the entry store uses.
type entriesBackend interface {
	ListEntries(ctx context.Context, q *query.Query) (*api.EntriesPage, error)
	CreateEntry(ctx context.Context, fields api.EntryFields) (*api.Entry, error)
	UpdateEntry(ctx context.Context, id int64, fields api.EntryFields) (*api.Entry, error)
	DeleteEntry(ctx context.Context, id int64) error
}

// EntriesSnapshot is a copy of the entry collection state for rendering.
type EntriesSnapshot struct {
	Entries         []api.Entry
	Count           int64
	FetchStatus     Status
	LoadMoreStatus  Status
	MutateStatus    Status
	Err             string
	SearchTerm      string
	Ascending       bool
	InitialLoad     bool
	DeleteTargetID  int64
	HasDeleteTarget bool
	EditTargetID    int64
	HasEditTarget   bool
}

// HasMore reports whether the backend holds entries beyond the loaded page.
func (s EntriesSnapshot) HasMore() bool {
	return int64(len(s.Entries)) < s.Count
}

// EntryByID returns the loaded entry with the given id.
func (s EntriesSnapshot) EntryByID(id int64) (api.Entry, bool) {
	for _, e := range s.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return api.Entry{}, false
}

// Entries is the entry collection store. Fetch and LoadMore keep independent
// statuses so loading another page does not blank the list that is already
// on screen. Responses are applied in arrival order, not request order;
// debouncing the search input is the only mitigation for overlapping
// fetches.
type Entries struct {
	backend entriesBackend

	mu    sync.Mutex
	state EntriesSnapshot
}

func NewEntries(backend entriesBackend) *Entries {
	return &Entries{
		backend: backend,
		state:   EntriesSnapshot{InitialLoad: true},
	}
}

// Snapshot returns a copy of the current state.
func (s *Entries) Snapshot() EntriesSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	snap.Entries = append([]api.Entry(nil), s.state.Entries...)
	return snap
}

func (s *Entries) buildQuery(term string, ascending bool, from, to int) *query.Query {
	q := query.NewEntriesQuery().Order(ascending).Range(from, to)
	return query.BuildSearchQuery(q, term)
}

// Fetch loads the first page for the current search term and sort order,
// replacing whatever is loaded. Failures are recorded, not returned.
func (s *Entries) Fetch(ctx context.Context) {
	s.mu.Lock()
	s.state.FetchStatus = StatusPending
	term, ascending := s.state.SearchTerm, s.state.Ascending
	s.mu.Unlock()

	page, err := s.backend.ListEntries(ctx, s.buildQuery(term, ascending, 0, entriesLimit-1))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.InitialLoad = false
	if err != nil {
		s.state.FetchStatus = StatusRejected
		s.state.Err = err.Error()
		return
	}

	s.state.FetchStatus = StatusFulfilled
	s.state.Err = ""
	s.state.Entries = page.Entries
	s.state.Count = page.Count
}

// LoadMore appends the next page after the loaded entries. The primary fetch
// status is left alone.
func (s *Entries) LoadMore(ctx context.Context) {
	s.mu.Lock()
	s.state.LoadMoreStatus = StatusPending
	term, ascending := s.state.SearchTerm, s.state.Ascending
	offset := len(s.state.Entries)
	s.mu.Unlock()

	page, err := s.backend.ListEntries(ctx, s.buildQuery(term, ascending, offset, offset+entriesLimit-1))

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state.LoadMoreStatus = StatusRejected
		s.state.Err = err.Error()
		return
	}

	s.state.LoadMoreStatus = StatusFulfilled
	s.state.Entries = append(s.state.Entries, page.Entries...)
	s.state.Count = page.Count
}

// Create inserts a new entry and prepends the returned row. The row goes to
// the front even when the list is sorted oldest first; the next fetch
// reconciles the order. Count is left to the next fetch too. Failures are
// recorded, not returned.
func (s *Entries) Create(ctx context.Context, fields api.EntryFields) {
	s.mu.Lock()
	s.state.MutateStatus = StatusPending
	s.mu.Unlock()

	entry, err := s.backend.CreateEntry(ctx, fields)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state.MutateStatus = StatusRejected
		s.state.Err = err.Error()
		return
	}

	s.state.MutateStatus = StatusFulfilled
	s.state.Err = ""
	s.state.Entries = append([]api.Entry{*entry}, s.state.Entries...)
}

// Edit updates the entry with the given id in place. Order is preserved.
// Failures are recorded, not returned.
func (s *Entries) Edit(ctx context.Context, id int64, fields api.EntryFields) {
	s.mu.Lock()
	s.state.MutateStatus = StatusPending
	s.mu.Unlock()

	entry, err := s.backend.UpdateEntry(ctx, id, fields)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state.MutateStatus = StatusRejected
		s.state.Err = err.Error()
		return
	}

	s.state.MutateStatus = StatusFulfilled
	s.state.Err = ""
	for i := range s.state.Entries {
		if s.state.Entries[i].ID == id {
			s.state.Entries[i] = *entry
			break
		}
	}
}

// Delete removes the entry with the given id. Removing an id that is not
// loaded is a no-op on the list, though the backend call still happens.
// Count is left to the next fetch. Failures are recorded, not returned.
func (s *Entries) Delete(ctx context.Context, id int64) {
	s.mu.Lock()
	s.state.MutateStatus = StatusPending
	s.mu.Unlock()

	err := s.backend.DeleteEntry(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state.MutateStatus = StatusRejected
		s.state.Err = err.Error()
		return
	}

	s.state.MutateStatus = StatusFulfilled
	s.state.Err = ""
	for i := range s.state.Entries {
		if s.state.Entries[i].ID == id {
			s.state.Entries = append(s.state.Entries[:i], s.state.Entries[i+1:]...)
			break
		}
	}
}

// SetSearchTerm stores the term without triggering a fetch. Callers decide
// when to fetch, normally after a debounce delay.
func (s *Entries) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SearchTerm = term
}

// SetAscending stores the sort order without triggering a fetch.
func (s *Entries) SetAscending(ascending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Ascending = ascending
}

// SetDeleteTarget marks which entry a delete confirmation targets.
func (s *Entries) SetDeleteTarget(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DeleteTargetID = id
	s.state.HasDeleteTarget = true
}

func (s *Entries) ClearDeleteTarget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DeleteTargetID = 0
	s.state.HasDeleteTarget = false
}

// SetEditTarget marks which entry an edit dialog targets.
func (s *Entries) SetEditTarget(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.EditTargetID = id
	s.state.HasEditTarget = true
}

func (s *Entries) ClearEditTarget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.EditTargetID = 0
	s.state.HasEditTarget = false
}
