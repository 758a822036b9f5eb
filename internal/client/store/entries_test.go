package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/asorokin/decat/internal/client/api"
	"github.com/asorokin/decat/internal/client/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	lastQuery *query.Query
	page      *api.EntriesPage
	listErr   error

	created   *api.Entry
	createErr error
	updated   *api.Entry
	updateErr error
	deleteErr error
}

func (f *fakeBackend) ListEntries(ctx context.Context, q *query.Query) (*api.EntriesPage, error) {
	f.lastQuery = q
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.page, nil
}

func (f *fakeBackend) CreateEntry(ctx context.Context, fields api.EntryFields) (*api.Entry, error) {
	return f.created, f.createErr
}

func (f *fakeBackend) UpdateEntry(ctx context.Context, id int64, fields api.EntryFields) (*api.Entry, error) {
	return f.updated, f.updateErr
}

func (f *fakeBackend) DeleteEntry(ctx context.Context, id int64) error {
	return f.deleteErr
}

func makeEntries(ids ...int64) []api.Entry {
	out := make([]api.Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, api.Entry{ID: id, CreatedAt: time.Unix(id, 0).UTC()})
	}
	return out
}

func TestFetch(t *testing.T) {
	t.Run("success replaces entries", func(t *testing.T) {
		backend := &fakeBackend{page: &api.EntriesPage{Entries: makeEntries(3, 2, 1), Count: 25}}
		s := NewEntries(backend)

		require.True(t, s.Snapshot().InitialLoad)

		s.Fetch(context.Background())

		snap := s.Snapshot()
		assert.Equal(t, StatusFulfilled, snap.FetchStatus)
		assert.Len(t, snap.Entries, 3)
		assert.EqualValues(t, 25, snap.Count)
		assert.Empty(t, snap.Err)
		assert.False(t, snap.InitialLoad)
		assert.True(t, snap.HasMore())

		v := backend.lastQuery.Values()
		assert.Equal(t, "0", v.Get("offset"))
		assert.Equal(t, "10", v.Get("limit"))
		assert.Equal(t, "created_at.desc", v.Get("order"))
	})

	t.Run("failure records error and ends initial load", func(t *testing.T) {
		backend := &fakeBackend{listErr: errors.New("boom")}
		s := NewEntries(backend)

		s.Fetch(context.Background())

		snap := s.Snapshot()
		assert.Equal(t, StatusRejected, snap.FetchStatus)
		assert.Equal(t, "boom", snap.Err)
		assert.False(t, snap.InitialLoad)
	})

	t.Run("uses search term and sort order", func(t *testing.T) {
		backend := &fakeBackend{page: &api.EntriesPage{}}
		s := NewEntries(backend)
		s.SetSearchTerm("spider")
		s.SetAscending(true)

		s.Fetch(context.Background())

		v := backend.lastQuery.Values()
		assert.Equal(t, "created_at.asc", v.Get("order"))
		assert.Contains(t, v.Get("or"), "worst_case.ilike.*spider*")
	})

	t.Run("short term applies no filter", func(t *testing.T) {
		backend := &fakeBackend{page: &api.EntriesPage{}}
		s := NewEntries(backend)
		s.SetSearchTerm("ab")

		s.Fetch(context.Background())

		assert.Empty(t, backend.lastQuery.Values().Get("or"))
	})
}

func TestLoadMore(t *testing.T) {
	t.Run("appends next page from current length", func(t *testing.T) {
		backend := &fakeBackend{page: &api.EntriesPage{Entries: makeEntries(10, 9, 8), Count: 25}}
		s := NewEntries(backend)
		s.Fetch(context.Background())

		backend.page = &api.EntriesPage{Entries: makeEntries(7, 6), Count: 25}
		s.LoadMore(context.Background())

		snap := s.Snapshot()
		assert.Equal(t, StatusFulfilled, snap.LoadMoreStatus)
		assert.Len(t, snap.Entries, 5)
		assert.EqualValues(t, 7, snap.Entries[3].ID)

		v := backend.lastQuery.Values()
		assert.Equal(t, "3", v.Get("offset"))
		assert.Equal(t, "10", v.Get("limit"))
	})

	t.Run("failure leaves fetch status alone", func(t *testing.T) {
		backend := &fakeBackend{page: &api.EntriesPage{Entries: makeEntries(1), Count: 2}}
		s := NewEntries(backend)
		s.Fetch(context.Background())

		backend.listErr = errors.New("offline")
		s.LoadMore(context.Background())

		snap := s.Snapshot()
		assert.Equal(t, StatusFulfilled, snap.FetchStatus)
		assert.Equal(t, StatusRejected, snap.LoadMoreStatus)
		assert.Equal(t, "offline", snap.Err)
		assert.Len(t, snap.Entries, 1)
	})
}

func TestCreate(t *testing.T) {
	t.Run("prepends regardless of sort order", func(t *testing.T) {
		backend := &fakeBackend{page: &api.EntriesPage{Entries: makeEntries(1, 2), Count: 2}}
		s := NewEntries(backend)
		s.SetAscending(true)
		s.Fetch(context.Background())

		backend.created = &api.Entry{ID: 99}
		s.Create(context.Background(), api.EntryFields{})

		snap := s.Snapshot()
		assert.Equal(t, StatusFulfilled, snap.MutateStatus)
		assert.EqualValues(t, 99, snap.Entries[0].ID)
		assert.Len(t, snap.Entries, 3)
	})

	t.Run("count waits for the next fetch", func(t *testing.T) {
		backend := &fakeBackend{page: &api.EntriesPage{Entries: makeEntries(1), Count: 1}}
		s := NewEntries(backend)
		s.Fetch(context.Background())

		backend.created = &api.Entry{ID: 2}
		s.Create(context.Background(), api.EntryFields{})

		assert.EqualValues(t, 1, s.Snapshot().Count)

		backend.page = &api.EntriesPage{Entries: makeEntries(2, 1), Count: 2}
		s.Fetch(context.Background())

		assert.EqualValues(t, 2, s.Snapshot().Count)
	})

	t.Run("failure lands in state, list untouched", func(t *testing.T) {
		backend := &fakeBackend{createErr: errors.New("rejected")}
		s := NewEntries(backend)

		s.Create(context.Background(), api.EntryFields{})

		snap := s.Snapshot()
		assert.Equal(t, StatusRejected, snap.MutateStatus)
		assert.Equal(t, "rejected", snap.Err)
		assert.Empty(t, snap.Entries)
	})
}

func TestEdit(t *testing.T) {
	t.Run("updates in place, order preserved", func(t *testing.T) {
		backend := &fakeBackend{page: &api.EntriesPage{Entries: makeEntries(3, 2, 1), Count: 3}}
		s := NewEntries(backend)
		s.Fetch(context.Background())

		backend.updated = &api.Entry{ID: 2, WorstCase: "revised"}
		s.Edit(context.Background(), 2, api.EntryFields{WorstCase: "revised"})

		snap := s.Snapshot()
		require.Len(t, snap.Entries, 3)
		assert.Equal(t, StatusFulfilled, snap.MutateStatus)
		assert.EqualValues(t, 3, snap.Entries[0].ID)
		assert.Equal(t, "revised", snap.Entries[1].WorstCase)
		assert.EqualValues(t, 1, snap.Entries[2].ID)
	})

	t.Run("failure lands in state", func(t *testing.T) {
		backend := &fakeBackend{page: &api.EntriesPage{Entries: makeEntries(1), Count: 1}}
		s := NewEntries(backend)
		s.Fetch(context.Background())

		backend.updateErr = errors.New("offline")
		s.Edit(context.Background(), 1, api.EntryFields{})

		snap := s.Snapshot()
		assert.Equal(t, StatusRejected, snap.MutateStatus)
		assert.Equal(t, "offline", snap.Err)
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes by id, count waits for the next fetch", func(t *testing.T) {
		backend := &fakeBackend{page: &api.EntriesPage{Entries: makeEntries(3, 2, 1), Count: 3}}
		s := NewEntries(backend)
		s.Fetch(context.Background())

		s.Delete(context.Background(), 2)

		snap := s.Snapshot()
		assert.Equal(t, StatusFulfilled, snap.MutateStatus)
		assert.Len(t, snap.Entries, 2)
		assert.EqualValues(t, 3, snap.Count)
		_, found := snap.EntryByID(2)
		assert.False(t, found)
	})

	t.Run("unknown id is a no-op on the list", func(t *testing.T) {
		backend := &fakeBackend{page: &api.EntriesPage{Entries: makeEntries(1), Count: 1}}
		s := NewEntries(backend)
		s.Fetch(context.Background())

		s.Delete(context.Background(), 42)

		snap := s.Snapshot()
		assert.Len(t, snap.Entries, 1)
		assert.EqualValues(t, 1, snap.Count)
	})

	t.Run("backend failure keeps the entry", func(t *testing.T) {
		backend := &fakeBackend{page: &api.EntriesPage{Entries: makeEntries(1), Count: 1}}
		s := NewEntries(backend)
		s.Fetch(context.Background())

		backend.deleteErr = errors.New("nope")
		s.Delete(context.Background(), 1)

		snap := s.Snapshot()
		assert.Equal(t, StatusRejected, snap.MutateStatus)
		assert.Equal(t, "nope", snap.Err)
		assert.Len(t, snap.Entries, 1)
	})
}

func TestTargets(t *testing.T) {
	s := NewEntries(&fakeBackend{})

	s.SetDeleteTarget(5)
	snap := s.Snapshot()
	assert.True(t, snap.HasDeleteTarget)
	assert.EqualValues(t, 5, snap.DeleteTargetID)

	s.ClearDeleteTarget()
	assert.False(t, s.Snapshot().HasDeleteTarget)

	s.SetEditTarget(7)
	snap = s.Snapshot()
	assert.True(t, snap.HasEditTarget)
	assert.EqualValues(t, 7, snap.EditTargetID)

	s.ClearEditTarget()
	assert.False(t, s.Snapshot().HasEditTarget)
}

func TestSnapshotIsACopy(t *testing.T) {
	backend := &fakeBackend{page: &api.EntriesPage{Entries: makeEntries(1, 2), Count: 2}}
	s := NewEntries(backend)
	s.Fetch(context.Background())

	snap := s.Snapshot()
	snap.Entries[0].WorstCase = "mutated"

	assert.Empty(t, s.Snapshot().Entries[0].WorstCase)
}
