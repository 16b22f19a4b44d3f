package activity

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/frodejac/filedrop/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "activity.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := NewActivityStore(db)
	require.NoError(t, err)
	return store
}

func TestRecordAndListRecent(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(Event{Action: ActionUpload, Name: "a.txt", Outcome: "ok", CreatedAt: base}))
	require.NoError(t, store.Record(Event{Action: ActionRename, Name: "a.txt", NewName: "b.txt", Outcome: "ok", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, store.Record(Event{Action: ActionDelete, Name: "c.txt", Outcome: "not_found", RemoteAddr: "10.0.0.1:1234", CreatedAt: base.Add(2 * time.Minute)}))

	events, err := store.ListRecent(2)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, ActionDelete, events[0].Action)
	assert.Equal(t, "c.txt", events[0].Name)
	assert.False(t, events[0].Ok())
	assert.Equal(t, "10.0.0.1:1234", events[0].RemoteAddr)
	assert.NotEmpty(t, events[0].Id)
	assert.True(t, events[0].CreatedAt.Equal(base.Add(2*time.Minute)))

	assert.Equal(t, ActionRename, events[1].Action)
	assert.Equal(t, "b.txt", events[1].NewName)
	assert.True(t, events[1].Ok())
}

func TestListRecentWithoutLimit(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Record(Event{Action: ActionEdit, Name: "a.txt", Outcome: "ok"}))

	events, err := store.ListRecent(0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRecordKeepsGivenId(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Record(Event{Id: "fixed-id", Action: ActionEdit, Name: "a.txt", Outcome: "ok"}))

	events, err := store.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "fixed-id", events[0].Id)

	// Ids are primary keys.
	assert.Error(t, store.Record(Event{Id: "fixed-id", Action: ActionEdit, Name: "a.txt", Outcome: "ok"}))
}

func TestPrune(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	require.NoError(t, store.Record(Event{Action: ActionUpload, Name: "old.txt", Outcome: "ok", CreatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, store.Record(Event{Action: ActionUpload, Name: "new.txt", Outcome: "ok", CreatedAt: now}))

	n, err := store.Prune(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	events, err := store.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "new.txt", events[0].Name)
}
