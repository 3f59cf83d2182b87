package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/recdesk/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "recdesk-store-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	store, err := NewStore(tmpDir)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_EmptyState(t *testing.T) {
	store := newTestStore(t)

	state, err := store.LoadState()
	require.NoError(t, err)

	assert.Empty(t, state.Records)
	assert.Empty(t, state.Filtered)
	assert.Equal(t, model.NewCreateSession(), state.Session)
	assert.FileExists(t, filepath.Join(store.BaseDir(), SessionFile))
}

func TestStore_StateRoundTrip(t *testing.T) {
	store := newTestStore(t)

	saved := model.NewState().
		WithLoaded([]model.Record{
			{ID: 1, Title: "Alpha", Extra: map[string]interface{}{"userId": float64(1), "body": "a"}},
			{ID: 2, Title: "Beta"},
			{ID: 3, Title: "Gamma"},
		}, 0).
		WithSearch("A").
		WithEdit(model.Record{ID: 2, Title: "Beta"}).
		WithDraft("Bravo")

	require.NoError(t, store.SaveState(saved))

	loaded, err := store.LoadState()
	require.NoError(t, err)

	if diff := cmp.Diff(saved, loaded); diff != "" {
		t.Errorf("state mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestStore_SaveReplacesPreviousState(t *testing.T) {
	store := newTestStore(t)

	first := model.NewState().WithLoaded([]model.Record{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}, 0).
		WithEdit(model.Record{ID: 1, Title: "a"})
	require.NoError(t, store.SaveState(first))

	second := model.NewState().WithLoaded([]model.Record{{ID: 9, Title: "z"}}, 0)
	require.NoError(t, store.SaveState(second))

	loaded, err := store.LoadState()
	require.NoError(t, err)
	assert.Equal(t, []model.Record{{ID: 9, Title: "z"}}, loaded.Records)
	assert.Equal(t, model.ModeCreate, loaded.Session.Mode)
	assert.Nil(t, loaded.Session.TargetID)
}

func TestStore_DuplicateIDsAreKept(t *testing.T) {
	store := newTestStore(t)

	state := model.NewState().WithLoaded([]model.Record{{ID: 3, Title: "one"}, {ID: 3, Title: "two"}}, 0)
	require.NoError(t, store.SaveState(state))

	loaded, err := store.LoadState()
	require.NoError(t, err)
	require.Len(t, loaded.Records, 2)
	assert.Equal(t, "one", loaded.Records[0].Title)
	assert.Equal(t, "two", loaded.Records[1].Title)
}

func TestStore_StatePersistsAcrossReopen(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.SaveState(model.NewState().WithLoaded([]model.Record{{ID: 5, Title: "five"}}, 0)))
	require.NoError(t, store.Close())

	reopened, err := NewStore(tmpDir)
	require.NoError(t, err)
	defer reopened.Close()

	state, err := reopened.LoadState()
	require.NoError(t, err)
	assert.Equal(t, []model.Record{{ID: 5, Title: "five"}}, state.Records)
}

func TestStore_JournalAndConfig(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AppendJournal(JournalEntry{At: time.Now(), Op: "load", OK: true, Count: 10}))
	require.NoError(t, store.AppendJournal(JournalEntry{At: time.Now(), Op: "create", OK: true, RecordID: 11}))

	entries, err := store.ReadJournal(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "create", entries[0].Op)

	require.NoError(t, store.WriteConfig(&Config{Limit: 4}))
	cfg, err := store.ReadConfig()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Limit)
}
