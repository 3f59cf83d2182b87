package cli

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/recdesk/internal/model"
	"github.com/user/recdesk/internal/remote/remotetest"
	"github.com/user/recdesk/internal/storage"
)

func TestLoad(t *testing.T) {
	t.Run("keeps the first ten records and saves the session", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()
		srv := remotetest.New(t, 100)
		dir := filepath.Join(tempDir, "data")

		res := desk(t, dir, srv, "load")
		assert.Equal(t, 0, res.Code)
		assert.Equal(t, "Records loaded. (10)\n", res.Stdout)

		store, err := storage.NewStore(dir)
		require.NoError(t, err)
		defer store.Close()
		state, err := store.LoadState()
		require.NoError(t, err)
		require.Len(t, state.Records, 10)
		assert.Equal(t, 1, state.Records[0].ID)
		assert.Equal(t, 10, state.Records[9].ID)
		assert.Equal(t, "post body 1", state.Records[0].Extra["body"])
	})

	t.Run("json output is the view", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()
		srv := remotetest.New(t, 4)

		res := desk(t, tempDir, srv, "load", "--json")
		var view model.View
		decodeJSON(t, res.Stdout, &view)
		assert.Equal(t, 4, view.Total)
		assert.Len(t, view.Records, 4)
		assert.Equal(t, model.ModeCreate, view.Mode)
	})

	t.Run("service failure keeps the working set", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()
		srv := remotetest.New(t, 5)

		desk(t, tempDir, srv, "load")
		srv.FailWith(http.MethodGet, http.StatusServiceUnavailable)

		res := desk(t, tempDir, srv, "load")
		assert.Equal(t, 1, res.Code)
		assert.Contains(t, res.Stderr, "Error: Error fetching records.")
		assert.Contains(t, res.Stderr, "record service call failed")

		res = desk(t, tempDir, srv, "list", "--json")
		var records []model.Record
		decodeJSON(t, res.Stdout, &records)
		assert.Len(t, records, 5)
	})

	t.Run("json error on failure", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()
		srv := remotetest.New(t, 5)
		srv.FailWith(http.MethodGet, http.StatusInternalServerError)

		res := desk(t, tempDir, srv, "load", "--json", "--quiet")
		assert.Equal(t, 1, res.Code)
		assert.Contains(t, res.Stderr, "record service call failed", "quiet must not silence failures")
		assert.Contains(t, res.Stderr, `"op":"load"`)

		var errResp JSONError
		decodeJSON(t, res.Stdout, &errResp)
		assert.Equal(t, ErrCodeRemote, errResp.Code)
		assert.Equal(t, "Error fetching records.", errResp.Message)
		assert.Equal(t, "load", errResp.Details["op"])
	})

	t.Run("journals the call", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()
		srv := remotetest.New(t, 3)

		desk(t, tempDir, srv, "load")

		entries, err := storage.NewJournal(tempDir).ReadAll()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "load", entries[0].Op)
		assert.Equal(t, "tester", entries[0].Actor)
		assert.Equal(t, 3, entries[0].Count)
		assert.True(t, entries[0].OK)
	})
}
