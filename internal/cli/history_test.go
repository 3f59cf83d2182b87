package cli

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/recdesk/internal/remote/remotetest"
	"github.com/user/recdesk/internal/storage"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"24h", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"1w", 7 * 24 * time.Hour},
		{"30m", 30 * time.Minute},
	}
	for _, tt := range tests {
		got, err := parseDuration(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseDuration("xd")
	assert.Error(t, err)
}

func TestHistory(t *testing.T) {
	t.Run("newest first with filters", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()
		srv := remotetest.New(t, 3)

		desk(t, tempDir, srv, "load")
		desk(t, tempDir, srv, "save", "first")
		srv.FailWith(http.MethodDelete, http.StatusInternalServerError)
		desk(t, tempDir, srv, "rm", "1")

		var entries []storage.JournalEntry
		decodeJSON(t, desk(t, tempDir, srv, "history", "--json").Stdout, &entries)
		require.Len(t, entries, 3)
		assert.Equal(t, "delete", entries[0].Op)
		assert.False(t, entries[0].OK)
		assert.NotEmpty(t, entries[0].Error)
		assert.Equal(t, "create", entries[1].Op)
		assert.Equal(t, 4, entries[1].RecordID)
		assert.Equal(t, "first", entries[1].Title)
		assert.Equal(t, "load", entries[2].Op)

		decodeJSON(t, desk(t, tempDir, srv, "history", "--op", "create", "--json").Stdout, &entries)
		require.Len(t, entries, 1)
		assert.Equal(t, "create", entries[0].Op)

		decodeJSON(t, desk(t, tempDir, srv, "history", "--limit", "1", "--json").Stdout, &entries)
		require.Len(t, entries, 1)
		assert.Equal(t, "delete", entries[0].Op)

		decodeJSON(t, desk(t, tempDir, srv, "history", "--by", "someone-else", "--json").Stdout, &entries)
		assert.Empty(t, entries)
	})

	t.Run("table output", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()
		srv := remotetest.New(t, 3)

		desk(t, tempDir, srv, "load")
		res := desk(t, tempDir, srv, "history", "--since", "1h")
		lines := strings.Split(strings.TrimSpace(res.Stdout), "\n")
		require.Len(t, lines, 5)
		assert.True(t, strings.HasPrefix(lines[0], "Timestamp"))
		assert.Contains(t, lines[2], "load")
		assert.Contains(t, lines[2], "tester")
		assert.Contains(t, lines[2], "ok")
		assert.Equal(t, "1 entries", lines[4])
	})

	t.Run("empty journal", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()
		srv := remotetest.New(t, 0)

		res := desk(t, tempDir, srv, "history")
		assert.Equal(t, "No history found.\n", res.Stdout)
	})

	t.Run("invalid since", func(t *testing.T) {
		_, cleanup := setupTestEnv(t)
		defer cleanup()

		res := run(t, "history", "--since", "soon")
		assert.Equal(t, 2, res.Code)
		assert.Contains(t, res.Stderr, "invalid duration: soon")
	})
}
