package cli

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/recdesk/internal/remote/remotetest"
	"github.com/user/recdesk/internal/storage"
)

func TestExitCodeFor(t *testing.T) {
	var stderr bytes.Buffer

	code := exitCodeFor(&ExitError{Code: exitValidation, Message: "bad"}, &stderr)
	assert.Equal(t, exitValidation, code)
	assert.Empty(t, stderr.String(), "reported errors are not printed twice")

	code = exitCodeFor(errors.New("disk full"), &stderr)
	assert.Equal(t, exitFailure, code)
	assert.Equal(t, "Error: disk full\n", stderr.String())
}

func TestFailureReturnsBeforeExit(t *testing.T) {
	tempDir, cleanup := setupTestEnv(t)
	defer cleanup()
	srv := remotetest.New(t, 3)

	desk(t, tempDir, srv, "load")
	srv.FailWith(http.MethodDelete, http.StatusInternalServerError)

	exited := false
	ExitFunc = func(code int) { exited = true }

	res := desk(t, tempDir, srv, "rm", "1")
	assert.Equal(t, exitFailure, res.Code)
	assert.False(t, exited, "commands return an *ExitError; only Execute exits")

	// Deferred cleanup ran: the failed call is journaled.
	store, err := storage.NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()
	entries, err := store.ReadJournal(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "delete", entries[0].Op)
	assert.False(t, entries[0].OK)
}

func TestFileLogger(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()
	dir := filepath.Join(t.TempDir(), "data")

	log, closeLog, err := newFileLogger(dir)
	require.NoError(t, err)
	log.Error("record service call failed")
	log.Debug("not at default level")
	closeLog()

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
	assert.Contains(t, string(data), "record service call failed")
}
