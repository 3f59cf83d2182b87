package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/recdesk/internal/model"
	"github.com/user/recdesk/internal/remote"
	"github.com/user/recdesk/internal/remote/remotetest"
	"github.com/user/recdesk/internal/workspace"
)

func TestStatus(t *testing.T) {
	t.Run("fresh directory", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()

		res := run(t, "status", "--json")
		assert.Equal(t, 0, res.Code)

		var st statusInfo
		decodeJSON(t, res.Stdout, &st)
		assert.Equal(t, filepath.Join(tempDir, workspace.DataDirName), st.DataDir)
		assert.Equal(t, remote.DefaultBaseURL, st.BaseURL)
		assert.Equal(t, "tester", st.Actor)
		assert.Equal(t, model.DefaultLoadLimit, st.Limit)
		assert.Equal(t, model.ModeCreate, st.Mode)
		assert.Equal(t, 0, st.Total)
	})

	t.Run("text output", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()
		srv := remotetest.New(t, 4)

		desk(t, tempDir, srv, "load")
		desk(t, tempDir, srv, "search", "title 4")
		desk(t, tempDir, srv, "edit", "4")

		res := desk(t, tempDir, srv, "status", "--actor", "alice")
		assert.Contains(t, res.Stdout, "Service:  "+srv.BaseURL())
		assert.Contains(t, res.Stdout, "Actor:    alice")
		assert.Contains(t, res.Stdout, "Mode:     edit (record 4)")
		assert.Contains(t, res.Stdout, `Draft:    "post title 4"`)
		assert.Contains(t, res.Stdout, `Search:   "title 4"`)
		assert.Contains(t, res.Stdout, "Records:  1 shown of 4")
	})

	t.Run("base url from environment", func(t *testing.T) {
		_, cleanup := setupTestEnv(t)
		defer cleanup()
		t.Setenv(workspace.EnvBaseURL, "http://example.test/posts/")

		var st statusInfo
		decodeJSON(t, run(t, "status", "--json").Stdout, &st)
		assert.Equal(t, "http://example.test/posts", st.BaseURL)
	})
}
