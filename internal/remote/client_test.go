package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/recdesk/internal/model"
	"github.com/user/recdesk/internal/remote/remotetest"
)

func TestNewClient(t *testing.T) {
	t.Run("empty base URL falls back to default", func(t *testing.T) {
		assert.Equal(t, DefaultBaseURL, NewClient("  ").BaseURL())
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		assert.Equal(t, "http://x/posts", NewClient("http://x/posts/").BaseURL())
	})

	t.Run("timeout option copies the http client", func(t *testing.T) {
		hc := &http.Client{}
		c := NewClient("http://x", WithHTTPClient(hc), WithTimeout(time.Second))
		assert.Equal(t, time.Second, c.httpClient.Timeout)
		assert.Zero(t, hc.Timeout)
	})
}

func TestClient_List(t *testing.T) {
	srv := remotetest.New(t, 25)
	c := NewClient(srv.BaseURL())

	records, err := c.List(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 25)
	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, "post title 1", records[0].Title)
	assert.Equal(t, "post body 1", records[0].Extra["body"])
}

func TestClient_Create(t *testing.T) {
	srv := remotetest.New(t, 0)
	c := NewClient(srv.BaseURL())

	r, err := c.Create(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, remotetest.CreatedID, r.ID)
	assert.Equal(t, "hello", r.Title)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/posts", calls[0].Path)
	assert.Equal(t, "hello", calls[0].Title)
}

func TestClient_UpdateAndDelete(t *testing.T) {
	srv := remotetest.New(t, 3)
	c := NewClient(srv.BaseURL())

	require.NoError(t, c.Update(context.Background(), 2, "renamed"))
	require.NoError(t, c.Delete(context.Background(), 3))

	calls := srv.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, remotetest.Call{Method: http.MethodPut, Path: "/posts/2", Title: "renamed"}, calls[0])
	assert.Equal(t, remotetest.Call{Method: http.MethodDelete, Path: "/posts/3"}, calls[1])
}

func TestClient_Failures(t *testing.T) {
	t.Run("non-2xx is a remote error", func(t *testing.T) {
		srv := remotetest.New(t, 3)
		srv.FailWith(http.MethodPut, http.StatusInternalServerError)
		c := NewClient(srv.BaseURL())

		err := c.Update(context.Background(), 1, "x")
		assert.ErrorIs(t, err, model.ErrRemote)

		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	})

	t.Run("404 is treated like any failure", func(t *testing.T) {
		srv := remotetest.New(t, 3)
		srv.FailWith(http.MethodDelete, http.StatusNotFound)
		c := NewClient(srv.BaseURL())

		assert.ErrorIs(t, c.Delete(context.Background(), 1), model.ErrRemote)
	})

	t.Run("malformed list body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not": "an array"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).List(context.Background())
		assert.ErrorIs(t, err, model.ErrRemote)
	})

	t.Run("transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewClient(url).List(context.Background())
		assert.ErrorIs(t, err, model.ErrRemote)
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv := remotetest.New(t, 1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewClient(srv.BaseURL()).Create(ctx, "x")
		assert.ErrorIs(t, err, model.ErrRemote)
	})
}

func TestClient_CreateEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	r, err := NewClient(srv.URL).Create(context.Background(), "kept")
	require.NoError(t, err)
	assert.Equal(t, "kept", r.Title)
	assert.Equal(t, 0, r.ID)
}
