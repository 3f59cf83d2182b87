// Package remotetest provides an in-memory record service for tests.
package remotetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// CreatedID is the id the fake service echoes for every create, like the
// public demo service does.
const CreatedID = 101

// Call records one request received by the fake service.
type Call struct {
	Method string
	Path   string
	Title  string
}

// Server is a fake record service backed by httptest.
// Creates, updates and deletes are acknowledged but never persisted.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	posts    []map[string]interface{}
	calls    []Call
	failures map[string]int
	gates    map[string]chan struct{}
}

// New starts a fake service preloaded with n posts and registers cleanup on t.
func New(t testing.TB, n int) *Server {
	t.Helper()

	s := &Server{
		failures: make(map[string]int),
		gates:    make(map[string]chan struct{}),
	}
	for i := 1; i <= n; i++ {
		s.posts = append(s.posts, map[string]interface{}{
			"userId": 1 + (i-1)/10,
			"id":     i,
			"title":  fmt.Sprintf("post title %d", i),
			"body":   fmt.Sprintf("post body %d", i),
		})
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the collection URL.
func (s *Server) BaseURL() string {
	return s.URL + "/posts"
}

// SetPosts replaces the list returned by GET.
func (s *Server) SetPosts(posts ...map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = posts
}

// FailWith makes every request with the given method answer status.
// A status of zero clears the failure.
func (s *Server) FailWith(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, method)
		return
	}
	s.failures[method] = status
}

// Hold blocks requests with the given method until the returned release
// function is called.
func (s *Server) Hold(method string) (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gates[method] = gate
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.gates, method)
			s.mu.Unlock()
			close(gate)
		})
	}
}

// Calls returns the requests seen so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns the number of requests with the given method.
func (s *Server) CallCount(method string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title string `json:"title"`
	}
	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	s.mu.Lock()
	s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.Path, Title: payload.Title})
	status := s.failures[r.Method]
	gate := s.gates[r.Method]
	posts := s.posts
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}

	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/posts")
	rest = strings.Trim(rest, "/")

	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	switch {
	case r.Method == http.MethodGet && rest == "":
		_ = json.NewEncoder(w).Encode(posts)
	case r.Method == http.MethodPost && rest == "":
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": CreatedID, "title": payload.Title})
	case r.Method == http.MethodPut && rest != "":
		id, err := strconv.Atoi(rest)
		if err != nil {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": id, "title": payload.Title})
	case r.Method == http.MethodDelete && rest != "":
		_, _ = w.Write([]byte("{}"))
	default:
		http.NotFound(w, r)
	}
}
