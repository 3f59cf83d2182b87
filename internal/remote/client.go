// Package remote talks to the REST record service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/user/recdesk/internal/model"
)

// DefaultBaseURL is the record service used when nothing else is configured.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com/posts"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

// Unwrap lets errors.Is match model.ErrRemote.
func (e *StatusError) Unwrap() error {
	return model.ErrRemote
}

// Client is an HTTP client for the record service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero leaves the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type titlePayload struct {
	Title string `json:"title"`
}

// List fetches every record the service returns.
func (c *Client) List(ctx context.Context) ([]model.Record, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}

	var records []model.Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: decode list: %v", model.ErrRemote, err)
	}
	return records, nil
}

// Create posts a new record and returns the service's echo of it.
// The service may not assign a usable id.
func (c *Client) Create(ctx context.Context, title string) (model.Record, error) {
	body, err := c.do(ctx, http.MethodPost, c.baseURL, titlePayload{Title: title})
	if err != nil {
		return model.Record{}, err
	}

	var r model.Record
	if len(bytes.TrimSpace(body)) == 0 {
		return model.Record{Title: title}, nil
	}
	if err := json.Unmarshal(body, &r); err != nil {
		return model.Record{}, fmt.Errorf("%w: decode created record: %v", model.ErrRemote, err)
	}
	return r, nil
}

// Update replaces the title of record id. The response body is ignored.
func (c *Client) Update(ctx context.Context, id int, title string) error {
	_, err := c.do(ctx, http.MethodPut, c.recordURL(id), titlePayload{Title: title})
	return err
}

// Delete removes record id. The response body is ignored.
func (c *Client) Delete(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, c.recordURL(id), nil)
	return err
}

func (c *Client) recordURL(id int) string {
	return c.baseURL + "/" + strconv.Itoa(id)
}

// do sends one request and returns the body of a 2xx response.
// Transport failures and non-2xx statuses both wrap model.ErrRemote.
func (c *Client) do(ctx context.Context, method, url string, payload interface{}) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", model.ErrRemote, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", model.ErrRemote, method, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", model.ErrRemote, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: method, URL: url, StatusCode: resp.StatusCode}
	}

	return body, nil
}
