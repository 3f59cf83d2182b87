// Package controller implements the record store controller: it owns the
// working set of records, the search text and the edit session, and applies
// the results of record service calls to them.
package controller

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/user/recdesk/internal/model"
)

// Service is the remote record service.
type Service interface {
	List(ctx context.Context) ([]model.Record, error)
	Create(ctx context.Context, title string) (model.Record, error)
	Update(ctx context.Context, id int, title string) error
	Delete(ctx context.Context, id int) error
}

// Controller owns the view-state. It is safe for concurrent use; the lock is
// never held across a service call, so calls issued concurrently complete in
// any order and each completion is applied to whatever state exists then.
type Controller struct {
	svc      Service
	log      *zap.Logger
	limit    int
	observer func(Event)

	mu    sync.Mutex
	state model.State
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the sink for failed service calls.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithLimit sets how many records Load keeps. Zero or less keeps all.
func WithLimit(n int) Option {
	return func(c *Controller) {
		c.limit = n
	}
}

// WithState restores a previously saved state.
func WithState(s model.State) Option {
	return func(c *Controller) {
		c.state = s.Normalize()
	}
}

// WithObserver registers a function called after every service call completes.
func WithObserver(fn func(Event)) Option {
	return func(c *Controller) {
		c.observer = fn
	}
}

// New creates a controller backed by svc.
func New(svc Service, opts ...Option) *Controller {
	c := &Controller{
		svc:   svc,
		log:   zap.NewNop(),
		limit: model.DefaultLoadLimit,
		state: model.NewState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the complete state, for persistence.
func (c *Controller) State() model.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View returns what the presentation layer displays.
func (c *Controller) View() model.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.View()
}

// Record returns the record with the given id from the full set.
func (c *Controller) Record(id int) (model.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Find(id)
}

// Load fetches records from the service and replaces the full set.
// On failure the state is left unchanged.
func (c *Controller) Load(ctx context.Context) error {
	records, err := c.svc.List(ctx)
	if err != nil {
		c.fail(OpLoad, 0, "", err)
		return fmt.Errorf("load records: %w", err)
	}

	c.mu.Lock()
	c.state = c.state.WithLoaded(records, c.limit)
	n := len(c.state.Records)
	c.mu.Unlock()

	c.log.Debug("records loaded", zap.Int("received", len(records)), zap.Int("kept", n))
	c.notify(Event{Op: OpLoad, Count: n})
	return nil
}

// BeginEdit switches the edit session to r.
func (c *Controller) BeginEdit(r model.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.WithEdit(r)
}

// SetDraft replaces the draft title without changing the session mode.
func (c *Controller) SetDraft(draft string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.WithDraft(draft)
}

// SetSearch stores text and recomputes the filtered view.
func (c *Controller) SetSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.WithSearch(text)
}

// Save creates or updates a record with draft as its title, depending on the
// session mode. A blank draft fails with a *model.ValidationError before any
// service call. On service failure the state, session included, is unchanged.
func (c *Controller) Save(ctx context.Context, draft string) (Outcome, error) {
	c.mu.Lock()
	c.state = c.state.WithDraft(draft)
	session := c.state.Session
	count := len(c.state.Records)
	c.mu.Unlock()

	if strings.TrimSpace(draft) == "" {
		return Outcome{}, &model.ValidationError{Field: "title", Reason: "cannot be empty"}
	}

	if session.IsEditing() {
		return c.update(ctx, session.Target(), draft)
	}
	return c.create(ctx, count, draft)
}

func (c *Controller) create(ctx context.Context, count int, title string) (Outcome, error) {
	// The mock id comes from the count seen when the call was issued.
	id := model.MockID(count)

	echoed, err := c.svc.Create(ctx, title)
	if err != nil {
		c.fail(OpCreate, 0, title, err)
		return Outcome{}, fmt.Errorf("create record: %w", err)
	}

	rec := echoed.Clone()
	rec.ID = id
	if rec.Title == "" {
		rec.Title = title
	}

	c.mu.Lock()
	c.state = c.state.WithCreated(rec)
	c.mu.Unlock()

	c.log.Debug("record created", zap.Int("id", id), zap.Int("service_id", echoed.ID))
	c.notify(Event{Op: OpCreate, RecordID: id, Title: rec.Title})
	return Outcome{Op: OpCreate, Record: rec}, nil
}

func (c *Controller) update(ctx context.Context, id int, title string) (Outcome, error) {
	if err := c.svc.Update(ctx, id, title); err != nil {
		c.fail(OpUpdate, id, title, err)
		return Outcome{}, fmt.Errorf("update record %d: %w", id, err)
	}

	c.mu.Lock()
	c.state = c.state.WithUpdated(id, title)
	rec, ok := c.state.Find(id)
	c.mu.Unlock()
	if !ok {
		rec = model.Record{ID: id, Title: title}
	}

	c.log.Debug("record updated", zap.Int("id", id))
	c.notify(Event{Op: OpUpdate, RecordID: id, Title: title})
	return Outcome{Op: OpUpdate, Record: rec}, nil
}

// Delete removes record id remotely, then locally.
func (c *Controller) Delete(ctx context.Context, id int) error {
	if err := c.svc.Delete(ctx, id); err != nil {
		c.fail(OpDelete, id, "", err)
		return fmt.Errorf("delete record %d: %w", id, err)
	}

	c.mu.Lock()
	c.state = c.state.WithDeleted(id)
	c.mu.Unlock()

	c.log.Debug("record deleted", zap.Int("id", id))
	c.notify(Event{Op: OpDelete, RecordID: id})
	return nil
}

func (c *Controller) fail(op Op, id int, title string, err error) {
	fields := []zap.Field{zap.String("op", string(op)), zap.Error(err)}
	if id != 0 {
		fields = append(fields, zap.Int("id", id))
	}
	c.log.Error("record service call failed", fields...)
	c.notify(Event{Op: op, RecordID: id, Title: title, Err: err})
}

func (c *Controller) notify(e Event) {
	if c.observer != nil {
		c.observer(e)
	}
}
