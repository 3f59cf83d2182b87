package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/recdesk/internal/controller"
	"github.com/user/recdesk/internal/remote"
	"github.com/user/recdesk/internal/storage"
	"github.com/user/recdesk/internal/workspace"
)

// session ties one command invocation to the data directory: the saved
// view-state is restored into a controller and every service call is
// journaled.
type session struct {
	ws     *workspace.Context
	store  *storage.Store
	client *remote.Client
	ctrl   *controller.Controller
	log    *zap.Logger
}

// openSession resolves the workspace, opens the store and builds a
// controller with the saved state, logging to the command's stderr.
func openSession(cmd *cobra.Command) (*session, error) {
	return openSessionWithLogger(newLogger(cmd.ErrOrStderr()))
}

func openSessionWithLogger(log *zap.Logger) (*session, error) {
	ws, err := workspace.Resolve(workspaceFlags())
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(ws.DataDir)
	if err != nil {
		return nil, err
	}

	state, err := store.LoadState()
	if err != nil {
		store.Close()
		return nil, err
	}

	s := &session{
		ws:     ws,
		store:  store,
		client: remote.NewClient(ws.BaseURL, remote.WithTimeout(ws.Timeout)),
		log:    log,
	}
	s.ctrl = controller.New(s.client,
		controller.WithLogger(s.log),
		controller.WithLimit(ws.Limit),
		controller.WithState(state),
		controller.WithObserver(s.journal),
	)
	return s, nil
}

// journal appends a completed service call to the journal.
func (s *session) journal(e controller.Event) {
	entry := storage.JournalEntry{
		At:       time.Now().UTC(),
		Actor:    s.ws.Actor,
		Op:       string(e.Op),
		RecordID: e.RecordID,
		Title:    e.Title,
		Count:    e.Count,
		OK:       e.Err == nil,
	}
	if e.Err != nil {
		entry.Error = e.Err.Error()
	}
	if err := s.store.AppendJournal(entry); err != nil {
		s.log.Warn("failed to append journal entry", zap.String("op", string(e.Op)), zap.Error(err))
	}
}

// persist saves the controller's current state.
func (s *session) persist() error {
	if err := s.store.SaveState(s.ctrl.State()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// close flushes the logger and releases the store.
func (s *session) close() {
	_ = s.log.Sync()
	s.store.Close()
}
