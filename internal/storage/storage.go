// Package storage provides local persistence for recdesk: the controller's
// view-state between CLI invocations, the operation journal and the config file.
package storage

import (
	"time"

	"github.com/user/recdesk/internal/model"
)

// File names inside the data directory.
const (
	SessionFile = "session.db"
	JournalFile = "journal.jsonl"
	ConfigFile  = "config.yaml"
)

// JournalEntry records one attempted record service operation.
type JournalEntry struct {
	At       time.Time `json:"at"`
	Actor    string    `json:"actor"`
	Op       string    `json:"op"`
	RecordID int       `json:"record_id,omitempty"`
	Title    string    `json:"title,omitempty"`
	Count    int       `json:"count,omitempty"`
	OK       bool      `json:"ok"`
	Error    string    `json:"error,omitempty"`
}

// Storage defines local persistence.
type Storage interface {
	// View-state
	LoadState() (model.State, error)
	SaveState(state model.State) error

	// Journal
	AppendJournal(entry JournalEntry) error
	ReadJournal(limit int) ([]JournalEntry, error)

	// Configuration
	ReadConfig() (*Config, error)
	WriteConfig(cfg *Config) error

	// Close releases resources.
	Close() error
}
