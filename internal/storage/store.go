package storage

import (
	"fmt"
	"os"

	"github.com/user/recdesk/internal/model"
)

// Store implements the Storage interface using SQLite for view-state,
// JSONL for the journal and YAML for configuration.
type Store struct {
	baseDir string // data directory
	session *SessionDB
	journal *Journal
	config  *ConfigStore
}

var _ Storage = (*Store)(nil)

// NewStore creates a new storage instance rooted at baseDir.
func NewStore(baseDir string) (*Store, error) {
	// Ensure base directory exists
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	session, err := NewSessionDB(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session database: %w", err)
	}

	return &Store{
		baseDir: baseDir,
		session: session,
		journal: NewJournal(baseDir),
		config:  NewConfigStore(baseDir),
	}, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return s.session.Close()
}

// BaseDir returns the data directory path.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// LoadState reads the saved view-state.
func (s *Store) LoadState() (model.State, error) {
	return s.session.LoadState()
}

// SaveState replaces the saved view-state.
func (s *Store) SaveState(state model.State) error {
	return s.session.SaveState(state)
}

// AppendJournal appends an entry to the operation journal.
func (s *Store) AppendJournal(entry JournalEntry) error {
	return s.journal.Append(entry)
}

// ReadJournal returns the last limit journal entries (all when limit <= 0).
func (s *Store) ReadJournal(limit int) ([]JournalEntry, error) {
	return s.journal.Tail(limit)
}

// ReadConfig reads config.yaml.
func (s *Store) ReadConfig() (*Config, error) {
	return s.config.Read()
}

// WriteConfig writes config.yaml.
func (s *Store) WriteConfig(cfg *Config) error {
	return s.config.Write(cfg)
}
