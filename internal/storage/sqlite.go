package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
	"github.com/user/recdesk/internal/model"
)

// Keys in the session_meta table.
const (
	metaSearch   = "search"
	metaMode     = "mode"
	metaTargetID = "target_id"
	metaDraft    = "draft"
)

// SessionDB keeps the controller's view-state in SQLite.
type SessionDB struct {
	db     *sql.DB
	dbPath string
}

// NewSessionDB opens (creating if needed) the session database in baseDir.
func NewSessionDB(baseDir string) (*SessionDB, error) {
	dbPath := filepath.Join(baseDir, SessionFile)

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SessionDB{db: db, dbPath: dbPath}
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// initTables creates the schema if it doesn't exist.
func (s *SessionDB) initTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS records (
			position INTEGER PRIMARY KEY,
			id INTEGER NOT NULL,
			title TEXT NOT NULL,
			extra_json TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_id ON records(id)`,
		`CREATE TABLE IF NOT EXISTS session_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create session tables: %w", err)
		}
	}
	return nil
}

// Path returns the database file path.
func (s *SessionDB) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SessionDB) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadState reads the saved view-state. An empty database yields model.NewState().
func (s *SessionDB) LoadState() (model.State, error) {
	state := model.NewState()

	rows, err := s.db.Query(`SELECT id, title, extra_json FROM records ORDER BY position`)
	if err != nil {
		return state, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r     model.Record
			extra sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Title, &extra); err != nil {
			return state, fmt.Errorf("failed to scan record: %w", err)
		}
		if extra.Valid && extra.String != "" {
			if err := json.Unmarshal([]byte(extra.String), &r.Extra); err != nil {
				return state, fmt.Errorf("failed to parse extra fields of record %d: %w", r.ID, err)
			}
		}
		state.Records = append(state.Records, r)
	}
	if err := rows.Err(); err != nil {
		return state, fmt.Errorf("error reading records: %w", err)
	}

	meta, err := s.readMeta()
	if err != nil {
		return state, err
	}

	state.Search = meta[metaSearch]
	mode, err := model.ParseMode(meta[metaMode])
	if err != nil {
		return state, err
	}
	state.Session.Mode = mode
	state.Session.Draft = meta[metaDraft]
	if v, ok := meta[metaTargetID]; ok && v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return state, fmt.Errorf("invalid stored target id %q: %w", v, err)
		}
		state.Session.TargetID = &id
	}

	return state.Normalize(), nil
}

func (s *SessionDB) readMeta() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM session_meta`)
	if err != nil {
		return nil, fmt.Errorf("failed to query session meta: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan session meta: %w", err)
		}
		meta[k] = v
	}
	return meta, rows.Err()
}

// SaveState replaces the saved view-state in a single transaction.
// The filtered view is not stored; it is recomputed on load.
func (s *SessionDB) SaveState(state model.State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	insert, err := tx.Prepare(`INSERT INTO records (position, id, title, extra_json) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer insert.Close()

	for i, r := range state.Records {
		var extra sql.NullString
		if len(r.Extra) > 0 {
			data, err := json.Marshal(r.Extra)
			if err != nil {
				return fmt.Errorf("failed to marshal extra fields of record %d: %w", r.ID, err)
			}
			extra = sql.NullString{String: string(data), Valid: true}
		}
		if _, err := insert.Exec(i, r.ID, r.Title, extra); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", r.ID, err)
		}
	}

	mode := state.Session.Mode
	if mode == "" {
		mode = model.ModeCreate
	}
	target := ""
	if state.Session.TargetID != nil {
		target = strconv.Itoa(*state.Session.TargetID)
	}
	meta := map[string]string{
		metaSearch:   state.Search,
		metaMode:     string(mode),
		metaTargetID: target,
		metaDraft:    state.Session.Draft,
	}
	for k, v := range meta {
		if _, err := tx.Exec(`INSERT INTO session_meta (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, k, v); err != nil {
			return fmt.Errorf("failed to write session meta %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	return nil
}
