package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Journal provides append-only JSONL storage for operation entries.
type Journal struct {
	baseDir string // data directory
}

// NewJournal creates a journal in baseDir.
func NewJournal(baseDir string) *Journal {
	return &Journal{baseDir: baseDir}
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return filepath.Join(j.baseDir, JournalFile)
}

// Append appends an entry to the JSONL file atomically.
// The file is created if it doesn't exist.
func (j *Journal) Append(entry JournalEntry) error {
	if err := os.MkdirAll(j.baseDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	journalPath := j.Path()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}
	data = append(data, '\n')

	// Write to temp file first for atomicity
	tmpFile, err := os.CreateTemp(j.baseDir, "journal-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath) // Clean up on error

	// Copy existing content if file exists
	if existing, err := os.Open(journalPath); err == nil {
		_, copyErr := tmpFile.ReadFrom(existing)
		existing.Close()
		if copyErr != nil {
			tmpFile.Close()
			return fmt.Errorf("failed to copy existing journal: %w", copyErr)
		}
	}

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write journal entry: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, journalPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// ReadAll reads every entry in file order.
// Returns an empty slice if the file doesn't exist.
func (j *Journal) ReadAll() ([]JournalEntry, error) {
	file, err := os.Open(j.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return []JournalEntry{}, nil
		}
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer file.Close()

	entries := []JournalEntry{}
	reader := bufio.NewReader(file)
	lineNum := 0

	// ReadBytes has no line length limit; titles are unbounded.
	for {
		line, readErr := reader.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("error reading journal: %w", readErr)
		}
		if len(line) > 0 {
			lineNum++
			line = bytes.TrimSpace(line)
			if len(line) > 0 {
				var entry JournalEntry
				if err := json.Unmarshal(line, &entry); err != nil {
					return nil, fmt.Errorf("failed to parse journal entry at line %d: %w", lineNum, err)
				}
				entries = append(entries, entry)
			}
		}
		if readErr == io.EOF {
			break
		}
	}

	return entries, nil
}

// Tail returns the last n entries, or all of them when n <= 0.
func (j *Journal) Tail(n int) ([]JournalEntry, error) {
	entries, err := j.ReadAll()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}
