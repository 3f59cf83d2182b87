package model

import (
	"strconv"
	"strings"
)

// ParseID parses a record ID given on the command line or in a URL.
// IDs are positive integers.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// MockID returns the id given to a newly created record when the record service
// does not persist creates: one more than the number of records currently held.
// Two creates issued against the same count receive the same id.
func MockID(currentCount int) int {
	return currentCount + 1
}
