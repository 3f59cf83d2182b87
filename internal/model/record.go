package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Reserved JSON keys for records exchanged with the record service.
const (
	KeyID    = "id"
	KeyTitle = "title"
)

// Record represents a single record in the working set.
type Record struct {
	ID    int
	Title string
	// Extra holds any other fields returned by the record service.
	Extra map[string]interface{}
}

// Clone returns a deep-enough copy of the record: Extra is copied one level deep.
func (r Record) Clone() Record {
	out := Record{ID: r.ID, Title: r.Title}
	if r.Extra != nil {
		out.Extra = make(map[string]interface{}, len(r.Extra))
		for k, v := range r.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// MatchesSearch reports whether the record's title contains search, ignoring case.
func (r Record) MatchesSearch(search string) bool {
	return strings.Contains(strings.ToLower(r.Title), strings.ToLower(search))
}

// MarshalJSON flattens Extra next to id and title.
func (r Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(r.Extra)+2)
	for k, v := range r.Extra {
		m[k] = v
	}
	m[KeyID] = r.ID
	m[KeyTitle] = r.Title
	return json.Marshal(m)
}

// UnmarshalJSON extracts id and title and keeps every other key in Extra.
// A missing or non-integral id decodes as 0.
func (r *Record) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	r.ID = 0
	r.Title = ""
	r.Extra = nil

	if v, ok := m[KeyID]; ok {
		id, err := intFromJSON(v)
		if err != nil {
			return err
		}
		r.ID = id
	}
	if v, ok := m[KeyTitle]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("record title: expected string, got %T", v)
		}
		r.Title = s
	}

	for k, v := range m {
		if k == KeyID || k == KeyTitle {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]interface{})
		}
		r.Extra[k] = v
	}

	return nil
}

// intFromJSON converts a decoded JSON id into an int.
func intFromJSON(v interface{}) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidID, n)
		}
		return int(n), nil
	case string:
		n = strings.TrimSpace(n)
		if n == "" {
			return 0, nil
		}
		// Same range as numeric ids; ParseID's positivity check is for user input.
		id, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidID, n)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("%w: unexpected type %T", ErrInvalidID, v)
	}
}
