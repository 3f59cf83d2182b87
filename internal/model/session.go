package model

import "fmt"

// Mode is the edit session mode.
type Mode string

// Edit session modes
const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// ParseMode converts a stored mode string into a Mode.
// The empty string maps to ModeCreate.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeCreate:
		return ModeCreate, nil
	case ModeEdit:
		return ModeEdit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// EditSession tracks whether the user is creating a new record or editing one.
type EditSession struct {
	Mode     Mode   `json:"mode"`
	TargetID *int   `json:"target_id,omitempty"`
	Draft    string `json:"draft"`
}

// NewCreateSession returns the initial session: create mode, empty draft.
func NewCreateSession() EditSession {
	return EditSession{Mode: ModeCreate}
}

// NewEditSession returns a session editing the given record.
func NewEditSession(r Record) EditSession {
	id := r.ID
	return EditSession{Mode: ModeEdit, TargetID: &id, Draft: r.Title}
}

// IsEditing returns true if the session targets an existing record.
func (s EditSession) IsEditing() bool {
	return s.Mode == ModeEdit
}

// Target returns the targeted record id, or 0 when not editing.
func (s EditSession) Target() int {
	if s.TargetID == nil {
		return 0
	}
	return *s.TargetID
}
