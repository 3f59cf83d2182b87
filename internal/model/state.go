package model

// DefaultLoadLimit is the number of records kept from a list response.
const DefaultLoadLimit = 10

// State is the complete view-state owned by the record controller.
// Transitions never modify the receiver; each returns a new State whose
// Filtered view is Filter(Records, Search).
type State struct {
	Records  []Record    `json:"records"`
	Filtered []Record    `json:"filtered"`
	Search   string      `json:"search"`
	Session  EditSession `json:"session"`
}

// View is the read-only surface handed to the presentation layer.
type View struct {
	Records  []Record `json:"records"`
	Draft    string   `json:"draft"`
	Search   string   `json:"search"`
	Mode     Mode     `json:"mode"`
	TargetID *int     `json:"target_id,omitempty"`
	Total    int      `json:"total"`
}

// NewState returns an empty state in create mode.
func NewState() State {
	return State{
		Records:  []Record{},
		Filtered: []Record{},
		Session:  NewCreateSession(),
	}
}

// Filter returns the records whose title contains search, ignoring case,
// in their original order. An empty search matches every record.
func Filter(records []Record, search string) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if search == "" || r.MatchesSearch(search) {
			out = append(out, r)
		}
	}
	return out
}

// withRecords installs a new full set and recomputes the filtered view.
func (s State) withRecords(records []Record) State {
	s.Records = records
	s.Filtered = Filter(records, s.Search)
	return s
}

// Normalize recomputes the filtered view and fills in a missing session mode.
// Used after decoding a state from storage.
func (s State) Normalize() State {
	if s.Records == nil {
		s.Records = []Record{}
	}
	if s.Session.Mode == "" {
		s.Session.Mode = ModeCreate
	}
	return s.withRecords(s.Records)
}

// WithLoaded replaces the full set with the first limit records.
// A limit of zero or less keeps every record.
func (s State) WithLoaded(records []Record, limit int) State {
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	next := make([]Record, len(records))
	for i, r := range records {
		next[i] = r.Clone()
	}
	return s.withRecords(next)
}

// WithSearch stores text verbatim and recomputes the filtered view.
func (s State) WithSearch(text string) State {
	s.Search = text
	return s.withRecords(s.Records)
}

// WithEdit switches the session to edit mode for r.
func (s State) WithEdit(r Record) State {
	s.Session = NewEditSession(r)
	return s
}

// WithDraft replaces the draft title, leaving mode and target alone.
func (s State) WithDraft(draft string) State {
	s.Session.Draft = draft
	return s
}

// WithCreated prepends r and resets the session to create mode.
func (s State) WithCreated(r Record) State {
	next := make([]Record, 0, len(s.Records)+1)
	next = append(next, r.Clone())
	next = append(next, s.Records...)
	s = s.withRecords(next)
	s.Session = NewCreateSession()
	return s
}

// WithUpdated retitles every record with the given id and resets the session.
func (s State) WithUpdated(id int, title string) State {
	next := make([]Record, len(s.Records))
	for i, r := range s.Records {
		if r.ID == id {
			r = r.Clone()
			r.Title = title
		}
		next[i] = r
	}
	s = s.withRecords(next)
	s.Session = NewCreateSession()
	return s
}

// WithDeleted drops every record with the given id.
func (s State) WithDeleted(id int) State {
	next := make([]Record, 0, len(s.Records))
	for _, r := range s.Records {
		if r.ID != id {
			next = append(next, r)
		}
	}
	return s.withRecords(next)
}

// Find returns the first record in the full set with the given id.
func (s State) Find(id int) (Record, bool) {
	for _, r := range s.Records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// View returns a copy of the presentation-facing fields.
func (s State) View() View {
	v := View{
		Records: make([]Record, len(s.Filtered)),
		Draft:   s.Session.Draft,
		Search:  s.Search,
		Mode:    s.Session.Mode,
		Total:   len(s.Records),
	}
	copy(v.Records, s.Filtered)
	if s.Session.TargetID != nil {
		id := *s.Session.TargetID
		v.TargetID = &id
	}
	return v
}
