package model

// Track identifies one of the two scheduling tracks
type Track string

const (
	TrackOnDuty Track = "onduty"
	TrackOnCall Track = "oncall"
)

func (t Track) IsValid() bool {
	return t == TrackOnDuty || t == TrackOnCall
}

// Member represents a portal team member
type Member struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Role     string `json:"role,omitempty"`
	Avatar   string `json:"avatar,omitempty"` // Empty string if no avatar
	Team     string `json:"team,omitempty"`
}

// Shift is the common shape shared by both shift kinds.
// Start is inclusive, End is exclusive (the start of the next shift).
type Shift struct {
	ID         string `json:"id"`
	Start      string `json:"start"` // Date format (2006-01-02)
	End        string `json:"end"`
	AssigneeID string `json:"assigneeId"`
}

// OnDutyShift is a shift on the on-duty track
type OnDutyShift struct {
	Shift
	Notes string `json:"notes,omitempty"`
}

func (s OnDutyShift) Key() string               { return s.ID }
func (s OnDutyShift) Span() (start, end string) { return s.Start, s.End }
func (s OnDutyShift) Reissue(id, start, end string) OnDutyShift {
	s.ID, s.Start, s.End = id, start, end
	return s
}

// OnCallShift is a shift on the on-call track
type OnCallShift struct {
	Shift
	Escalation string `json:"escalation,omitempty"` // Empty string if no escalation contact
}

func (s OnCallShift) Key() string               { return s.ID }
func (s OnCallShift) Span() (start, end string) { return s.Start, s.End }
func (s OnCallShift) Reissue(id, start, end string) OnCallShift {
	s.ID, s.Start, s.End = id, start, end
	return s
}

// QuickLink is a user-pinned shortcut URL
type QuickLink struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Owner string `json:"owner,omitempty"`
}

// Plugin represents an installed portal plugin
type Plugin struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Enabled bool   `json:"enabled"`
}

// Setting is a single portal configuration entry
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Filters holds the cross-component filter state shared by portal views
type Filters struct {
	Search     string `json:"search"`
	AssigneeID string `json:"assigneeId"`
	Status     string `json:"status"`
	SortOrder  string `json:"sortOrder"`
}
