/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the engine's types
  from the external contract. Dates cross the wire as "2006-01-02"
  strings; parsing and validation happen in handlers, DTOs are pure
  data carriers.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

// HolidayDTO is one dated table entry.
type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// TableResponse wraps a computed holiday table.
type TableResponse struct {
	MinDate  string       `json:"min_date"`
	MaxDate  string       `json:"max_date"`
	Count    int          `json:"count"`
	Holidays []HolidayDTO `json:"holidays"`
}

// DateCheckResponse answers a single-date lookup.
type DateCheckResponse struct {
	Date    string `json:"date"`
	Holiday bool   `json:"holiday"`
	Name    string `json:"name,omitempty"`
}

// RuleDTO is one rule version of the catalog's audit dump.
type RuleDTO struct {
	Identity       string `json:"identity"`
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	Month          int    `json:"month,omitempty"`
	Day            int    `json:"day,omitempty"`
	Weekday        string `json:"weekday,omitempty"`
	Ordinal        int    `json:"ordinal,omitempty"`
	Season         string `json:"season,omitempty"`
	EffectiveFrom  string `json:"effective_from"`
	EffectiveUntil string `json:"effective_until,omitempty"`
}

// CreateSnapshotRequest asks for a span to be computed and persisted.
// An empty ID is filled with a generated one.
type CreateSnapshotRequest struct {
	ID      string `json:"id,omitempty"`
	MinDate string `json:"min_date"`
	MaxDate string `json:"max_date"`
}

// SnapshotDTO describes one persisted snapshot.
type SnapshotDTO struct {
	ID           string `json:"id"`
	MinDate      string `json:"min_date"`
	MaxDate      string `json:"max_date"`
	HolidayCount int    `json:"holiday_count"`
	CreatedAt    string `json:"created_at"`
}

// SnapshotDetailResponse is a snapshot with its holiday entries.
type SnapshotDetailResponse struct {
	Snapshot SnapshotDTO  `json:"snapshot"`
	Holidays []HolidayDTO `json:"holidays"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
