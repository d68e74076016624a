package domain

import (
	"strings"
	"time"
)

// DateLayout is the storage format for JobRecord.Date.
const DateLayout = "2006-01-02"

// JobRecord is a tracked application as persisted under the "jobs" key.
type JobRecord struct {
	ID      string  `json:"id"`
	JobID   *string `json:"jobId"` // "<site>-<nativeId>", dedupe only
	Company string  `json:"company"`
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Date    string  `json:"date"`
	Status  string  `json:"status"`
}

// Candidate is a scraped, not yet saved, job posting.
type Candidate struct {
	Title   string  `json:"title"`
	Company string  `json:"company"`
	URL     string  `json:"url"`
	Date    string  `json:"date"`
	JobID   *string `json:"jobId"`
}

// NewJob is the user-confirmed form that becomes a JobRecord on save.
type NewJob struct {
	JobID   *string `json:"jobId"`
	Company string  `json:"company"`
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Date    string  `json:"date"`
	Status  string  `json:"status"`
}

// JobPatch holds the editable fields of a stored record. Company and title
// are fixed after creation.
type JobPatch struct {
	Status *string `json:"status,omitempty"`
	URL    *string `json:"url,omitempty"`
	Date   *string `json:"date,omitempty"`
}

func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// JobIDValue returns the id or "" for a nil pointer.
func JobIDValue(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

// StringPtr returns nil for blank strings.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// MatchesSearch reports whether company or title contains term, ignoring case.
func (j JobRecord) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(j.Company), term) ||
		strings.Contains(strings.ToLower(j.Title), term)
}
