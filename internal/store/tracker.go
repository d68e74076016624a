package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobtrack-engine/internal/domain"
)

// Tracker is the record store gateway over a KV.
//
// Every mutation reads the whole collection, changes it in memory and writes
// it back. There is no arbitration between writers: two surfaces mutating
// within overlapping round-trips means the last write wins.
type Tracker struct {
	kv    KV
	board domain.BoardDefaults
	now   func() time.Time
	newID func() string
}

type TrackerOption func(*Tracker)

func WithBoardDefaults(b domain.BoardDefaults) TrackerOption {
	return func(t *Tracker) { t.board = b }
}

func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) { t.now = now }
}

func WithIDs(newID func() string) TrackerOption {
	return func(t *Tracker) { t.newID = newID }
}

func NewTracker(kv KV, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		kv:    kv,
		board: domain.DefaultBoard(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(t)
	}
	if len(t.board.Columns) == 0 {
		t.board.Columns = append([]string(nil), domain.DefaultColumns...)
	}
	return t
}

// Jobs returns stored records, most recent first. A missing or malformed
// "jobs" value reads as empty.
func (t *Tracker) Jobs(ctx context.Context) ([]domain.JobRecord, error) {
	vals, err := t.kv.Get(ctx, KeyJobs)
	if err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	var jobs []domain.JobRecord
	if raw, ok := vals[KeyJobs]; ok {
		if err := json.Unmarshal(raw, &jobs); err != nil {
			jobs = nil
		}
	}
	if jobs == nil {
		jobs = []domain.JobRecord{}
	}
	return jobs, nil
}

// Search filters Jobs by a case-insensitive company/title term.
func (t *Tracker) Search(ctx context.Context, term string) ([]domain.JobRecord, error) {
	jobs, err := t.Jobs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.JobRecord, 0, len(jobs))
	for _, j := range jobs {
		if j.MatchesSearch(term) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (t *Tracker) writeJobs(ctx context.Context, jobs []domain.JobRecord) error {
	raw, err := json.Marshal(jobs)
	if err != nil {
		return err
	}
	if err := t.kv.Set(ctx, map[string]json.RawMessage{KeyJobs: raw}); err != nil {
		return fmt.Errorf("write jobs: %w", err)
	}
	return nil
}

// SaveJob validates in, rejects duplicates and prepends the new record.
// On ErrDuplicate the already stored record is returned.
func (t *Tracker) SaveJob(ctx context.Context, in domain.NewJob) (domain.JobRecord, error) {
	rec := domain.JobRecord{
		JobID:   domain.StringPtr(domain.JobIDValue(in.JobID)),
		Company: strings.TrimSpace(in.Company),
		Title:   strings.TrimSpace(in.Title),
		URL:     strings.TrimSpace(in.URL),
		Date:    strings.TrimSpace(in.Date),
		Status:  strings.TrimSpace(in.Status),
	}
	if rec.Company == "" || rec.Title == "" {
		return domain.JobRecord{}, ErrMissingFields
	}
	if rec.Date == "" {
		rec.Date = domain.Today(t.now())
	} else if _, err := time.Parse(domain.DateLayout, rec.Date); err != nil {
		return domain.JobRecord{}, ErrInvalidDate
	}

	board, err := t.Board(ctx)
	if err != nil {
		return domain.JobRecord{}, err
	}
	if rec.Status == "" {
		rec.Status = board.Columns[0]
	} else if !board.HasColumn(rec.Status) {
		return domain.JobRecord{}, ErrUnknownStatus
	}

	jobs, err := t.Jobs(ctx)
	if err != nil {
		return domain.JobRecord{}, err
	}
	if existing, dup := FindDuplicate(rec, jobs); dup {
		return existing, ErrDuplicate
	}

	rec.ID = t.newID()
	next := make([]domain.JobRecord, 0, len(jobs)+1)
	next = append(next, rec)
	next = append(next, jobs...)
	if err := t.writeJobs(ctx, next); err != nil {
		return domain.JobRecord{}, err
	}
	return rec, nil
}

// UpdateJob applies patch to the record with id.
func (t *Tracker) UpdateJob(ctx context.Context, id string, patch domain.JobPatch) (domain.JobRecord, error) {
	jobs, err := t.Jobs(ctx)
	if err != nil {
		return domain.JobRecord{}, err
	}
	idx := indexOf(jobs, id)
	if idx == -1 {
		return domain.JobRecord{}, ErrNotFound
	}
	rec := jobs[idx]

	if patch.Status != nil {
		status := strings.TrimSpace(*patch.Status)
		board, err := t.Board(ctx)
		if err != nil {
			return domain.JobRecord{}, err
		}
		if !board.HasColumn(status) {
			return domain.JobRecord{}, ErrUnknownStatus
		}
		rec.Status = status
	}
	if patch.URL != nil {
		rec.URL = strings.TrimSpace(*patch.URL)
	}
	if patch.Date != nil {
		date := strings.TrimSpace(*patch.Date)
		if _, err := time.Parse(domain.DateLayout, date); err != nil {
			return domain.JobRecord{}, ErrInvalidDate
		}
		rec.Date = date
	}

	jobs[idx] = rec
	if err := t.writeJobs(ctx, jobs); err != nil {
		return domain.JobRecord{}, err
	}
	return rec, nil
}

// UpdateStatus moves a record to another board column.
func (t *Tracker) UpdateStatus(ctx context.Context, id, status string) (domain.JobRecord, error) {
	return t.UpdateJob(ctx, id, domain.JobPatch{Status: &status})
}

func (t *Tracker) DeleteJob(ctx context.Context, id string) error {
	jobs, err := t.Jobs(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(jobs, id)
	if idx == -1 {
		return ErrNotFound
	}
	next := append(jobs[:idx:idx], jobs[idx+1:]...)
	return t.writeJobs(ctx, next)
}

func indexOf(jobs []domain.JobRecord, id string) int {
	for i, j := range jobs {
		if j.ID == id {
			return i
		}
	}
	return -1
}
