package bridge

import (
	"context"

	"github.com/charmbracelet/log"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/scrape"
	"jobtrack-engine/internal/scrape/util"
)

const (
	MsgCaptured    = "Job details captured."
	MsgScanned     = "Page scanned. Enter missing details manually."
	MsgUnreachable = "Unable to scan this page (restricted or unsupported)."
)

// Result is what a host surface shows after a scrape attempt.
type Result struct {
	Candidate domain.Candidate `json:"candidate"`
	Captured  bool             `json:"captured"`
	Message   string           `json:"message"`
	Warning   string           `json:"warning,omitempty"`
}

// Host drives a page context from the UI side.
type Host struct {
	ex  *scrape.Extractor
	log *log.Logger
}

func NewHost(ex *scrape.Extractor, logger *log.Logger) *Host {
	if ex == nil {
		ex = scrape.NewExtractor()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Host{ex: ex, log: logger}
}

// Scrape asks pc for a candidate. A failed first send triggers one Install
// and one retry; if that also fails the result carries a warning and the
// empty candidate for pageURL.
func (h *Host) Scrape(ctx context.Context, pc PageContext, pageURL string) Result {
	req := Request{Action: ActionScrapeJob, URL: pageURL}

	c, err := pc.Send(ctx, req)
	if err != nil {
		h.log.Debug("first send failed, installing", "url", pageURL, "err", err)
		if err = pc.Install(ctx); err == nil {
			c, err = pc.Send(ctx, req)
		}
	}
	if err != nil {
		h.log.Warn("scan failed", "url", pageURL, "err", err)
		return Result{
			Candidate: h.ex.Empty(pageURL),
			Warning:   MsgUnreachable,
		}
	}

	res := Result{Candidate: c, Message: MsgScanned}
	if c.Title != "" || c.Company != "" {
		res.Captured = true
		res.Message = MsgCaptured
	}
	return res
}

// Form is the editable record a host holds before save.
type Form struct {
	Company string  `json:"company"`
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Date    string  `json:"date"`
	Status  string  `json:"status"`
	JobID   *string `json:"jobId"`
}

// Prefill puts the page URL in an empty form URL for http(s) pages.
func (f *Form) Prefill(pageURL string) {
	if f.URL == "" && util.IsWebURL(pageURL) {
		f.URL = pageURL
	}
}

// Hydrate merges a scraped candidate: non-empty fields overwrite, the jobId
// is always replaced.
func (f *Form) Hydrate(c domain.Candidate) {
	if c.Company != "" {
		f.Company = c.Company
	}
	if c.Title != "" {
		f.Title = c.Title
	}
	if c.URL != "" {
		f.URL = c.URL
	}
	f.JobID = nil
	if v := domain.JobIDValue(c.JobID); v != "" {
		f.JobID = &v
	}
}

// NewJob converts the form into a save request.
func (f Form) NewJob() domain.NewJob {
	return domain.NewJob{
		JobID:   f.JobID,
		Company: f.Company,
		Title:   f.Title,
		URL:     f.URL,
		Date:    f.Date,
		Status:  f.Status,
	}
}
