package bridge

import (
	"context"
	"errors"

	"jobtrack-engine/internal/domain"
)

// ActionScrapeJob is the only action a page context answers.
const ActionScrapeJob = "scrape_job"

var (
	ErrNotInstalled    = errors.New("extractor not installed in page")
	ErrUnsupportedPage = errors.New("page cannot be scanned")
	ErrUnknownAction   = errors.New("unknown action")
)

// Request is what a host sends across the boundary.
type Request struct {
	Action string `json:"action"`
	URL    string `json:"url,omitempty"`
}

// PageContext is the page side of the boundary. Send fails with
// ErrNotInstalled until Install has loaded the extractor into the page.
type PageContext interface {
	Send(ctx context.Context, req Request) (domain.Candidate, error)
	Install(ctx context.Context) error
}
