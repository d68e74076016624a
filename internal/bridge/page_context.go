package bridge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/scrape"
	"jobtrack-engine/internal/scrape/util"
)

const (
	defaultUserAgent = "JobTrack/1.0 (+local)"
	defaultMaxBody   = 5 << 20
)

// Fetcher opens page contexts backed by an HTTP GET of the page.
type Fetcher struct {
	hc        *http.Client
	limiter   *util.HostLimiter
	userAgent string
	maxBody   int64
	ex        *scrape.Extractor
}

type FetcherOptions struct {
	Timeout   time.Duration
	UserAgent string
	MaxBody   int64
	Limiter   *util.HostLimiter
	Client    *http.Client
}

func NewFetcher(ex *scrape.Extractor, o FetcherOptions) *Fetcher {
	hc := o.Client
	if hc == nil {
		timeout := o.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	ua := o.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	maxBody := o.MaxBody
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	if ex == nil {
		ex = scrape.NewExtractor()
	}
	return &Fetcher{hc: hc, limiter: o.Limiter, userAgent: ua, maxBody: maxBody, ex: ex}
}

// Open returns an uninstalled context for pageURL. Nothing is fetched until
// Install.
func (f *Fetcher) Open(pageURL string) *FetchedPage {
	return &FetchedPage{f: f, url: pageURL}
}

// FetchedPage holds one snapshot of a remote page once installed.
type FetchedPage struct {
	f   *Fetcher
	url string

	mu   sync.Mutex
	page *scrape.Page
}

func (p *FetchedPage) Install(ctx context.Context) error {
	if !util.IsWebURL(p.url) {
		return fmt.Errorf("%w: %q", ErrUnsupportedPage, p.url)
	}
	if err := p.f.limiter.WaitURL(ctx, p.url); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedPage, err)
	}
	req.Header.Set("User-Agent", p.f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	res, err := p.f.hc.Do(req)
	if err != nil {
		return fmt.Errorf("get page: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d", ErrUnsupportedPage, res.StatusCode)
	}

	// Final URL after redirects is what the page reports as its location.
	finalURL := p.url
	if res.Request != nil && res.Request.URL != nil {
		finalURL = res.Request.URL.String()
	}
	page, err := scrape.ParsePage(io.LimitReader(res.Body, p.f.maxBody), finalURL)
	if err != nil {
		return fmt.Errorf("parse page html: %w", err)
	}

	p.mu.Lock()
	p.page = &page
	p.mu.Unlock()
	return nil
}

func (p *FetchedPage) Send(_ context.Context, req Request) (domain.Candidate, error) {
	if req.Action != ActionScrapeJob {
		return domain.Candidate{}, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
	p.mu.Lock()
	page := p.page
	p.mu.Unlock()
	if page == nil {
		return domain.Candidate{}, ErrNotInstalled
	}
	return p.f.ex.Extract(*page), nil
}

// StaticPage is a context over a snapshot the caller already has, such as
// HTML posted by a browser helper. It is always installed.
type StaticPage struct {
	Page scrape.Page
	Ex   *scrape.Extractor
}

func (s StaticPage) Install(context.Context) error { return nil }

func (s StaticPage) Send(_ context.Context, req Request) (domain.Candidate, error) {
	if req.Action != ActionScrapeJob {
		return domain.Candidate{}, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
	ex := s.Ex
	if ex == nil {
		ex = scrape.NewExtractor()
	}
	return ex.Extract(s.Page), nil
}
