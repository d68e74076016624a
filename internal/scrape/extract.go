package scrape

import (
	"time"

	"github.com/charmbracelet/log"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/scrape/util"
)

// Fields is a partial title/company pair produced by one source.
type Fields struct {
	Title   string
	Company string
}

// fill copies each field from next only where f is still empty.
func (f Fields) fill(next Fields) Fields {
	if f.Title == "" {
		f.Title = next.Title
	}
	if f.Company == "" {
		f.Company = next.Company
	}
	return f
}

func (f Fields) complete() bool { return f.Title != "" && f.Company != "" }

// Strategy is one extraction source over a page snapshot.
type Strategy func(Page) Fields

// Extractor runs the source waterfall against a page.
type Extractor struct {
	strategies []Strategy
	now        func() time.Time
	log        *log.Logger
}

type Option func(*Extractor)

func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Extractor) { e.log = l }
}

// WithStrategies replaces the default source chain.
func WithStrategies(s ...Strategy) Option {
	return func(e *Extractor) { e.strategies = s }
}

// WithSites swaps the site selector table used by the default chain.
func WithSites(sites []Site) Option {
	return func(e *Extractor) { e.strategies = DefaultStrategies(sites) }
}

// DefaultStrategies is structured data, then social meta, then site
// selectors, then the first h1.
func DefaultStrategies(sites []Site) []Strategy {
	return []Strategy{
		FromStructuredData,
		FromSocialMeta,
		FromSiteSelectors(sites),
		FromHeading,
	}
}

func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		strategies: DefaultStrategies(Sites),
		now:        time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Extract never fails: a panic anywhere in the chain yields the empty
// candidate for p.URL.
func (e *Extractor) Extract(p Page) (c domain.Candidate) {
	defer func() {
		if rec := recover(); rec != nil {
			if e.log != nil {
				e.log.Debug("extraction failed", "url", p.URL, "err", rec)
			}
			c = e.Empty(p.URL)
		}
	}()

	var f Fields
	for _, s := range e.strategies {
		if f.complete() {
			break
		}
		f = f.fill(s(p))
	}

	if f.Company == "" {
		f.Company = CompanyFromPageTitle(f.Title, p.DocumentTitle())
	}

	company := util.CleanText(f.Company)
	return domain.Candidate{
		Title:   StripCompanySuffix(util.CleanText(f.Title), company),
		Company: company,
		URL:     p.URL,
		Date:    domain.Today(e.now()),
		JobID:   JobID(p.URL),
	}
}

// Empty is the degraded record returned when a page cannot be read.
func (e *Extractor) Empty(pageURL string) domain.Candidate {
	return domain.Candidate{
		URL:  pageURL,
		Date: domain.Today(e.now()),
	}
}

// FromSocialMeta reads og:title and og:site_name.
func FromSocialMeta(p Page) Fields {
	return Fields{
		Title:   p.metaProperty("og:title"),
		Company: p.metaProperty("og:site_name"),
	}
}

// FromHeading is the last-resort title source.
func FromHeading(p Page) Fields {
	return Fields{Title: p.bySelectors([]string{"h1"})}
}
