package scrape

import "strings"

// Site is one job-site family with ordered selectors per field.
type Site struct {
	Name    string
	Hosts   []string // substrings matched against the hostname
	Title   []string
	Company []string
}

// Matches reports whether hostname belongs to the site family.
func (s Site) Matches(hostname string) bool {
	for _, h := range s.Hosts {
		if strings.Contains(hostname, h) {
			return true
		}
	}
	return false
}

// Sites is checked in order; the first matching family wins.
var Sites = []Site{
	{
		Name:  "linkedin",
		Hosts: []string{"linkedin.com"},
		Title: []string{
			".job-details-jobs-unified-top-card__job-title h1",
			".job-details-jobs-unified-top-card__job-title",
			"h1",
		},
		Company: []string{
			".job-details-jobs-unified-top-card__company-name",
			".job-details-jobs-unified-top-card__primary-description-container a",
		},
	},
	{
		Name:    "greenhouse",
		Hosts:   []string{"greenhouse.io"},
		Title:   []string{".app-title", "h1"},
		Company: []string{".company-name", ".company"},
	},
	{
		Name:    "lever",
		Hosts:   []string{"lever.co"},
		Title:   []string{".posting-headline h2", ".posting-headline h1", "h1"},
		Company: []string{".posting-categories .sort-by-team", ".posting-categories .sort-by-office"},
	},
	{
		Name:    "workday",
		Hosts:   []string{"workday"},
		Title:   []string{"[data-automation-id='jobPostingHeader']", "h1"},
		Company: []string{"[data-automation-id='company']", "[data-automation-id='locations']"},
	},
	{
		Name:    "indeed",
		Hosts:   []string{"indeed.com"},
		Title:   []string{"h1[data-testid='jobsearch-JobInfoHeader-title']", "h1"},
		Company: []string{"[data-testid='inlineHeader-companyName']", "[data-testid='company-name']"},
	},
	{
		Name:    "glassdoor",
		Hosts:   []string{"glassdoor.com"},
		Title:   []string{"[data-test='job-title']", "h1"},
		Company: []string{"[data-test='employer-name']"},
	},
	{
		Name:    "wellfound",
		Hosts:   []string{"wellfound.com", "angel.co"},
		Title:   []string{"h1"},
		Company: []string{"[data-test='JobPageHeader-CompanyName'] a", "[data-test='JobPageHeader-CompanyName']"},
	},
}

// LookupSite classifies hostname against sites.
func LookupSite(sites []Site, hostname string) (Site, bool) {
	hostname = strings.ToLower(hostname)
	for _, s := range sites {
		if s.Matches(hostname) {
			return s, true
		}
	}
	return Site{}, false
}

// FromSiteSelectors builds the site-specific source over a selector table.
func FromSiteSelectors(sites []Site) Strategy {
	return func(p Page) Fields {
		site, ok := LookupSite(sites, p.Hostname)
		if !ok {
			return Fields{}
		}
		return Fields{
			Title:   p.bySelectors(site.Title),
			Company: p.bySelectors(site.Company),
		}
	}
}
