package scrape

import (
	"strings"

	"jobtrack-engine/internal/scrape/util"
)

// titleSeparators are tried in order when splitting a document title.
var titleSeparators = []string{" - ", " | ", " at "}

// CompanyFromPageTitle guesses the company from a document title such as
// "Backend Engineer | Acme Corp". With no known title the last segment wins;
// otherwise the first segment that differs from title.
func CompanyFromPageTitle(title, pageTitle string) string {
	text := util.CleanText(pageTitle)
	if text == "" {
		return ""
	}
	for _, sep := range titleSeparators {
		if !strings.Contains(text, sep) {
			continue
		}
		var parts []string
		for _, p := range strings.Split(text, sep) {
			if p = util.CleanText(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) < 2 {
			continue
		}
		if title == "" {
			return parts[len(parts)-1]
		}
		for _, p := range parts {
			if p != title {
				return p
			}
		}
	}
	return ""
}

// StripCompanySuffix removes one " - <company>", " at <company>" and
// " | <company>" occurrence each from title.
func StripCompanySuffix(title, company string) string {
	if title == "" || company == "" {
		return title
	}
	for _, sep := range []string{" - ", " at ", " | "} {
		title = strings.Replace(title, sep+company, "", 1)
	}
	return util.CleanText(title)
}
