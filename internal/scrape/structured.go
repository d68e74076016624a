package scrape

import (
	"encoding/json"

	"github.com/PuerkitoBio/goquery"

	"jobtrack-engine/internal/scrape/util"
)

const jobPostingType = "JobPosting"

// FromStructuredData scans every ld+json block for the first JobPosting
// entity carrying a title or a hiring organization. Fields are never merged
// across entities.
func FromStructuredData(p Page) Fields {
	if p.Doc == nil {
		return Fields{}
	}
	var out Fields
	p.Doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return true
		}
		for _, entity := range flattenJSONLD(payload) {
			if !isJobPosting(entity["@type"]) {
				continue
			}
			f := Fields{
				Title:   util.CleanAny(entity["title"]),
				Company: hiringOrganization(entity["hiringOrganization"]),
			}
			if f.Title != "" || f.Company != "" {
				out = f
				return false
			}
		}
		return true
	})
	return out
}

// flattenJSONLD unwraps arrays and @graph containers into a flat entity list.
func flattenJSONLD(v any) []map[string]any {
	switch t := v.(type) {
	case []any:
		var out []map[string]any
		for _, item := range t {
			out = append(out, flattenJSONLD(item)...)
		}
		return out
	case map[string]any:
		if graph, ok := t["@graph"].([]any); ok {
			return flattenJSONLD(graph)
		}
		return []map[string]any{t}
	default:
		return nil
	}
}

func isJobPosting(t any) bool {
	switch v := t.(type) {
	case string:
		return v == jobPostingType
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == jobPostingType {
				return true
			}
		}
	}
	return false
}

func hiringOrganization(v any) string {
	switch t := v.(type) {
	case string:
		return util.CleanText(t)
	case map[string]any:
		return util.CleanAny(t["name"])
	default:
		return ""
	}
}
