package scrape

import (
	"net/url"
	"regexp"
	"strings"

	"jobtrack-engine/internal/scrape/util"
)

var (
	linkedinIDRes = []*regexp.Regexp{
		regexp.MustCompile(`currentJobId=(\d+)`),
		regexp.MustCompile(`view/(\d+)`),
		regexp.MustCompile(`jobs/view/(\d+)`),
	}
	greenhouseIDRe = regexp.MustCompile(`jobs/(\d+)`)
	workdayIDRe    = regexp.MustCompile(`job/.+/(.+)$`)
)

// minLeverSlug is the length a lever path segment must exceed to count as
// a posting id.
const minLeverSlug = 5

type idRule struct {
	site   string
	host   string
	native func(raw string, u *url.URL) string
}

var idRules = []idRule{
	{site: "linkedin", host: "linkedin.com", native: func(raw string, _ *url.URL) string {
		for _, re := range linkedinIDRes {
			if m := re.FindStringSubmatch(raw); m != nil {
				return m[1]
			}
		}
		return ""
	}},
	{site: "greenhouse", host: "greenhouse.io", native: func(raw string, _ *url.URL) string {
		if m := greenhouseIDRe.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
		return ""
	}},
	{site: "lever", host: "lever.co", native: func(_ string, u *url.URL) string {
		var last string
		for _, seg := range strings.Split(u.Path, "/") {
			if seg != "" {
				last = seg
			}
		}
		if len(last) > minLeverSlug {
			return last
		}
		return ""
	}},
	{site: "workday", host: "workday", native: func(raw string, _ *url.URL) string {
		if m := workdayIDRe.FindStringSubmatch(raw); m != nil {
			return util.CleanText(m[1])
		}
		return ""
	}},
}

// JobID derives "<site>-<nativeId>" from a posting URL, or nil when the host
// is not recognized or carries no id.
func JobID(raw string) *string {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	host := strings.ToLower(u.Hostname())
	for _, r := range idRules {
		if !strings.Contains(host, r.host) {
			continue
		}
		if id := r.native(raw, u); id != "" {
			s := r.site + "-" + id
			return &s
		}
		return nil
	}
	return nil
}
