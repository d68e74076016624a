package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.linkedin.com/jobs/view/3816000000/?currentJobId=123456", "linkedin-123456"},
		{"https://www.linkedin.com/jobs/view/3816000000/", "linkedin-3816000000"},
		{"https://www.linkedin.com/jobs/search/?keywords=go", ""},
		{"https://boards.greenhouse.io/acme/jobs/98765", "greenhouse-98765"},
		{"https://boards.greenhouse.io/acme", ""},
		{"https://jobs.lever.co/acme/senior-engineer-42abf", "lever-senior-engineer-42abf"},
		{"https://jobs.lever.co/acme/senior-engineer-42abf/", "lever-senior-engineer-42abf"},
		{"https://jobs.lever.co/abc", ""},
		{"https://jobs.lever.co/acme/abc", ""},
		{"https://acme.wd1.myworkdayjobs.com/Careers/job/Remote/Engineer_JR-77", "workday-Engineer_JR-77"},
		{"https://acme.wd1.myworkdayjobs.com/Careers", ""},
		{"https://example.test/jobs/1234", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got := JobID(tt.url)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.want, *got)
			}
		})
	}
}

func TestCompanyFromPageTitle(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		pageTitle string
		want      string
	}{
		{"pipe with known title", "Backend Engineer", "Backend Engineer | Acme Corp", "Acme Corp"},
		{"no title takes last segment", "", "Backend Engineer - Jobs - Acme", "Acme"},
		{"dash before pipe", "Go Dev", "Go Dev - Initech | Careers", "Initech | Careers"},
		{"at separator", "SRE", "SRE at Hooli", "Hooli"},
		{"no separator", "SRE", "Careers", ""},
		{"empty", "SRE", "   ", ""},
		{"every segment equals title", "Lead", "Lead - Lead", ""},
		{"falls through to next separator", "Lead | X", "Lead | X - Lead | X", "Lead"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompanyFromPageTitle(tt.title, tt.pageTitle))
		})
	}
}

func TestStripCompanySuffix(t *testing.T) {
	assert.Equal(t, "Backend Engineer", StripCompanySuffix("Backend Engineer - Acme", "Acme"))
	assert.Equal(t, "Backend Engineer", StripCompanySuffix("Backend Engineer at Acme", "Acme"))
	assert.Equal(t, "Backend Engineer", StripCompanySuffix("Backend Engineer | Acme", "Acme"))
	assert.Equal(t, "Backend Engineer - Acme", StripCompanySuffix("Backend Engineer - Acme", "Acme Inc."))
	assert.Equal(t, "Backend Engineer - Acme", StripCompanySuffix("Backend Engineer - Acme - Acme", "Acme"))
	assert.Equal(t, "Title", StripCompanySuffix("Title", ""))
	assert.Equal(t, "", StripCompanySuffix("", "Acme"))
}
