// Package export renders tracked jobs as CSV or XLSX files.
package export

import (
	"errors"
	"strings"

	"jobtrack-engine/internal/domain"
)

// CSVFileName is the suggested download name.
const CSVFileName = "job_applications.csv"

// XLSXFileName is the suggested download name for workbooks.
const XLSXFileName = "job_applications.xlsx"

var ErrNothingToExport = errors.New("No jobs to export.")

var header = []string{"Company", "Title", "Status", "Date", "URL"}

func row(j domain.JobRecord) []string {
	return []string{j.Company, j.Title, j.Status, j.Date, j.URL}
}

// CSV renders jobs in stored order. Every field is wrapped in double quotes
// and embedded quotes are written as-is, so values containing `"` produce
// rows that strict CSV readers will reject.
func CSV(jobs []domain.JobRecord) (string, error) {
	if len(jobs) == 0 {
		return "", ErrNothingToExport
	}
	lines := make([]string, 0, len(jobs)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, j := range jobs {
		fields := row(j)
		for i, f := range fields {
			fields[i] = `"` + f + `"`
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n"), nil
}
