package store

import (
	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/scrape/util"
)

// FindDuplicate returns the first stored record that candidate duplicates.
// Matching jobIds win first; otherwise the normalized URLs must be non-empty
// and equal. Missing ids or URLs never match.
func FindDuplicate(candidate domain.JobRecord, existing []domain.JobRecord) (domain.JobRecord, bool) {
	id := domain.JobIDValue(candidate.JobID)
	normalized := util.NormalizeURL(candidate.URL)

	for _, e := range existing {
		if id != "" && id == domain.JobIDValue(e.JobID) {
			return e, true
		}
		if normalized == "" {
			continue
		}
		if util.NormalizeURL(e.URL) == normalized {
			return e, true
		}
	}
	return domain.JobRecord{}, false
}

func IsDuplicate(candidate domain.JobRecord, existing []domain.JobRecord) bool {
	_, ok := FindDuplicate(candidate, existing)
	return ok
}
