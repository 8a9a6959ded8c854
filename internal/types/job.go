// Package types provides type definitions for structured data used throughout the jobscout system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobRecord represents a single job posting recovered from a detail page.
// URL is canonical (query string stripped) and unique within a harvesting
// session; all text fields are whitespace-normalized before storage.
type JobRecord struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Description  string `json:"description"`
}

// RankedJob is a JobRecord annotated with a similarity score against the
// operator's resume. Scores lie in [0,1] and are comparable only within a
// single ranking call; the vector space is rebuilt per call.
type RankedJob struct {
	JobRecord
	Score float64 `json:"score"`
}

// JobRecords wraps a collection of extracted jobs for JSON artifacts.
type JobRecords struct {
	Jobs []JobRecord `json:"jobs"`
}

// RankedJobs wraps a ranked shortlist for JSON artifacts.
type RankedJobs struct {
	Ranked []RankedJob `json:"ranked"`
}
