package harvest

import (
	"net/url"
	"strconv"
	"strings"
)

// JobDetailPathMarker identifies anchors that point at a job detail page.
const JobDetailPathMarker = "/jobs/view/"

const searchBaseURL = "https://www.linkedin.com/jobs/search/"

// SearchURL builds a job-search results URL for one keyword, with an
// optional location and result offset.
func SearchURL(keyword, location string, start int) string {
	q := url.Values{}
	q.Set("keywords", keyword)
	if location != "" {
		q.Set("location", location)
	}
	if start > 0 {
		q.Set("start", strconv.Itoa(start))
	}
	return searchBaseURL + "?" + q.Encode()
}

// CanonicalJobURL strips the query string and fragment from a job link so
// the same posting reached through different tracking parameters
// deduplicates to one identifier.
func CanonicalJobURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		// Keep whatever precedes the query string.
		return strings.SplitN(raw, "?", 2)[0]
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
