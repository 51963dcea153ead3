// Package search filters canonical jobs against free-text queries.
package search

import (
	"strings"

	"github.com/amishk599/jobboard/internal/model"
)

// Filter returns the jobs whose title, company, location or type contains
// query as a case-insensitive substring. A blank query returns jobs itself.
// Result order follows the input; the input is never modified.
func Filter(jobs []model.Job, query string) []model.Job {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return jobs
	}

	matched := make([]model.Job, 0, len(jobs))
	for _, job := range jobs {
		if matches(job, q) {
			matched = append(matched, job)
		}
	}
	return matched
}

// matches expects q already lower-cased and trimmed. Empty fields never match.
func matches(job model.Job, q string) bool {
	for _, field := range [...]string{job.Title, job.Company, job.Location, job.Type} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Ensure QueryFilter implements model.JobFilter.
var _ model.JobFilter = (*QueryFilter)(nil)

// QueryFilter matches jobs against a set of saved queries using the same
// field rule as Filter. A job matches when any query matches.
// An empty query set (or one holding only blank queries) matches all jobs.
type QueryFilter struct {
	queries []string
}

// NewQueryFilter returns a filter for the given queries. Blank queries are dropped.
func NewQueryFilter(queries []string) *QueryFilter {
	f := &QueryFilter{}
	for _, q := range queries {
		if q = strings.ToLower(strings.TrimSpace(q)); q != "" {
			f.queries = append(f.queries, q)
		}
	}
	return f
}

// Match reports whether job matches any of the filter's queries.
func (f *QueryFilter) Match(job model.Job) bool {
	if len(f.queries) == 0 {
		return true
	}
	for _, q := range f.queries {
		if matches(job, q) {
			return true
		}
	}
	return false
}
