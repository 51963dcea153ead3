package model

import (
	"context"
	"time"
)

// RawJob is one decoded element of the upstream job array. Key names and
// value types are not guaranteed; only the normalizer reads it.
type RawJob = map[string]any

// Job is the canonical job posting every other package depends on.
// Optional fields use the zero value ("" or nil) when the source omits them.
type Job struct {
	ID           string   `json:"id"`                     // content-derived, stable across fetches
	Title        string   `json:"title"`                  // never empty after normalization
	Company      string   `json:"company"`                // never empty after normalization
	Location     string   `json:"location"`               // joined list or single location
	CompanyLogo  string   `json:"logo,omitempty"`         // URL
	Salary       string   `json:"salary,omitempty"`       // human-readable, possibly synthesized
	Description  string   `json:"description,omitempty"`  // raw HTML/text as delivered
	Type         string   `json:"type,omitempty"`         // Full-time, Contract, Remote, ...
	Posted       string   `json:"posted,omitempty"`       // raw posted-on string
	URL          string   `json:"url,omitempty"`          // listing or apply link
	Requirements []string `json:"requirements,omitempty"` // nil when absent
	Benefits     []string `json:"benefits,omitempty"`     // nil when absent
	IsSaved      bool     `json:"isSaved,omitempty"`      // local-only flag, reattached by ID
}

// SavedJob is a bookmarked job snapshot.
type SavedJob struct {
	Job     Job       `json:"job"`
	SavedAt time.Time `json:"savedAt"`
}

// Application records that the user applied to a job.
type Application struct {
	ID             string    `json:"id"`
	JobID          string    `json:"jobId"`
	JobTitle       string    `json:"jobTitle"`
	Company        string    `json:"company"`
	ApplicantName  string    `json:"applicantName"`
	ApplicantEmail string    `json:"applicantEmail"`
	ApplicantPhone string    `json:"applicantPhone"`
	WhyHireYou     string    `json:"whyHireYou"`
	AppliedAt      time.Time `json:"appliedAt"`
}

// WithSavedState returns a copy of jobs with IsSaved set for every job whose
// ID is in saved. The input slice is not modified.
func WithSavedState(jobs []Job, saved map[string]bool) []Job {
	out := make([]Job, len(jobs))
	for i, j := range jobs {
		j.IsSaved = saved[j.ID]
		out[i] = j
	}
	return out
}

// JobFetcher fetches and normalizes job listings from the feed.
type JobFetcher interface {
	FetchJobs(ctx context.Context) ([]Job, error)
}

// JobStore tracks which job IDs have been seen for watch-mode deduplication.
type JobStore interface {
	HasSeen(jobID string) (bool, error)
	MarkSeen(jobID string) error
	Cleanup(olderThan time.Duration) error
	IsEmpty() (bool, error)
}

// SavedJobStore persists bookmarked jobs keyed by Job.ID.
type SavedJobStore interface {
	SaveJob(job Job) error
	UnsaveJob(jobID string) error
	IsSaved(jobID string) (bool, error)
	SavedJobs() ([]SavedJob, error)
	SavedIDs() (map[string]bool, error)
}

// ApplicationStore persists submitted applications, at most one per job.
type ApplicationStore interface {
	AddApplication(app Application) error
	ApplicationFor(jobID string) (*Application, error)
	AppliedIDs() (map[string]bool, error)
	Applications() ([]Application, error)
	CancelApplication(jobID string) (bool, error)
}

// SettingTheme is the settings key holding the browser theme ("light" or "dark").
const SettingTheme = "theme"

// SettingsStore persists small user preferences such as the UI theme.
type SettingsStore interface {
	Setting(key string) (string, error)
	SetSetting(key, value string) error
}

// Notifier sends notifications for new job matches.
type Notifier interface {
	Notify(jobs []Job) error
}

// JobFilter decides whether a job matches the user's criteria.
type JobFilter interface {
	Match(job Job) bool
}
