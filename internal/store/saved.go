package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/amishk599/jobboard/internal/model"
)

// SaveJob bookmarks a snapshot of job. Saving an already saved job refreshes
// the snapshot but keeps the original saved time.
func (s *SQLiteStore) SaveJob(job model.Job) error {
	job.IsSaved = true
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encoding job %s: %w", job.ID, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO saved_jobs (job_id, saved_at, payload) VALUES (?, ?, ?)
		 ON CONFLICT(job_id) DO UPDATE SET payload = excluded.payload`,
		job.ID, time.Now().Unix(), string(payload),
	)
	if err != nil {
		return fmt.Errorf("saving job %s: %w", job.ID, err)
	}
	return nil
}

// UnsaveJob removes a bookmark. Unknown IDs are ignored.
func (s *SQLiteStore) UnsaveJob(jobID string) error {
	if _, err := s.db.Exec("DELETE FROM saved_jobs WHERE job_id = ?", jobID); err != nil {
		return fmt.Errorf("unsaving job %s: %w", jobID, err)
	}
	return nil
}

// IsSaved reports whether jobID is bookmarked.
func (s *SQLiteStore) IsSaved(jobID string) (bool, error) {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM saved_jobs WHERE job_id = ?", jobID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking saved status for %s: %w", jobID, err)
	}
	return true, nil
}

// SavedJobs returns all bookmarks, most recently saved first.
func (s *SQLiteStore) SavedJobs() ([]model.SavedJob, error) {
	rows, err := s.db.Query("SELECT saved_at, payload FROM saved_jobs ORDER BY saved_at DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("listing saved jobs: %w", err)
	}
	defer rows.Close()

	var saved []model.SavedJob
	for rows.Next() {
		var (
			savedAt int64
			payload string
		)
		if err := rows.Scan(&savedAt, &payload); err != nil {
			return nil, fmt.Errorf("scanning saved job: %w", err)
		}
		var job model.Job
		if err := json.Unmarshal([]byte(payload), &job); err != nil {
			return nil, fmt.Errorf("decoding saved job: %w", err)
		}
		job.IsSaved = true
		saved = append(saved, model.SavedJob{Job: job, SavedAt: time.Unix(savedAt, 0)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing saved jobs: %w", err)
	}
	return saved, nil
}

// SavedIDs returns the set of bookmarked job IDs.
func (s *SQLiteStore) SavedIDs() (map[string]bool, error) {
	return s.idSet("SELECT job_id FROM saved_jobs")
}

func (s *SQLiteStore) idSet(query string) (map[string]bool, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning id: %w", err)
		}
		ids[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing ids: %w", err)
	}
	return ids, nil
}
