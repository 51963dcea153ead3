package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amishk599/jobboard/internal/model"
)

const applicationColumns = `id, job_id, job_title, company, applicant_name,
	applicant_email, applicant_phone, why_hire_you, applied_at`

// AddApplication stores app. Only one application per job is allowed; a
// second one returns model.ErrAlreadyApplied.
func (s *SQLiteStore) AddApplication(app model.Application) error {
	res, err := s.db.Exec(
		`INSERT INTO applications (`+applicationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(job_id) DO NOTHING`,
		app.ID, app.JobID, app.JobTitle, app.Company, app.ApplicantName,
		app.ApplicantEmail, app.ApplicantPhone, app.WhyHireYou, app.AppliedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("adding application for %s: %w", app.JobID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("adding application for %s: %w", app.JobID, err)
	}
	if n == 0 {
		return fmt.Errorf("adding application for %s: %w", app.JobID, model.ErrAlreadyApplied)
	}
	return nil
}

// ApplicationFor returns the application for jobID, or nil if there is none.
func (s *SQLiteStore) ApplicationFor(jobID string) (*model.Application, error) {
	row := s.db.QueryRow("SELECT "+applicationColumns+" FROM applications WHERE job_id = ?", jobID)
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading application for %s: %w", jobID, err)
	}
	return &app, nil
}

// AppliedIDs returns the set of job IDs with an application.
func (s *SQLiteStore) AppliedIDs() (map[string]bool, error) {
	return s.idSet("SELECT job_id FROM applications")
}

// Applications returns all applications, newest first.
func (s *SQLiteStore) Applications() ([]model.Application, error) {
	rows, err := s.db.Query("SELECT " + applicationColumns + " FROM applications ORDER BY applied_at DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	return apps, nil
}

// CancelApplication withdraws the application for jobID. It reports whether
// an application existed.
func (s *SQLiteStore) CancelApplication(jobID string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM applications WHERE job_id = ?", jobID)
	if err != nil {
		return false, fmt.Errorf("cancelling application for %s: %w", jobID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("cancelling application for %s: %w", jobID, err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (model.Application, error) {
	var (
		app       model.Application
		appliedAt int64
	)
	err := row.Scan(&app.ID, &app.JobID, &app.JobTitle, &app.Company, &app.ApplicantName,
		&app.ApplicantEmail, &app.ApplicantPhone, &app.WhyHireYou, &appliedAt)
	if err != nil {
		return model.Application{}, err
	}
	app.AppliedAt = time.Unix(appliedAt, 0)
	return app, nil
}
