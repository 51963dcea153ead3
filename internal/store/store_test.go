package store

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/amishk599/jobboard/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMarkSeenThenHasSeen(t *testing.T) {
	s := newTestStore(t)

	if err := s.MarkSeen("job-123"); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}
	seen, err := s.HasSeen("job-123")
	if err != nil {
		t.Fatalf("HasSeen: %v", err)
	}
	if !seen {
		t.Error("expected HasSeen to return true after MarkSeen")
	}
}

func TestHasSeenUnknownReturnsFalse(t *testing.T) {
	s := newTestStore(t)

	seen, err := s.HasSeen("does-not-exist")
	if err != nil {
		t.Fatalf("HasSeen: %v", err)
	}
	if seen {
		t.Error("expected HasSeen to return false for unknown job ID")
	}
}

func TestMarkSeenIdempotent(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 2; i++ {
		if err := s.MarkSeen("job-456"); err != nil {
			t.Fatalf("MarkSeen #%d: %v", i+1, err)
		}
	}
	seen, err := s.HasSeen("job-456")
	if err != nil {
		t.Fatalf("HasSeen: %v", err)
	}
	if !seen {
		t.Error("expected HasSeen to return true after duplicate MarkSeen")
	}
}

func TestIsEmpty(t *testing.T) {
	s := newTestStore(t)

	empty, err := s.IsEmpty()
	if err != nil {
		t.Fatalf("IsEmpty: %v", err)
	}
	if !empty {
		t.Error("expected new store to be empty")
	}

	if err := s.MarkSeen("job-1"); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}
	if empty, _ = s.IsEmpty(); empty {
		t.Error("expected store to be non-empty after MarkSeen")
	}
}

func TestCleanupRemovesOldKeepsFresh(t *testing.T) {
	s := newTestStore(t)

	_, err := s.db.Exec(
		"INSERT INTO seen_jobs (job_id, first_seen) VALUES (?, ?)",
		"old-job", time.Now().Add(-48*time.Hour).Unix(),
	)
	if err != nil {
		t.Fatalf("inserting old job: %v", err)
	}
	if err := s.MarkSeen("fresh-job"); err != nil {
		t.Fatalf("MarkSeen fresh: %v", err)
	}

	if err := s.Cleanup(24 * time.Hour); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	if seen, _ := s.HasSeen("old-job"); seen {
		t.Error("expected old job to be cleaned up")
	}
	if seen, _ := s.HasSeen("fresh-job"); !seen {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestSaveJobRoundTrip(t *testing.T) {
	s := newTestStore(t)
	job := model.Job{
		ID:           "a1",
		Title:        "Engineer",
		Company:      "Acme",
		Salary:       "$80k - $120k",
		Requirements: []string{"Go", "SQL"},
	}

	if err := s.SaveJob(job); err != nil {
		t.Fatalf("SaveJob: %v", err)
	}

	saved, err := s.IsSaved("a1")
	if err != nil || !saved {
		t.Fatalf("IsSaved = %v, %v; want true", saved, err)
	}

	list, err := s.SavedJobs()
	if err != nil {
		t.Fatalf("SavedJobs: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 saved job, got %d", len(list))
	}
	got := list[0]
	if got.Job.Title != "Engineer" || got.Job.Salary != "$80k - $120k" || len(got.Job.Requirements) != 2 {
		t.Errorf("unexpected snapshot: %+v", got.Job)
	}
	if !got.Job.IsSaved {
		t.Error("expected saved snapshot to carry IsSaved")
	}
	if got.SavedAt.IsZero() {
		t.Error("expected SavedAt to be set")
	}
}

func TestSavedPayloadUsesJSONFieldNames(t *testing.T) {
	s := newTestStore(t)
	job := model.Job{ID: "a1", Title: "Engineer", Company: "Acme", CompanyLogo: "https://acme.example/logo.png"}
	if err := s.SaveJob(job); err != nil {
		t.Fatalf("SaveJob: %v", err)
	}

	var payload string
	if err := s.db.QueryRow(`SELECT payload FROM saved_jobs WHERE job_id = ?`, "a1").Scan(&payload); err != nil {
		t.Fatalf("reading payload: %v", err)
	}
	for _, want := range []string{`"id":"a1"`, `"title":"Engineer"`, `"logo":"https://acme.example/logo.png"`, `"isSaved":true`} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload %s missing %s", payload, want)
		}
	}
}

func TestSaveJobTwiceKeepsOneEntry(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveJob(model.Job{ID: "a1", Title: "Old"}); err != nil {
		t.Fatalf("SaveJob: %v", err)
	}
	if err := s.SaveJob(model.Job{ID: "a1", Title: "New"}); err != nil {
		t.Fatalf("SaveJob again: %v", err)
	}

	list, err := s.SavedJobs()
	if err != nil {
		t.Fatalf("SavedJobs: %v", err)
	}
	if len(list) != 1 || list[0].Job.Title != "New" {
		t.Fatalf("expected one refreshed entry, got %+v", list)
	}
}

func TestUnsaveJob(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveJob(model.Job{ID: "a1"}); err != nil {
		t.Fatalf("SaveJob: %v", err)
	}
	if err := s.SaveJob(model.Job{ID: "b2"}); err != nil {
		t.Fatalf("SaveJob: %v", err)
	}
	if err := s.UnsaveJob("a1"); err != nil {
		t.Fatalf("UnsaveJob: %v", err)
	}
	if err := s.UnsaveJob("never-saved"); err != nil {
		t.Fatalf("UnsaveJob unknown: %v", err)
	}

	ids, err := s.SavedIDs()
	if err != nil {
		t.Fatalf("SavedIDs: %v", err)
	}
	if ids["a1"] || !ids["b2"] || len(ids) != 1 {
		t.Errorf("unexpected saved ids: %v", ids)
	}
}

func testApplication(id, jobID string) model.Application {
	return model.Application{
		ID:             id,
		JobID:          jobID,
		JobTitle:       "Engineer",
		Company:        "Acme",
		ApplicantName:  "Juan Dela Cruz",
		ApplicantEmail: "juan@example.com",
		ApplicantPhone: "09171234567",
		WhyHireYou:     "I have shipped Go services to production for five years running.",
		AppliedAt:      time.Unix(1_700_000_000, 0),
	}
}

func TestApplicationLifecycle(t *testing.T) {
	s := newTestStore(t)

	app := testApplication("app-1", "job-1")
	if err := s.AddApplication(app); err != nil {
		t.Fatalf("AddApplication: %v", err)
	}

	got, err := s.ApplicationFor("job-1")
	if err != nil {
		t.Fatalf("ApplicationFor: %v", err)
	}
	if got == nil {
		t.Fatal("expected application, got nil")
	}
	if *got != app {
		t.Errorf("ApplicationFor = %+v, want %+v", *got, app)
	}

	ids, err := s.AppliedIDs()
	if err != nil || !ids["job-1"] {
		t.Fatalf("AppliedIDs = %v, %v", ids, err)
	}

	removed, err := s.CancelApplication("job-1")
	if err != nil || !removed {
		t.Fatalf("CancelApplication = %v, %v; want true", removed, err)
	}
	if got, _ := s.ApplicationFor("job-1"); got != nil {
		t.Errorf("expected no application after cancel, got %+v", got)
	}

	removed, err = s.CancelApplication("job-1")
	if err != nil || removed {
		t.Fatalf("second CancelApplication = %v, %v; want false", removed, err)
	}
}

func TestAddApplicationRejectsDuplicateJob(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddApplication(testApplication("app-1", "job-1")); err != nil {
		t.Fatalf("AddApplication: %v", err)
	}
	err := s.AddApplication(testApplication("app-2", "job-1"))
	if !errors.Is(err, model.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApplicationsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	older := testApplication("app-1", "job-1")
	newer := testApplication("app-2", "job-2")
	newer.AppliedAt = older.AppliedAt.Add(time.Hour)

	for _, app := range []model.Application{older, newer} {
		if err := s.AddApplication(app); err != nil {
			t.Fatalf("AddApplication: %v", err)
		}
	}

	apps, err := s.Applications()
	if err != nil {
		t.Fatalf("Applications: %v", err)
	}
	if len(apps) != 2 || apps[0].ID != "app-2" || apps[1].ID != "app-1" {
		t.Fatalf("unexpected order: %+v", apps)
	}
}

func TestSettings(t *testing.T) {
	s := newTestStore(t)

	v, err := s.Setting(model.SettingTheme)
	if err != nil || v != "" {
		t.Fatalf("Setting unset = %q, %v", v, err)
	}
	if err := s.SetSetting(model.SettingTheme, "dark"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := s.SetSetting(model.SettingTheme, "light"); err != nil {
		t.Fatalf("SetSetting overwrite: %v", err)
	}
	if v, _ := s.Setting(model.SettingTheme); v != "light" {
		t.Errorf("Setting = %q, want light", v)
	}
}

func TestNopStoreNeverRemembers(t *testing.T) {
	var s model.JobStore = NewNopStore()
	if err := s.MarkSeen("x"); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}
	if seen, _ := s.HasSeen("x"); seen {
		t.Error("expected NopStore to report unseen")
	}
}
