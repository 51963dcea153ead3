package main

import (
	"strings"
	"testing"
	"time"

	"github.com/amishk599/jobboard/internal/config"
	"github.com/amishk599/jobboard/internal/model"
)

func TestMatchesID(t *testing.T) {
	id := "0a1b2c3d-0a1b-2c3d-0a1b-2c3d0a1b2c3d"
	tests := []struct {
		query string
		want  bool
	}{
		{id, true},
		{"0a1b2c3d", true},
		{"0A1B2C3D", true},
		{"  0a1b2c3d ", true},
		{"0a1b2c", false},
		{"ffffffff", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := matchesID(id, tt.query); got != tt.want {
			t.Errorf("matchesID(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0a1b2c3d-0a1b-2c3d-0a1b-2c3d0a1b2c3d"); got != "0a1b2c3d" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("plain"); got != "plain" {
		t.Errorf("shortID without dash = %q", got)
	}
}

func TestFetchBudgetCoversRetries(t *testing.T) {
	cfg := config.Default()
	budget := fetchBudget(cfg)

	minimum := time.Duration(cfg.API.MaxRetries+1) * cfg.API.Timeout
	if budget <= minimum {
		t.Errorf("budget %v should exceed %v of request time", budget, minimum)
	}

	cfg.API.MaxRetries = 0
	if got := fetchBudget(cfg); got >= budget {
		t.Errorf("budget without retries %v should be below %v", got, budget)
	}
}

func TestRenderJobDetail(t *testing.T) {
	job := model.Job{
		ID:           "0a1b2c3d-0a1b-2c3d-0a1b-2c3d0a1b2c3d",
		Title:        "Go Engineer",
		Company:      "Acme",
		Location:     "Remote",
		Description:  "<p>Build <strong>things</strong></p>",
		Requirements: []string{"<li>Go</li>", ""},
		IsSaved:      true,
	}
	now := time.Now()
	out := renderJobDetail(job, &model.Application{AppliedAt: now.Add(-time.Hour)}, now)

	for _, want := range []string{"Go Engineer", "Acme", "★ Saved", "✓ Applied", "Remote", "Build things", "Requirements", "• Go"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<") {
		t.Errorf("detail still has markup:\n%s", out)
	}
	if strings.Contains(out, "Benefits") {
		t.Errorf("empty section should be omitted:\n%s", out)
	}
}

func TestJobsTableShowsFlags(t *testing.T) {
	jobs := []model.Job{
		{ID: "aaaaaaaa-x", Title: "Saved One", Company: "A", IsSaved: true},
		{ID: "bbbbbbbb-x", Title: strings.Repeat("Long ", 20), Company: "B"},
	}
	out := jobsTable(jobs, map[string]bool{"bbbbbbbb-x": true})

	for _, want := range []string{"aaaaaaaa", "bbbbbbbb", "★", "✓", "…"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
