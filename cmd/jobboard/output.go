package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/amishk599/jobboard/internal/model"
	"github.com/amishk599/jobboard/internal/normalize"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#007AFF")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C6C6C8"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8E8E93"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8E8E93")).Width(12)
	headingStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#34C759"))
)

// maxCell keeps wide feed values from blowing up table layout.
const maxCell = 40

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

func cell(s string) string {
	r := []rune(s)
	if len(r) <= maxCell {
		return s
	}
	return string(r[:maxCell-1]) + "…"
}

func flags(j model.Job, applied map[string]bool) string {
	var f []string
	if j.IsSaved {
		f = append(f, "★")
	}
	if applied[j.ID] {
		f = append(f, "✓")
	}
	return strings.Join(f, " ")
}

func jobsTable(jobs []model.Job, applied map[string]bool) string {
	rows := make([][]string, len(jobs))
	for i, j := range jobs {
		rows[i] = []string{shortID(j.ID), cell(j.Title), cell(j.Company), cell(j.Location), j.Type, flags(j, applied)}
	}
	return renderTable([]string{"ID", "Title", "Company", "Location", "Type", ""}, rows)
}

func savedTable(saved []model.SavedJob, now time.Time) string {
	rows := make([][]string, len(saved))
	for i, s := range saved {
		rows[i] = []string{shortID(s.Job.ID), cell(s.Job.Title), cell(s.Job.Company), humanize.RelTime(s.SavedAt, now, "ago", "from now")}
	}
	return renderTable([]string{"ID", "Title", "Company", "Saved"}, rows)
}

func applicationsTable(apps []model.Application, now time.Time) string {
	rows := make([][]string, len(apps))
	for i, a := range apps {
		rows[i] = []string{shortID(a.JobID), cell(a.JobTitle), cell(a.Company), a.ApplicantEmail, humanize.RelTime(a.AppliedAt, now, "ago", "from now")}
	}
	return renderTable([]string{"Job", "Title", "Company", "Email", "Applied"}, rows)
}

// renderJobDetail prints one job with its HTML fields cleaned for display.
func renderJobDetail(j model.Job, app *model.Application, now time.Time) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(j.Title) + "\n")
	b.WriteString(mutedStyle.Render(j.Company) + "\n")
	if j.IsSaved {
		b.WriteString(okStyle.Render("★ Saved") + "\n")
	}
	if app != nil {
		b.WriteString(okStyle.Render("✓ Applied "+humanize.RelTime(app.AppliedAt, now, "ago", "from now")) + "\n")
	}
	b.WriteByte('\n')

	for _, f := range []struct{ label, value string }{
		{"Location", j.Location},
		{"Type", j.Type},
		{"Salary", j.Salary},
		{"Posted", j.Posted},
		{"Link", j.URL},
		{"Job ID", j.ID},
	} {
		if f.value != "" {
			b.WriteString(labelStyle.Render(f.label) + f.value + "\n")
		}
	}

	if desc := normalize.CleanDisplayText(j.Description); desc != "" {
		b.WriteString(headingStyle.Render("About the role") + "\n")
		b.WriteString(desc + "\n")
	}
	writeList(&b, "Requirements", j.Requirements)
	writeList(&b, "Benefits", j.Benefits)
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	var lines []string
	for _, item := range items {
		text := normalize.CleanDisplayText(item)
		if text == "" {
			continue
		}
		if !strings.HasPrefix(text, "• ") {
			text = "• " + text
		}
		lines = append(lines, text)
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString(headingStyle.Render(title) + "\n")
	b.WriteString(strings.Join(lines, "\n") + "\n")
}
