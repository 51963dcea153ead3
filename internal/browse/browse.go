// Package browse is the interactive terminal job browser.
package browse

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/amishk599/jobboard/internal/apply"
	"github.com/amishk599/jobboard/internal/model"
	"github.com/amishk599/jobboard/internal/normalize"
	"github.com/amishk599/jobboard/internal/search"
)

// Lines per job item in the list view (title + subtitle + blank separator).
const jobItemHeight = 3

type tab int

const (
	tabFind tab = iota
	tabSaved
)

type viewState int

const (
	viewList viewState = iota
	viewDetail
	viewForm
)

// Deps are the collaborators the browser reads and writes.
type Deps struct {
	Jobs         []model.Job // freshly fetched feed, in feed order
	Saved        model.SavedJobStore
	Applications model.ApplicationStore
	Settings     model.SettingsStore
	Theme        string // used when no theme is stored
	Logger       *slog.Logger
	Now          func() time.Time
	OpenURL      func(url string) error
}

type browseModel struct {
	deps Deps

	jobs    []model.Job
	saved   []model.SavedJob
	applied map[string]bool
	visible []model.Job

	tab    tab
	view   viewState
	cursor int
	search textinput.Model
	listVP viewport.Model

	detailJob     model.Job
	detailVP      viewport.Model
	confirmCancel bool
	form          formModel

	theme string
	st    styles
	flash string
	isErr bool

	width  int
	height int
	ready  bool
}

func newBrowseModel(deps Deps) (browseModel, error) {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.OpenURL == nil {
		deps.OpenURL = openURL
	}

	theme := deps.Theme
	if stored, err := deps.Settings.Setting(model.SettingTheme); err != nil {
		deps.Logger.Warn("reading theme", "error", err)
	} else if stored != "" {
		theme = stored
	}
	theme = NormalizeTheme(theme)

	applied, err := deps.Applications.AppliedIDs()
	if err != nil {
		return browseModel{}, fmt.Errorf("loading applications: %w", err)
	}

	ti := textinput.New()
	ti.Placeholder = "Search title, company, location or type"
	ti.Prompt = "🔍 "

	m := browseModel{
		deps:    deps,
		applied: applied,
		search:  ti,
		theme:   theme,
		st:      newStyles(theme),
	}
	if err := m.reloadSaved(); err != nil {
		return browseModel{}, err
	}
	m.refilter()
	return m, nil
}

// reloadSaved refreshes the Saved tab and reattaches IsSaved to the feed.
func (m *browseModel) reloadSaved() error {
	saved, err := m.deps.Saved.SavedJobs()
	if err != nil {
		return fmt.Errorf("loading saved jobs: %w", err)
	}
	ids := make(map[string]bool, len(saved))
	for _, s := range saved {
		ids[s.Job.ID] = true
	}
	m.saved = saved
	m.jobs = model.WithSavedState(m.deps.Jobs, ids)
	m.detailJob.IsSaved = ids[m.detailJob.ID]
	return nil
}

func (m browseModel) tabJobs() []model.Job {
	if m.tab == tabFind {
		return m.jobs
	}
	jobs := make([]model.Job, len(m.saved))
	for i, s := range m.saved {
		jobs[i] = s.Job
	}
	return jobs
}

// refilter recomputes the visible list from the active tab and search box.
func (m *browseModel) refilter() {
	m.visible = search.Filter(m.tabJobs(), m.search.Value())
	m.cursor = clamp(m.cursor, 0, max(len(m.visible)-1, 0))
	m.recalcContent()
}

func (m *browseModel) setFlash(msg string, isErr bool) {
	m.flash, m.isErr = msg, isErr
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case viewForm:
			return m.updateForm(msg)
		case viewDetail:
			return m.updateDetailView(msg)
		default:
			return m.updateListView(msg)
		}
	}

	if m.view == viewForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m browseModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.Focused() {
		switch msg.String() {
		case "esc", "enter":
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.cursor = 0
		m.refilter()
		return m, cmd
	}

	m.flash = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		cmd := m.search.Focus()
		return m, cmd
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.refilter()
		}
		return m, nil
	case "tab", "1", "2":
		next := tabFind
		switch msg.String() {
		case "tab":
			next = 1 - m.tab
		case "2":
			next = tabSaved
		}
		if next != m.tab {
			m.tab = next
			m.cursor = 0
			m.listVP.SetYOffset(0)
			m.refilter()
		}
		return m, nil
	case "up", "k":
		m.cursor = clamp(m.cursor-1, 0, max(len(m.visible)-1, 0))
		m.recalcContent()
		return m, nil
	case "down", "j":
		m.cursor = clamp(m.cursor+1, 0, max(len(m.visible)-1, 0))
		m.recalcContent()
		return m, nil
	case "enter":
		return m.openDetailView()
	case "s":
		if job, ok := m.selected(); ok {
			m.toggleSave(job)
		}
		return m, nil
	case "t":
		m.toggleTheme()
		return m, nil
	}

	var cmd tea.Cmd
	m.listVP, cmd = m.listVP.Update(msg)
	return m, cmd
}

func (m browseModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmCancel {
		m.confirmCancel = false
		if msg.String() == "y" {
			m.cancelApplication()
		} else {
			m.setFlash("Kept your application", false)
		}
		m.refreshDetail()
		return m, nil
	}

	m.flash = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		m.recalcContent()
		return m, nil
	case "s":
		m.toggleSave(m.detailJob)
	case "a":
		if m.applied[m.detailJob.ID] {
			m.setFlash("You already applied to this job", true)
			break
		}
		m.view = viewForm
		m.form = newFormModel(m.width)
		return m, textinput.Blink
	case "x":
		if !m.applied[m.detailJob.ID] {
			m.setFlash("No application to cancel", true)
			break
		}
		m.confirmCancel = true
		m.setFlash("Withdraw your application? y to confirm, any other key to keep it", true)
	case "o":
		if m.detailJob.URL == "" {
			m.setFlash("This listing has no link", true)
			break
		}
		if err := m.deps.OpenURL(m.detailJob.URL); err != nil {
			m.setFlash("Could not open browser: "+err.Error(), true)
		}
	case "t":
		m.toggleTheme()
	default:
		var cmd tea.Cmd
		m.detailVP, cmd = m.detailVP.Update(msg)
		return m, cmd
	}
	m.refreshDetail()
	return m, nil
}

func (m browseModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewDetail
		m.refreshDetail()
		return m, nil
	case "tab", "down":
		cmd := m.form.setFocus(m.form.focus + 1)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.form.setFocus(m.form.focus - 1)
		return m, cmd
	case "enter":
		if m.form.focus != fieldWhy {
			cmd := m.form.setFocus(m.form.focus + 1)
			return m, cmd
		}
	case "ctrl+s":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m browseModel) submitForm() (tea.Model, tea.Cmd) {
	if !m.form.validate() {
		m.setFlash("Please fix the highlighted fields", true)
		return m, nil
	}
	app, err := apply.Submit(m.deps.Applications, m.detailJob, m.form.value(), m.deps.Now())
	switch {
	case errors.Is(err, model.ErrAlreadyApplied):
		m.applied[m.detailJob.ID] = true
		m.setFlash("You already applied to this job", true)
	case err != nil:
		m.deps.Logger.Error("submitting application", "job_id", m.detailJob.ID, "error", err)
		m.setFlash("Could not submit application", true)
		return m, nil
	default:
		m.applied[app.JobID] = true
		m.setFlash("Application submitted for "+app.JobTitle, false)
	}
	m.view = viewDetail
	m.refreshDetail()
	return m, nil
}

func (m *browseModel) toggleSave(job model.Job) {
	var err error
	if job.IsSaved {
		err = m.deps.Saved.UnsaveJob(job.ID)
	} else {
		err = m.deps.Saved.SaveJob(job)
	}
	if err != nil {
		m.deps.Logger.Error("toggling saved job", "job_id", job.ID, "error", err)
		m.setFlash("Could not update saved jobs", true)
		return
	}
	if err := m.reloadSaved(); err != nil {
		m.setFlash("Could not reload saved jobs", true)
		return
	}
	if job.IsSaved {
		m.setFlash("Removed from saved jobs", false)
	} else {
		m.setFlash("Saved "+job.Title, false)
	}
	m.refilter()
}

func (m *browseModel) cancelApplication() {
	removed, err := m.deps.Applications.CancelApplication(m.detailJob.ID)
	if err != nil {
		m.deps.Logger.Error("cancelling application", "job_id", m.detailJob.ID, "error", err)
		m.setFlash("Could not cancel application", true)
		return
	}
	delete(m.applied, m.detailJob.ID)
	if removed {
		m.setFlash("Application withdrawn", false)
	}
}

func (m *browseModel) toggleTheme() {
	m.theme = ToggleTheme(m.theme)
	m.st = newStyles(m.theme)
	if err := m.deps.Settings.SetSetting(model.SettingTheme, m.theme); err != nil {
		m.deps.Logger.Warn("saving theme", "error", err)
	}
	m.recalcContent()
}

func (m browseModel) selected() (model.Job, bool) {
	if len(m.visible) == 0 {
		return model.Job{}, false
	}
	return m.visible[m.cursor], true
}

func (m browseModel) openDetailView() (tea.Model, tea.Cmd) {
	job, ok := m.selected()
	if !ok {
		return m, nil
	}
	m.view = viewDetail
	m.detailJob = job
	m.confirmCancel = false
	m.detailVP = viewport.New(max(m.width-4, 20), max(m.height-4, 5))
	m.refreshDetail()
	return m, nil
}

func (m *browseModel) refreshDetail() {
	if m.view == viewDetail {
		m.detailVP.SetContent(m.renderDetail())
	}
}

func (m *browseModel) recalcLayout() {
	// Tabs (1) + search (1) + border top/bottom (2) + status bar (1).
	w := max(m.width-2, 20)
	h := max(m.height-5, 5)
	if !m.ready {
		m.listVP = viewport.New(w, h)
		m.ready = true
	} else {
		m.listVP.Width = w
		m.listVP.Height = h
	}
	m.search.Width = max(m.width-6, 10)
	m.detailVP.Width = max(m.width-4, 20)
	m.detailVP.Height = max(m.height-4, 5)
	m.recalcContent()
}

func (m *browseModel) recalcContent() {
	if m.ready {
		m.listVP.SetContent(m.renderJobs())
		m.ensureCursorVisible()
	}
	m.refreshDetail()
}

func (m *browseModel) ensureCursorVisible() {
	top := m.cursor * jobItemHeight
	bottom := top + jobItemHeight - 1
	if top < m.listVP.YOffset {
		m.listVP.SetYOffset(top)
	} else if bottom >= m.listVP.YOffset+m.listVP.Height {
		m.listVP.SetYOffset(bottom - m.listVP.Height + 1)
	}
}

func (m browseModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	switch m.view {
	case viewForm:
		return m.viewForm()
	case viewDetail:
		return m.viewDetail()
	default:
		return m.viewList()
	}
}

func (m browseModel) viewList() string {
	findTab := fmt.Sprintf("Find Jobs (%d)", len(m.jobs))
	savedTab := fmt.Sprintf("Saved (%d)", len(m.saved))
	tabs := []string{m.st.inactiveTab.Render(findTab), m.st.inactiveTab.Render(savedTab)}
	tabs[m.tab] = m.st.activeTab.Render([]string{findTab, savedTab}[m.tab])
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs[0], " ", tabs[1])

	list := m.st.border.Width(m.listVP.Width).Render(m.listVP.View())

	hints := "/ search  tab switch  ↑/↓ move  enter details  s save  t theme  q quit"
	if m.search.Focused() {
		hints = "type to filter  enter/esc done"
	}
	return header + "\n" + m.search.View() + "\n" + list + "\n" + m.statusBar(hints)
}

func (m browseModel) viewDetail() string {
	content := m.st.border.Width(max(m.width-2, 20)).Render(m.detailVP.View())
	hints := "s save  a apply  x cancel application  o open link  t theme  esc back  q quit"
	return content + "\n" + m.statusBar(hints)
}

func (m browseModel) viewForm() string {
	body := m.form.view(m.st, m.detailJob.Title, m.detailJob.Company)
	content := m.st.border.Width(max(m.width-2, 20)).Render(body)
	return content + "\n" + m.statusBar("tab next field  ctrl+s submit  esc cancel")
}

func (m browseModel) statusBar(hints string) string {
	text := " " + hints
	if m.flash != "" {
		style := m.st.flash
		if m.isErr {
			style = m.st.errorText
		}
		text = " " + style.Render(m.flash) + "   " + hints
	}
	return m.st.statusBar.Width(max(m.width, 1)).Render(text)
}

func (m browseModel) renderJobs() string {
	if len(m.visible) == 0 {
		switch {
		case m.search.Value() != "":
			return m.st.hint.Render("  No jobs match \"" + strings.TrimSpace(m.search.Value()) + "\"")
		case m.tab == tabSaved:
			return m.st.hint.Render("  No saved jobs yet. Press s on a job to save it.")
		default:
			return m.st.hint.Render("  No jobs available.")
		}
	}

	savedAt := make(map[string]time.Time, len(m.saved))
	for _, s := range m.saved {
		savedAt[s.Job.ID] = s.SavedAt
	}

	var b strings.Builder
	for i, j := range m.visible {
		titleSt, subSt, prefix := m.st.title, m.st.subtitle, "  "
		if i == m.cursor {
			titleSt, subSt, prefix = m.st.selectedTitle, m.st.selectedSub, "> "
		}

		title := titleSt.Render(j.Title)
		if j.IsSaved {
			title += " " + m.st.badge.Render("★")
		}
		if m.applied[j.ID] {
			title += " " + m.st.appliedBadge.Render("✓ applied")
		}
		b.WriteString(prefix + title + "\n")

		parts := []string{j.Company}
		for _, p := range []string{j.Location, j.Type, j.Salary} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		if at, ok := savedAt[j.ID]; ok && m.tab == tabSaved {
			parts = append(parts, "saved "+humanize.RelTime(at, m.deps.Now(), "ago", "from now"))
		}
		b.WriteString(prefix + subSt.Render(strings.Join(parts, " · ")) + "\n")

		if i < len(m.visible)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m browseModel) renderDetail() string {
	j := m.detailJob
	wrap := max(m.width-8, 20)
	var b strings.Builder

	b.WriteString(m.st.title.Render(j.Title) + "\n")
	b.WriteString(m.st.subtitle.Render(j.Company) + "\n")

	var badges []string
	if j.IsSaved {
		badges = append(badges, m.st.badge.Render("★ Saved"))
	}
	if m.applied[j.ID] {
		label := "✓ Applied"
		if app, err := m.deps.Applications.ApplicationFor(j.ID); err == nil && app != nil {
			label += " " + humanize.RelTime(app.AppliedAt, m.deps.Now(), "ago", "from now")
		}
		badges = append(badges, m.st.appliedBadge.Render(label))
	}
	if len(badges) > 0 {
		b.WriteString(strings.Join(badges, "  ") + "\n")
	}
	b.WriteByte('\n')

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(m.st.label.Render(label) + m.st.value.Render(value) + "\n")
	}
	addField("Location", j.Location)
	addField("Type", j.Type)
	addField("Salary", j.Salary)
	addField("Posted", j.Posted)
	addField("Link", j.URL)
	addField("Job ID", j.ID)

	if desc := normalize.CleanDisplayText(j.Description); desc != "" {
		b.WriteString(m.st.heading.Render("About the role") + "\n")
		b.WriteString(m.st.body.Width(wrap).Render(desc) + "\n")
	}
	for _, section := range []struct {
		title string
		items []string
	}{
		{"Requirements", j.Requirements},
		{"Benefits", j.Benefits},
	} {
		if len(section.items) == 0 {
			continue
		}
		b.WriteString(m.st.heading.Render(section.title) + "\n")
		for _, item := range section.items {
			text := normalize.CleanDisplayText(item)
			if text == "" {
				continue
			}
			if !strings.HasPrefix(text, "• ") {
				text = "• " + text
			}
			b.WriteString(m.st.body.Width(wrap).Render(text) + "\n")
		}
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform %s", runtime.GOOS)
	}
	return cmd.Start()
}

// Run launches the full-screen browser and blocks until the user quits.
func Run(deps Deps) error {
	m, err := newBrowseModel(deps)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
