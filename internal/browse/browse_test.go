package browse

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/jobboard/internal/model"
	"github.com/amishk599/jobboard/internal/store"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleJobs() []model.Job {
	return []model.Job{
		{ID: "1", Title: "Go Engineer", Company: "Acme", Location: "Remote", Type: "Full-time", URL: "https://acme.example/jobs/1"},
		{ID: "2", Title: "Designer", Company: "Globex", Location: "Berlin", Type: "Contract"},
		{
			ID: "3", Title: "SRE", Company: "Initech", Location: "Manila",
			Description:  "<p>Keep things <strong>up</strong> 🚀</p><ul><li>Go</li><li>Linux</li></ul>",
			Requirements: []string{"<b>5</b> years on call", ""},
			Benefits:     []string{"HMO"},
		},
	}
}

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "browse.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestModel(t *testing.T, s *store.SQLiteStore, opened *[]string) browseModel {
	t.Helper()
	m, err := newBrowseModel(Deps{
		Jobs:         sampleJobs(),
		Saved:        s,
		Applications: s,
		Settings:     s,
		Theme:        ThemeLight,
		Now:          func() time.Time { return fixedNow },
		OpenURL: func(url string) error {
			if opened != nil {
				*opened = append(*opened, url)
			}
			return nil
		},
	})
	require.NoError(t, err)
	return press(m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m browseModel, msgs ...tea.Msg) browseModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(browseModel)
	}
	return m
}

func ids(jobs []model.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func TestBrowse_SearchFiltersList(t *testing.T) {
	m := newTestModel(t, newTestStore(t), nil)
	assert.Equal(t, []string{"1", "2", "3"}, ids(m.visible))

	m = press(m, key("/"), key("contract"))
	assert.True(t, m.search.Focused())
	assert.Equal(t, []string{"2"}, ids(m.visible))

	m = press(m, key("esc"))
	assert.False(t, m.search.Focused(), "esc should leave the search box")
	assert.Equal(t, []string{"2"}, ids(m.visible), "query is kept after leaving the box")

	m = press(m, key("esc"))
	assert.Empty(t, m.search.Value())
	assert.Len(t, m.visible, 3)
}

func TestBrowse_NoMatchesShowsHint(t *testing.T) {
	m := newTestModel(t, newTestStore(t), nil)
	m = press(m, key("/"), key("zzz"))

	assert.Empty(t, m.visible)
	assert.Contains(t, m.renderJobs(), `No jobs match "zzz"`)
}

func TestBrowse_SaveToggleAndSavedTab(t *testing.T) {
	s := newTestStore(t)
	m := newTestModel(t, s, nil)

	m = press(m, key("s"))
	saved, err := s.IsSaved("1")
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, m.jobs[0].IsSaved)

	m = press(m, key("tab"))
	assert.Equal(t, tabSaved, m.tab)
	assert.Equal(t, []string{"1"}, ids(m.visible))
	assert.Contains(t, m.renderJobs(), "saved")

	m = press(m, key("s"))
	saved, err = s.IsSaved("1")
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Empty(t, m.visible)
	assert.Contains(t, m.renderJobs(), "No saved jobs yet")

	m = press(m, key("1"))
	assert.Equal(t, tabFind, m.tab)
	assert.False(t, m.jobs[0].IsSaved)
}

func TestBrowse_SavedStateReattachedOnStartup(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveJob(sampleJobs()[1]))

	m := newTestModel(t, s, nil)
	assert.False(t, m.jobs[0].IsSaved)
	assert.True(t, m.jobs[1].IsSaved)
	assert.Len(t, m.saved, 1)
}

func fillForm(m browseModel) browseModel {
	m.form.inputs[fieldName].SetValue("Juan Dela Cruz")
	m.form.inputs[fieldEmail].SetValue("juan@example.com")
	m.form.inputs[fieldPhone].SetValue("0917 123 4567")
	m.form.why.SetValue("I have built and operated Go services for five years and love it.")
	return m
}

func TestBrowse_ApplyAndCancel(t *testing.T) {
	s := newTestStore(t)
	m := newTestModel(t, s, nil)

	m = press(m, key("enter"))
	require.Equal(t, viewDetail, m.view)
	assert.Equal(t, "1", m.detailJob.ID)

	m = press(m, key("a"))
	require.Equal(t, viewForm, m.view)

	m = press(fillForm(m), key("ctrl+s"))
	assert.Equal(t, viewDetail, m.view)
	assert.True(t, m.applied["1"])
	app, err := s.ApplicationFor("1")
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, "Go Engineer", app.JobTitle)
	assert.Equal(t, fixedNow.Unix(), app.AppliedAt.Unix())
	assert.Contains(t, m.renderDetail(), "✓ Applied")

	m = press(m, key("a"))
	assert.Equal(t, viewDetail, m.view, "second apply should not open the form")
	assert.Equal(t, "You already applied to this job", m.flash)

	m = press(m, key("x"), key("n"))
	assert.True(t, m.applied["1"], "any key but y keeps the application")

	m = press(m, key("x"), key("y"))
	assert.False(t, m.applied["1"])
	app, err = s.ApplicationFor("1")
	require.NoError(t, err)
	assert.Nil(t, app)
}

func TestBrowse_InvalidFormStaysOpen(t *testing.T) {
	s := newTestStore(t)
	m := newTestModel(t, s, nil)

	m = press(m, key("enter"), key("a"), key("ctrl+s"))
	assert.Equal(t, viewForm, m.view)
	assert.Len(t, m.form.errors, 4)
	assert.Contains(t, m.viewForm(), "Name is required")

	applied, err := s.AppliedIDs()
	require.NoError(t, err)
	assert.Empty(t, applied)

	m = press(m, key("esc"))
	assert.Equal(t, viewDetail, m.view)
}

func TestBrowse_FormTabCyclesFields(t *testing.T) {
	m := newTestModel(t, newTestStore(t), nil)
	m = press(m, key("enter"), key("a"))
	assert.Equal(t, fieldName, m.form.focus)

	m = press(m, key("tab"), key("tab"), key("tab"))
	assert.Equal(t, fieldWhy, m.form.focus)

	m = press(m, key("tab"))
	assert.Equal(t, fieldName, m.form.focus)
}

func TestBrowse_ThemeTogglePersists(t *testing.T) {
	s := newTestStore(t)
	m := newTestModel(t, s, nil)
	assert.Equal(t, ThemeLight, m.theme)

	m = press(m, key("t"))
	assert.Equal(t, ThemeDark, m.theme)
	v, err := s.Setting(model.SettingTheme)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, v)

	reopened := newTestModel(t, s, nil)
	assert.Equal(t, ThemeDark, reopened.theme, "stored theme wins over the configured default")
}

func TestBrowse_DetailShowsCleanedText(t *testing.T) {
	m := newTestModel(t, newTestStore(t), nil)
	m = press(m, key("down"), key("down"), key("enter"))
	require.Equal(t, "3", m.detailJob.ID)

	out := m.renderDetail()
	assert.Contains(t, out, "About the role")
	assert.Contains(t, out, "Keep things up")
	assert.Contains(t, out, "• Go")
	assert.Contains(t, out, "• 5 years on call")
	assert.Contains(t, out, "• HMO")
	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, "🚀")
}

func TestBrowse_OpenURL(t *testing.T) {
	var opened []string
	m := newTestModel(t, newTestStore(t), &opened)

	m = press(m, key("enter"), key("o"))
	assert.Equal(t, []string{"https://acme.example/jobs/1"}, opened)

	m = press(m, key("esc"), key("down"), key("enter"), key("o"))
	assert.Len(t, opened, 1)
	assert.Equal(t, "This listing has no link", m.flash)
}

func TestBrowse_CursorClampsToList(t *testing.T) {
	m := newTestModel(t, newTestStore(t), nil)
	m = press(m, key("up"))
	assert.Equal(t, 0, m.cursor)
	m = press(m, key("j"), key("j"), key("j"), key("j"))
	assert.Equal(t, 2, m.cursor)
}

func TestConfirmModel(t *testing.T) {
	update := func(m confirmModel, msgs ...tea.Msg) confirmModel {
		for _, msg := range msgs {
			next, _ := m.Update(msg)
			m = next.(confirmModel)
		}
		return m
	}

	m := update(confirmModel{question: "Withdraw?"}, key("enter"))
	assert.True(t, m.answered)
	assert.False(t, m.yes, "default answer is No")

	m = update(confirmModel{question: "Withdraw?"}, key("j"), key("enter"))
	assert.True(t, m.yes)

	m = update(confirmModel{question: "Withdraw?"}, key("y"))
	assert.True(t, m.yes)

	m = update(confirmModel{question: "Withdraw?"}, key("j"), key("q"))
	assert.False(t, m.yes)
	assert.True(t, strings.Contains(confirmModel{question: "Withdraw?"}.View(), "Withdraw?"))
}

func TestLoaderModel_FetchDone(t *testing.T) {
	m := newLoaderModel("empllo.com", time.Second, nil)
	next, cmd := m.Update(fetchDoneMsg{jobs: sampleJobs()})
	lm := next.(loaderModel)

	assert.True(t, lm.done)
	assert.Len(t, lm.result, 3)
	assert.NotNil(t, cmd)
	assert.Empty(t, lm.View())
}

func TestLoaderModel_CtrlCCancels(t *testing.T) {
	m := newLoaderModel("empllo.com", time.Second, nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.ErrorIs(t, next.(loaderModel).err, ErrCancelled)
}

func TestToggleTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ToggleTheme(ThemeLight))
	assert.Equal(t, ThemeLight, ToggleTheme(ThemeDark))
	assert.Equal(t, ThemeDark, ToggleTheme("sepia"))
	assert.Equal(t, ThemeLight, NormalizeTheme(""))
}
