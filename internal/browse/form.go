package browse

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amishk599/jobboard/internal/apply"
)

// Form field order; also the tab order.
const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldWhy
	fieldCount
)

var fieldKeys = [fieldCount]string{"name", "email", "phone", "why"}

var fieldLabels = [fieldCount]string{"Full name", "Email", "Contact number", "Why should we hire you?"}

// formModel is the application form shown over the detail view.
type formModel struct {
	inputs [fieldWhy]textinput.Model
	why    textarea.Model
	focus  int
	errors map[string]string
}

func newFormModel(width int) formModel {
	var f formModel
	placeholders := [fieldWhy]string{"Juan Dela Cruz", "you@example.com", "0917 123 4567"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = "› "
		ti.CharLimit = 120
		ti.Width = max(width-8, 20)
		f.inputs[i] = ti
	}
	f.inputs[fieldEmail].CharLimit = 254

	f.why = textarea.New()
	f.why.Placeholder = "At least 50 characters"
	f.why.ShowLineNumbers = false
	f.why.SetWidth(max(width-6, 20))
	f.why.SetHeight(5)

	f.inputs[fieldName].Focus()
	return f
}

func (f formModel) value() apply.Form {
	return apply.Form{
		Name:       f.inputs[fieldName].Value(),
		Email:      f.inputs[fieldEmail].Value(),
		Phone:      f.inputs[fieldPhone].Value(),
		WhyHireYou: f.why.Value(),
	}
}

// setFocus moves focus to field i, wrapping around.
func (f *formModel) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.why.Blur()
	if f.focus == fieldWhy {
		return f.why.Focus()
	}
	return f.inputs[f.focus].Focus()
}

// validate runs the application rules and keeps the per-field messages.
func (f *formModel) validate() bool {
	err := f.value().Validate()
	var verr *apply.ValidationError
	if errors.As(err, &verr) {
		f.errors = verr.Fields
		return false
	}
	f.errors = nil
	return err == nil
}

// update forwards a key to the focused field and clears that field's error.
func (f formModel) update(msg tea.Msg) (formModel, tea.Cmd) {
	var cmd tea.Cmd
	if f.focus == fieldWhy {
		f.why, cmd = f.why.Update(msg)
	} else {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	}
	if f.errors != nil {
		delete(f.errors, fieldKeys[f.focus])
	}
	return f, cmd
}

func (f formModel) view(st styles, jobTitle, company string) string {
	var b strings.Builder
	b.WriteString(st.title.Render("Apply for "+jobTitle) + "\n")
	b.WriteString(st.subtitle.Render(company) + "\n\n")

	for i := 0; i < fieldCount; i++ {
		label := fieldLabels[i]
		if i == f.focus {
			b.WriteString(st.selectedTitle.Render(label) + "\n")
		} else {
			b.WriteString(st.title.Render(label) + "\n")
		}
		if i == fieldWhy {
			b.WriteString(f.why.View() + "\n")
			n := len([]rune(strings.TrimSpace(f.why.Value())))
			b.WriteString(st.hint.Render(charCount(n)) + "\n")
		} else {
			b.WriteString(f.inputs[i].View() + "\n")
		}
		if msg := f.errors[fieldKeys[i]]; msg != "" {
			b.WriteString(st.errorText.Render("  "+msg) + "\n")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func charCount(n int) string {
	if n >= apply.MinWhyHireYou {
		return "  " + strconv.Itoa(n) + " characters"
	}
	return "  " + strconv.Itoa(n) + "/" + strconv.Itoa(apply.MinWhyHireYou) + " characters"
}
