// Package apply validates the job application form and turns it into a
// stored application record.
package apply

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/amishk599/jobboard/internal/model"
)

// MinWhyHireYou is the minimum length of the motivation answer, after trimming.
const MinWhyHireYou = 50

// Form is the user-entered application. Field values are trimmed before
// validation.
type Form struct {
	Name       string `form:"name" validate:"required"`
	Email      string `form:"email" validate:"required,email"`
	Phone      string `form:"phone" validate:"required,contact"`
	WhyHireYou string `form:"why" validate:"required,min=50"`
}

// Trimmed returns a copy of f with surrounding whitespace removed from every field.
func (f Form) Trimmed() Form {
	return Form{
		Name:       strings.TrimSpace(f.Name),
		Email:      strings.TrimSpace(f.Email),
		Phone:      strings.TrimSpace(f.Phone),
		WhyHireYou: strings.TrimSpace(f.WhyHireYou),
	}
}

// contactPattern accepts digits with common separators, at least ten characters.
var contactPattern = regexp.MustCompile(`^[\d\s\-+()]{10,}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})
	if err := v.RegisterValidation("contact", func(fl validator.FieldLevel) bool {
		return contactPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// messages maps a form field and failed rule to the text shown under the input.
var messages = map[string]map[string]string{
	"name":  {"required": "Name is required"},
	"email": {"required": "Email is required", "email": "Please enter a valid email"},
	"phone": {"required": "Contact number is required", "contact": "Please enter a valid contact number"},
	"why": {
		"required": "This field is required",
		"min":      fmt.Sprintf("Please write at least %d characters", MinWhyHireYou),
	},
}

// ValidationError lists the invalid form fields with one message each.
type ValidationError struct {
	Fields map[string]string // keyed by form field: name, email, phone, why
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid application: " + strings.Join(parts, "; ")
}

// Validate checks the trimmed form. It returns nil or a *ValidationError.
func (f Form) Validate() error {
	err := validate.Struct(f.Trimmed())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating application: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, ok := fields[fe.Field()]; ok {
			continue
		}
		msg := messages[fe.Field()][fe.Tag()]
		if msg == "" {
			msg = "Invalid value"
		}
		fields[fe.Field()] = msg
	}
	return &ValidationError{Fields: fields}
}

// NewApplication validates form and builds the application for job.
func NewApplication(job model.Job, form Form, now time.Time) (model.Application, error) {
	if err := form.Validate(); err != nil {
		return model.Application{}, err
	}
	f := form.Trimmed()
	return model.Application{
		ID:             uuid.NewString(),
		JobID:          job.ID,
		JobTitle:       job.Title,
		Company:        job.Company,
		ApplicantName:  f.Name,
		ApplicantEmail: f.Email,
		ApplicantPhone: f.Phone,
		WhyHireYou:     f.WhyHireYou,
		AppliedAt:      now,
	}, nil
}

// Submit validates form and stores the application. A job can only be
// applied to once; a repeat returns model.ErrAlreadyApplied.
func Submit(store model.ApplicationStore, job model.Job, form Form, now time.Time) (model.Application, error) {
	app, err := NewApplication(job, form, now)
	if err != nil {
		return model.Application{}, err
	}
	if err := store.AddApplication(app); err != nil {
		return model.Application{}, err
	}
	return app, nil
}
