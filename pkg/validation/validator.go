// Package validation checks the structure of a submitted form before any
// downstream call is made.
package validation

import (
	"github.com/go-playground/validator/v10"

	"lead-gateway/pkg/models"
)

// Field names as they appear in the inbound body.
const (
	FieldNationalID = "tc"
	FieldPasscode   = "password"
	FieldPhone      = "phone"
	FieldEventID    = "eventID"
)

// FieldError reports the first field that failed its format rule
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

type rule struct {
	field   string
	tag     string
	message string
	value   func(models.SubmissionForm) string
}

// rules run in this order and stop at the first failure.
var rules = []rule{
	{FieldNationalID, "required,len=11,number", "Geçersiz TC numarası.", func(f models.SubmissionForm) string { return f.TC }},
	{FieldPasscode, "required,len=6,number", "Geçersiz şifre.", func(f models.SubmissionForm) string { return f.Password }},
	{FieldPhone, "required,len=10,number", "Geçersiz telefon numarası.", func(f models.SubmissionForm) string { return f.Phone }},
	{FieldEventID, "required", "Event ID eksik.", func(f models.SubmissionForm) string { return f.EventID }},
}

// Validator turns a raw form into a SubmissionRequest
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator
func New() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks the mandatory fields in fixed order and returns a
// *FieldError for the first one that fails. A field sent with a non-string
// JSON value fails its own rule.
func (v *Validator) Validate(form models.SubmissionForm) (models.SubmissionRequest, error) {
	for _, r := range rules {
		if form.IsMistyped(r.field) {
			return models.SubmissionRequest{}, &FieldError{Field: r.field, Message: r.message}
		}
		if err := v.validate.Var(r.value(form), r.tag); err != nil {
			return models.SubmissionRequest{}, &FieldError{Field: r.field, Message: r.message}
		}
	}

	return models.SubmissionRequest{
		NationalID: form.TC,
		Passcode:   form.Password,
		Phone:      form.Phone,
		EventID:    form.EventID,
		BrowserID:  form.FBP,
		ClickID:    form.FBC,
		RawClickID: form.ClickID,
	}, nil
}
