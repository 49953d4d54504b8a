package contactform

import (
	"errors"

	"corvus-contact/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// Field names accepted by SetField
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldCompany = "company"
	FieldMessage = "message"
)

// FieldOrder is the order fields are rendered and validated in
var FieldOrder = []string{FieldName, FieldEmail, FieldCompany, FieldMessage}

var ErrUnknownField = errors.New("contactform: unknown field")

// Fields is the submission payload. Company is dropped from the JSON body
// when empty.
type Fields struct {
	Name    string `json:"name" validate:"required,min=2,max=50"`
	Email   string `json:"email" validate:"required,contact_email,max=100"`
	Company string `json:"company,omitempty" validate:"max=100"`
	Message string `json:"message" validate:"required,min=10,max=1000"`
}

// Get returns the value of a named field
func (f Fields) Get(name string) (string, error) {
	switch name {
	case FieldName:
		return f.Name, nil
	case FieldEmail:
		return f.Email, nil
	case FieldCompany:
		return f.Company, nil
	case FieldMessage:
		return f.Message, nil
	}
	return "", ErrUnknownField
}

func (f *Fields) set(name, value string) error {
	switch name {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldCompany:
		f.Company = value
	case FieldMessage:
		f.Message = value
	default:
		return ErrUnknownField
	}
	return nil
}

// FieldErrors maps a field name to its inline error message
type FieldErrors map[string]string

func (e FieldErrors) clone() FieldErrors {
	if e == nil {
		return nil
	}
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Validate evaluates the local validation rules. A nil result means the
// fields may be submitted.
func Validate(v *validator.Validate, f Fields) FieldErrors {
	if v == nil {
		v = validation.New()
	}
	msgs := validation.FormatValidationErrors(v.Struct(f))
	if len(msgs) == 0 {
		return nil
	}
	return FieldErrors(msgs)
}
