// Package contact implements the contact form pipeline: the shared
// validation schema, the client-side form state machine, the HTTP
// submitter, and the server-side service that persists a submission and
// sends the confirmation email.
package contact

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidSubmission matches any *ValidationError.
var ErrInvalidSubmission = errors.New("invalid form data")

// Submission is the contact form payload. The same constraints run in the
// browser-facing form and again on the server.
type Submission struct {
	Name     string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Company  string `json:"company,omitempty" form:"company" validate:"max=100"`
	WhatsApp string `json:"whatsapp,omitempty" form:"whatsapp" validate:"max=20,whatsapp"`
	Message  string `json:"message,omitempty" form:"message" validate:"max=1000"`
}

// Record is a persisted submission.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	WhatsApp  string    `json:"whatsapp,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FieldError describes one failed constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every failed field of a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid form data: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSubmission
}

// Field returns the message for field, or "".
func (e *ValidationError) Field(name string) string {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message
		}
	}
	return ""
}

// Summary is the first failure, suitable for a toast.
func (e *ValidationError) Summary() string {
	if len(e.Fields) == 0 {
		return "Please check the form and try again."
	}
	return e.Fields[0].Message
}

var whatsappPattern = regexp.MustCompile(`^\+?[0-9 ()\-]*$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func schema() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("whatsapp", func(fl validator.FieldLevel) bool {
			return whatsappPattern.MatchString(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// Validate checks s against the form schema.
func (s Submission) Validate() error {
	err := schema().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate submission: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "email":
		return "Invalid email address"
	case "whatsapp":
		return "WhatsApp number may only contain digits, spaces, +, -, ( and )"
	default:
		return label + " is invalid"
	}
}

var fieldLabels = map[string]string{
	"name":     "Name",
	"email":    "Email",
	"company":  "Company",
	"whatsapp": "WhatsApp number",
	"message":  "Message",
}
