package lead

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/felixgeelhaar/carbonwallet/internal/errors"
)

// FieldError is one validation problem, keyed by the JSON field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors lists every problem found in a payload.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// First returns the first problem, which the form shows to the user.
func (v ValidationErrors) First() FieldError {
	if len(v) == 0 {
		return FieldError{}
	}
	return v[0]
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		mustRegister(v, "notblank", validators.NotBlank)
		mustRegister(v, "company_size", optionValidator(CompanySizes))
		mustRegister(v, "team_size", optionValidator(TeamSizes))
		mustRegister(v, "timeline", optionValidator(Timelines))
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func optionValidator(options []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return inOptions(options, fl.Field().String())
	}
}

// Validate checks p before it is sent. The result is nil or a
// ValidationErrors.
func Validate(p Payload) error {
	err := instance().Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.ErrCodeLeadInvalid, "lead could not be validated", err)
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldName(fe), Message: message(fe)})
	}
	return out
}

// fieldName turns "interests[2]" into "interests".
func fieldName(fe validator.FieldError) string {
	name, _, _ := strings.Cut(fe.Field(), "[")
	return name
}

func message(fe validator.FieldError) string {
	field := fieldName(fe)
	switch fe.Tag() {
	case "required", "notblank":
		if field == "interests" {
			return "interests must not contain empty entries"
		}
		return field + " is required"
	case "email":
		return "email must be a valid email address"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "company_size", "team_size", "timeline":
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(Options(field), ", "))
	default:
		return field + " is invalid"
	}
}

// AsValidationErrors extracts ValidationErrors from err.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var verrs ValidationErrors
	if stderrors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}

// CheckEmail reports whether s is an acceptable email address.
func CheckEmail(s string) error {
	if err := instance().Var(s, "required,email"); err != nil {
		if strings.TrimSpace(s) == "" {
			return FieldError{Field: "email", Message: "email is required"}
		}
		return FieldError{Field: "email", Message: "email must be a valid email address"}
	}
	return nil
}
