// Package validation configures request validation rules and turns
// validator failures into per-field messages.
package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "portfolio/internal/errors"
)

const (
	UsernameMinLength       = 3
	UsernameMaxLength       = 31
	StrongPasswordMinLength = 8
	StrongPasswordMaxLength = 20
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// New returns a validator with the custom rules registered and field names
// reported by their json tag.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("username", validateUsername)
	_ = v.RegisterValidation("strongpassword", validateStrongPassword)
	return v
}

// IsValidUsername reports whether s is 3-31 characters of letters, digits,
// underscore or hyphen.
func IsValidUsername(s string) bool {
	return len(s) >= UsernameMinLength && len(s) <= UsernameMaxLength && usernamePattern.MatchString(s)
}

// IsStrongPassword reports whether s is 8-20 characters with at least one
// upper-case letter, one lower-case letter and one digit.
func IsStrongPassword(s string) bool {
	n := len([]rune(s))
	if n < StrongPasswordMinLength || n > StrongPasswordMaxLength {
		return false
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

func validateUsername(fl validator.FieldLevel) bool {
	return IsValidUsername(fl.Field().String())
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// ToValidationError converts validator failures into a ValidationError with
// one message per field. Other errors are returned unchanged.
func ToValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = message(fe)
	}
	return &apperrors.ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "username":
		return fmt.Sprintf("Username must be %d-%d characters and contain only letters, numbers, underscores and hyphens",
			UsernameMinLength, UsernameMaxLength)
	case "strongpassword":
		return fmt.Sprintf("Password must be %d-%d characters with at least one uppercase letter, one lowercase letter and one number",
			StrongPasswordMinLength, StrongPasswordMaxLength)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "email":
		return "Invalid email address"
	case "url":
		return "Invalid URL"
	case "eqfield":
		return "Passwords do not match"
	case "nefield":
		return "New password must be different from the current password"
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "hexcolor":
		return "Must be a hex color such as #6366f1"
	default:
		return "Invalid value"
	}
}

// EchoValidator adapts a validator to echo's Validator interface.
type EchoValidator struct {
	validator *validator.Validate
}

// NewEchoValidator wraps New() for use as echo.Echo.Validator.
func NewEchoValidator() *EchoValidator {
	return &EchoValidator{validator: New()}
}

// Validate implements echo.Validator.
func (ev *EchoValidator) Validate(i interface{}) error {
	if err := ev.validator.Struct(i); err != nil {
		return ToValidationError(err)
	}
	return nil
}
