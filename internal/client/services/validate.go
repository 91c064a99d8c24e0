package services

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidEmail = fmt.Errorf("%w: invalid email", ErrValidation)
	ErrInvalidCode  = fmt.Errorf("%w: code must be exactly 6 digits", ErrValidation)
	ErrEmptyTitle   = fmt.Errorf("%w: title is required", ErrValidation)
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	codePattern  = regexp.MustCompile(`^\d{6}$`)
)

var validate = newValidator()

// newValidator registers the otpemail and otpcode tags used by the request
// models.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("otpemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("otpcode", func(fl validator.FieldLevel) bool {
		return codePattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks s against its validate tags and reports the first failure
// as one of the sentinel validation errors.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return fieldError(ve[0])
}

func fieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "otpemail":
		return ErrInvalidEmail
	case "otpcode":
		return ErrInvalidCode
	case "required":
		if fe.Field() == "Title" {
			return ErrEmptyTitle
		}
		return fmt.Errorf("%w: %s is required", ErrValidation, fe.Field())
	default:
		return fmt.Errorf("%w: %s failed %s", ErrValidation, fe.Field(), fe.Tag())
	}
}

// ValidEmail reports whether email matches the OTP email pattern.
func ValidEmail(email string) bool {
	return validate.Var(email, "otpemail") == nil
}

// ValidCode reports whether code is exactly six digits.
func ValidCode(code string) bool {
	return validate.Var(code, "otpcode") == nil
}
