// internal/utils/validator.go
package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/javajoker/popgo-backend/internal/pipeline"
	"github.com/javajoker/popgo-backend/internal/prefs"
	"github.com/javajoker/popgo-backend/internal/session"
)

var validate *validator.Validate

var usernamePattern = regexp.MustCompile("^[a-zA-Z0-9_]+$")

func init() {
	validate = validator.New()
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("username", validateUsername)
	validate.RegisterValidation("condition", validateCondition)
	validate.RegisterValidation("theme", validateTheme)
	validate.RegisterValidation("language", validateLanguage)
	validate.RegisterValidation("activity", validateActivity)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasNumber bool

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	return hasUpper && hasLower && hasNumber
}

func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()

	// Username should be alphanumeric and underscores, 3-50 characters
	if len(username) < 3 || len(username) > 50 {
		return false
	}

	return usernamePattern.MatchString(username)
}

func validateCondition(fl validator.FieldLevel) bool {
	_, ok := pipeline.ParseCondition(fl.Field().String())
	return ok
}

func validateTheme(fl validator.FieldLevel) bool {
	_, ok := prefs.ParseTheme(fl.Field().String())
	return ok
}

func validateLanguage(fl validator.FieldLevel) bool {
	_, ok := prefs.ParseLanguage(fl.Field().String())
	return ok
}

func validateActivity(fl validator.FieldLevel) bool {
	return session.ValidActivity(session.ActivityKind(fl.Field().String()))
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "strong_password":
		return "Password must contain at least 8 characters with uppercase, lowercase and a number"
	case "username":
		return "Username must be 3-50 characters and contain only letters, numbers, and underscores"
	case "condition":
		return "Condition must be one of mint, near_mint, good, fair, poor"
	case "theme":
		return "Theme must be dark or light"
	case "language":
		return "Language must be one of EN, PL, RU, FR, DE, ES, US, CA"
	case "activity":
		return "Activity must be one of pointer, key, scroll, touch, wheel"
	default:
		return e.Field() + " is invalid"
	}
}
