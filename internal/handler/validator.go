package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/satchel/internal/domain"
	"github.com/osse101/satchel/internal/profile"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("profileid", validateProfileID)
	_ = v.RegisterValidation("container", validateContainer)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// keyed by the lowercased field name
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "profileid":
			errs[field] = profile.ErrMsgInvalidProfileID
		case "container":
			errs[field] = "Must be \"base\" or a bag instance id"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be %s or greater", e.Param())
		case "alphanum":
			errs[field] = "Must contain only letters and digits"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// validateProfileID allows empty values; "required" decides whether one is needed
func validateProfileID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" {
		return true
	}
	return profile.ValidateProfileID(id) == nil
}

// validateContainer accepts "base" or anything that looks like a bag instance id
func validateContainer(fl validator.FieldLevel) bool {
	c := fl.Field().String()
	return c == domain.ContainerBase || (c != "" && !strings.ContainsAny(c, "\x00\n\r\t "))
}
