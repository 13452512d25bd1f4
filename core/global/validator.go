package global

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^1[0-9]{10}$`)
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// InitValidator creates the shared validator and registers the custom
// rules used by the DTO layer.
func InitValidator() {
	Validate = validator.New()

	// phone_number: 11-digit mobile number
	_ = Validate.RegisterValidation("phone_number", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	// date_string: calendar date in YYYY-MM-DD form
	_ = Validate.RegisterValidation("date_string", func(fl validator.FieldLevel) bool {
		return datePattern.MatchString(fl.Field().String())
	})
}
