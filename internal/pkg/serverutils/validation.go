package serverutils

import (
	"cooking-assistant-be/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest checks `validate` tags and reports failures as
// ValidationError with the given client message.
func ValidateRequest(req interface{}, message string) error {
	if err := validate.Struct(req); err != nil {
		return apperr.Validation(message, nil)
	}
	return nil
}
