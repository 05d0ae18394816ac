package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and flattens the field errors
// into a single message suitable for a 400 response.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		messages := make([]string, len(validationErrors))
		for i, fieldErr := range validationErrors {
			messages[i] = fmt.Sprintf("field '%s' failed on '%s' rule", fieldErr.Field(), fieldErr.Tag())
		}
		return fmt.Errorf("%s", strings.Join(messages, "; "))
	}
	return nil
}
