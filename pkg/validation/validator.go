package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Port range of the node numbering scheme
	MinNodePort = 30000
	MaxNodePort = 39999
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("nodeport", func(fl validator.FieldLevel) bool {
		p := fl.Field().Int()
		return p >= int64(MinNodePort) && p <= int64(MaxNodePort)
	})
}

// Struct validates v using its `validate` struct tags. Besides the built-in
// tags, "nodeport" checks that an integer lies in the node port range.
func Struct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: %v must be one of [%s]", field, e.Value(), param)
		case "nodeport":
			return fmt.Errorf("%s: %v is outside %d-%d", field, e.Value(), MinNodePort, MaxNodePort)
		case "ip4_addr":
			return fmt.Errorf("%s: %v is not an IPv4 address", field, e.Value())
		case "hostname_port":
			return fmt.Errorf("%s: %v is not host:port", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
