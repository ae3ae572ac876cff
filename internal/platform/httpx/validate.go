package httpx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validator.Validate cachea metadata por tipo y es seguro para uso concurrente.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate corre los tags `validate:"..."` del DTO. Los fallos se devuelven
// envueltos en ErrValidation con un mensaje por campo.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), describeTag(fe)))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(parts, "; "))
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "not a valid email"
	case "oneof":
		return "not one of [" + fe.Param() + "]"
	case "min":
		return "shorter than " + fe.Param()
	case "gte":
		return "lower than " + fe.Param()
	default:
		return "invalid (" + fe.Tag() + ")"
	}
}
