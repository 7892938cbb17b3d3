package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

// normalizer is implemented by request types whose string fields must be
// trimmed before constraints are evaluated. Trimming happens first so an
// all-whitespace value fails a minimum-length constraint, not passes it.
type normalizer interface {
	normalize()
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// Failures are reported as a domain.ValidationError carrying every violated
// constraint in declaration order, not just the first one.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so error items match the wire payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if n, ok := i.(normalizer); ok {
		n.normalize()
	}

	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	fields := make([]domain.FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, domain.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return &domain.ValidationError{Fields: fields}
}

// fieldMessage converts a single violation into a human-readable message.
func fieldMessage(fe validator.FieldError) string {
	field := capitalize(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return "Invalid " + fe.Field()
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
