package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/mindtris/uitheme/internal/theme"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Report fields by their JSON names so messages match the artifact text.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("has_slug", func(fl validator.FieldLevel) bool {
			return theme.Slug(fl.Field().String()) != ""
		})

		validateInst = v
	})

	return validateInst
}

func validateStruct(s any) Result {
	err := validatorInstance().Struct(s)
	if err == nil {
		return Valid()
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		return Result{Error: describe(ves[0])}
	}
	return Result{Error: err.Error()}
}

func describe(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("Artifact %s is required", field)
	case "eq":
		return fmt.Sprintf("Unsupported artifact %s %v (expected %s)", field, fe.Value(), fe.Param())
	case "oneof":
		return fmt.Sprintf("Artifact %s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "has_slug":
		return fmt.Sprintf("Artifact %s must contain at least one letter or digit", field)
	default:
		return fmt.Sprintf("Artifact %s failed validation for tag '%s'", field, fe.Tag())
	}
}

// fieldPath drops the root struct name from the namespace ("Artifact.base.type" → "base.type").
func fieldPath(fe validator.FieldError) string {
	_, rest, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		return fe.Field()
	}
	return rest
}
