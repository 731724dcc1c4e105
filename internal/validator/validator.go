package validator

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/proctoring-service/internal/errors"
	"github.com/SAP-F-2025/proctoring-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground struct validation with our custom rules.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new validator instance with all custom rules registered.
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// Validate validates struct tags and returns shared ValidationErrors on failure.
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		return errors.FromValidatorErrors(err)
	}
	return nil
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("violation_type", validateViolationType)

	// Report json field names in error messages instead of Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateViolationType(fl validator.FieldLevel) bool {
	return models.ViolationType(fl.Field().String()).Valid()
}
