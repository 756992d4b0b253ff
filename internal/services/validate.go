package services

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/maariam000/DevCamper/internal/errs"
)

var validate = validator.New()

// validateStruct runs the model's validate tags and converts failures into a
// single Validation error listing every offending field.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.Validationf("invalid payload")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errs.Validationf("%s", strings.Join(msgs, ", "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return "Please add " + field
	case "email":
		return "Please add a valid email for " + field
	case "url":
		return "Please use a valid URL for " + field
	case "max":
		return field + " can not be more than " + fe.Param()
	case "min":
		return field + " must be at least " + fe.Param()
	case "oneof":
		return field + " must be one of " + fe.Param()
	default:
		return field + " is invalid"
	}
}
