package service

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ibeloyar/oilcheckout/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// в сообщениях об ошибках поля называются так же, как в JSON
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

func validateSubmitOrderDTO(input model.SubmitOrderDTO) *model.APIError {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return &model.APIError{
			Code:    http.StatusBadRequest,
			Kind:    model.KindValidation,
			Message: err.Error(),
		}
	}

	fe := validationErrors[0]
	return &model.APIError{
		Code:    http.StatusBadRequest,
		Kind:    model.KindValidation,
		Message: fmt.Sprintf("%s: %s", fieldPath(fe), fieldMessage(fe)),
	}
}

// fieldPath: "SubmitOrderDTO.customer.zip" -> "customer.zip"
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "numeric":
		return "must contain digits only"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "datetime":
		return "must be a date in format YYYY-MM-DD"
	case "eq":
		return "must be accepted"
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}
