package handlers

import (
	"errors"
	"fmt"
	"strings"

	"feedbackportal/models"

	"github.com/go-playground/validator/v10"
)

type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type FeedbackForm struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=10000"`
	Category    string `validate:"required,category"`
	Priority    string `validate:"required,priority"`
}

type StatusForm struct {
	Status string `validate:"required,status"`
}

type ResponseForm struct {
	Content string `validate:"required,max=10000"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	enum := func(valid func(string) bool) validator.Func {
		return func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		}
	}
	must(v.RegisterValidation("category", enum(func(s string) bool { return models.Category(s).Valid() })))
	must(v.RegisterValidation("priority", enum(func(s string) bool { return models.Priority(s).Valid() })))
	must(v.RegisterValidation("status", enum(func(s string) bool { return models.Status(s).Valid() })))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// validationMessage turns validator errors into one line for the form.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "category":
			msgs = append(msgs, "category must be one of "+joinValues(models.Categories))
		case "priority":
			msgs = append(msgs, "priority must be one of "+joinValues(models.Priorities))
		case "status":
			msgs = append(msgs, "status must be one of "+joinValues(models.Statuses))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
