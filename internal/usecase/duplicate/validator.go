package duplicate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kailas-cloud/questionbank/internal/domain"
	domdup "github.com/kailas-cloud/questionbank/internal/domain/duplicate"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
)

// Validator rejects malformed queries before any store access.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the question enum rules registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	RegisterEnumValidations(v)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// RegisterEnumValidations adds the questiontype, language and category tags.
func RegisterEnumValidations(v *validator.Validate) {
	_ = v.RegisterValidation("questiontype", func(fl validator.FieldLevel) bool {
		return question.Type(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		return question.Language(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return question.Category(fl.Field().String()).IsValid()
	})
}

// Validate returns a *domain.ValidationError describing the first problem found.
func (v *Validator) Validate(q domdup.Query) error {
	if strings.TrimSpace(q.Title) == "" && strings.TrimSpace(q.Description) == "" {
		return domain.NewValidationError("Either title or description is required")
	}

	err := v.validate.Struct(q)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate query: %w", err)
	}
	return domain.NewValidationError(message(fieldErrs[0]))
}

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "type":
		if fe.Tag() == "required" {
			return "Question type is required"
		}
		return fmt.Sprintf("Invalid question type: %v", fe.Value())
	case "language":
		if fe.Tag() == "required" {
			return "Language is required"
		}
		return fmt.Sprintf("Invalid language: %v", fe.Value())
	case "category":
		return fmt.Sprintf("Invalid category: %v", fe.Value())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
