package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "taskpad/internal/errors"
)

// RegisterUserInput carries a registration request. Attributes holds any
// extra payload fields and is stored verbatim, so it is never validated.
type RegisterUserInput struct {
	Email      string                 `json:"email" validate:"required"`
	Attributes map[string]interface{} `json:"-"`
}

// CreateTaskInput carries a task creation request. Nil optional fields take
// the documented defaults.
type CreateTaskInput struct {
	Title       string  `json:"title" validate:"required"`
	UserID      string  `json:"userId" validate:"required"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Order       *int64  `json:"order"`
}

// UpdateTaskInput carries a partial task update. Only non-nil fields are
// written; everything else keeps its stored value.
type UpdateTaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Order       *int64  `json:"order"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json field names, not Go struct field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// checkRequired runs struct validation and converts failures into a
// ValidationError naming every missing field.
func checkRequired(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return apperrors.NewValidationError(fields...)
}

// ValidateRegisterUser checks a registration request. Pure: no persistence
// access, no side effects.
func ValidateRegisterUser(in RegisterUserInput) error {
	return checkRequired(in)
}

// ValidateCreateTask checks a task creation request.
func ValidateCreateTask(in CreateTaskInput) error {
	return checkRequired(in)
}

// ValidateListTasks checks the listing query.
func ValidateListTasks(userID string) error {
	if userID == "" {
		return apperrors.NewValidationError("userId")
	}
	return nil
}
