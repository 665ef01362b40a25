package employee

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/frahmantamala/workforce-management/internal"
)

var validate = validator.New()

type CreateEmployeeDTO struct {
	EmployeeCode string     `json:"employee_code" validate:"required"`
	Name         string     `json:"name" validate:"required"`
	Email        string     `json:"email" validate:"required,email"`
	Password     string     `json:"password" validate:"required,min=8"`
	Phone        string     `json:"phone"`
	Department   string     `json:"department"`
	Position     string     `json:"position"`
	JoinDate     *time.Time `json:"join_date"`
	Status       string     `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE ON_LEAVE"`
}

func (d CreateEmployeeDTO) Validate() error {
	return translateValidation(validate.Struct(d))
}

// UpdateEmployeeDTO carries partial updates; nil fields are untouched.
// Password changes go through here too and get re-hashed by the service.
type UpdateEmployeeDTO struct {
	Name       *string    `json:"name" validate:"omitempty,min=1"`
	Email      *string    `json:"email" validate:"omitempty,email"`
	Password   *string    `json:"password" validate:"omitempty,min=8"`
	Phone      *string    `json:"phone"`
	Department *string    `json:"department"`
	Position   *string    `json:"position"`
	JoinDate   *time.Time `json:"join_date"`
	Status     *string    `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE ON_LEAVE"`
}

func (d UpdateEmployeeDTO) Validate() error {
	return translateValidation(validate.Struct(d))
}

func translateValidation(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fields := make([]string, len(fieldErrs))
		for i, fe := range fieldErrs {
			fields[i] = strings.ToLower(fe.Field())
		}
		return internal.NewValidationError(
			"invalid fields: "+strings.Join(fields, ", "),
			internal.ErrCodeValidationFailed,
		)
	}
	return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
}
