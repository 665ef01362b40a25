package employee

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/employee"
)

const (
	StatusActive   = employeeDatamodel.StatusActive
	StatusInactive = employeeDatamodel.StatusInactive
	StatusOnLeave  = employeeDatamodel.StatusOnLeave
)

type Employee struct {
	ID           int64      `json:"id"`
	EmployeeCode string     `json:"employee_code"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Phone        string     `json:"phone,omitempty"`
	Department   string     `json:"department,omitempty"`
	Position     string     `json:"position,omitempty"`
	JoinDate     *time.Time `json:"join_date,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		Name:         e.Name,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		Phone:        e.Phone,
		Department:   e.Department,
		Position:     e.Position,
		JoinDate:     e.JoinDate,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		Name:         e.Name,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		Phone:        e.Phone,
		Department:   e.Department,
		Position:     e.Position,
		JoinDate:     e.JoinDate,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func FromDataModelSlice(employees []*employeeDatamodel.Employee) []*Employee {
	result := make([]*Employee, len(employees))
	for i, e := range employees {
		result[i] = FromDataModel(e)
	}
	return result
}
