package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/workforce-management/internal/auth"
	employeeDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/employee"
)

// AuthRepository implements the auth.Repository contract using GORM.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.Repository {
	return &AuthRepository{db: db}
}

// GetEmployeeByEmail returns (nil, nil) when no employee has that email.
func (r *AuthRepository) GetEmployeeByEmail(email string) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.Where("email = ?", email).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *AuthRepository) GetEmployeeByID(id int64) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.Where("id = ?", id).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

// GetRoleNames returns the role-name set held by the employee; an employee
// with no grants gets an empty set, not an error.
func (r *AuthRepository) GetRoleNames(employeeID int64) ([]string, error) {
	var names []string
	err := r.db.Model(&employeeDatamodel.Role{}).
		Joins("JOIN employee_roles ON employee_roles.role_id = roles.id").
		Where("employee_roles.employee_id = ?", employeeID).
		Order("roles.name").
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
