package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/workforce-management/internal"
	employeeDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/employee"
)

// EmployeeRepository persists employees through GORM. The *gorm.DB it
// wraps must be opened with TranslateError so unique violations surface
// as gorm.ErrDuplicatedKey on every supported driver.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(emp *employeeDatamodel.Employee) error {
	if err := r.db.Create(emp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrDuplicateEmployee
		}
		return err
	}
	return nil
}

func (r *EmployeeRepository) GetByID(id int64) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.First(&emp, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetAll() ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	if err := r.db.Order("name ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *EmployeeRepository) Update(emp *employeeDatamodel.Employee) error {
	if err := r.db.Save(emp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrDuplicateEmployee
		}
		return err
	}
	return nil
}

func (r *EmployeeRepository) Delete(id int64) error {
	res := r.db.Delete(&employeeDatamodel.Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrEmployeeNotFound
	}
	return nil
}
