package employee

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/auth"
	employeeDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/employee"
)

// Repository is the employee slice of the store contract. Create and
// Update must surface a uniqueness violation on email/employee_code as
// internal.ErrDuplicateEmployee.
type Repository interface {
	Create(emp *employeeDatamodel.Employee) error
	GetByID(id int64) (*employeeDatamodel.Employee, error)
	GetAll() ([]*employeeDatamodel.Employee, error)
	Update(emp *employeeDatamodel.Employee) error
	Delete(id int64) error
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) Create(dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		// Hashing only fails on bad cost configuration.
		s.logger.Error("password hashing failed", "error", err)
		return nil, internal.NewInternalError("password hashing failed", err)
	}

	status := dto.Status
	if status == "" {
		status = StatusActive
	}

	now := time.Now()
	emp := &employeeDatamodel.Employee{
		EmployeeCode: dto.EmployeeCode,
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Phone:        dto.Phone,
		Department:   dto.Department,
		Position:     dto.Position,
		JoinDate:     dto.JoinDate,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(emp); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to create employee", "error", err)
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	s.logger.Info("employee created", "employee_id", emp.ID, "employee_code", emp.EmployeeCode)

	return FromDataModel(emp), nil
}

func (s *Service) GetByID(id int64) (*Employee, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("employee lookup failed", err)
	}
	if emp == nil {
		return nil, internal.ErrEmployeeNotFound
	}
	return FromDataModel(emp), nil
}

func (s *Service) GetAll() ([]*Employee, error) {
	employees, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("employee listing failed", "error", err)
		return nil, internal.NewInternalError("employee listing failed", err)
	}
	return FromDataModelSlice(employees), nil
}

func (s *Service) Update(id int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("employee lookup failed", err)
	}
	if emp == nil {
		return nil, internal.ErrEmployeeNotFound
	}

	if dto.Name != nil {
		emp.Name = *dto.Name
	}
	if dto.Email != nil {
		emp.Email = *dto.Email
	}
	if dto.Password != nil {
		hash, err := auth.HashPassword(*dto.Password, s.bcryptCost)
		if err != nil {
			s.logger.Error("password hashing failed", "error", err)
			return nil, internal.NewInternalError("password hashing failed", err)
		}
		emp.PasswordHash = hash
	}
	if dto.Phone != nil {
		emp.Phone = *dto.Phone
	}
	if dto.Department != nil {
		emp.Department = *dto.Department
	}
	if dto.Position != nil {
		emp.Position = *dto.Position
	}
	if dto.JoinDate != nil {
		emp.JoinDate = dto.JoinDate
	}
	if dto.Status != nil {
		emp.Status = *dto.Status
	}
	emp.UpdatedAt = time.Now()

	if err := s.repo.Update(emp); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, internal.NewInternalError("failed to update employee", err)
	}

	s.logger.Info("employee updated", "employee_id", id)

	return FromDataModel(emp), nil
}

func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return appErr
		}
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return internal.NewInternalError("failed to delete employee", err)
	}

	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}
