package auth

import (
	"log/slog"

	"github.com/frahmantamala/workforce-management/internal"
	employeeDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/employee"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*AuthenticatedUser, error)
	GetProfile(employeeID int64) (*Profile, error)
	ValidateAccessToken(tokenString string) (*internal.Principal, error)
}

// Repository is the credential-store contract the auth component consumes.
// Lookups return (nil, nil) when no row exists; "not found" is not an
// error at this layer.
type Repository interface {
	GetEmployeeByEmail(email string) (*employeeDatamodel.Employee, error)
	GetEmployeeByID(id int64) (*employeeDatamodel.Employee, error)
	GetRoleNames(employeeID int64) ([]string, error)
}

type Service struct {
	repo     Repository
	tokenGen TokenGenerator
	logger   *slog.Logger
}

func NewService(repo Repository, tokenGen TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		tokenGen: tokenGen,
		logger:   logger,
	}
}

// Authenticate validates credentials and issues a token embedding the
// employee's current role-name set. Unknown email and wrong password take
// the same exit so the responses are byte-identical.
func (s *Service) Authenticate(dto LoginDTO) (*AuthenticatedUser, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.repo.GetEmployeeByEmail(dto.Email)
	if err != nil {
		s.logger.Error("employee lookup failed", "error", err)
		return nil, internal.NewInternalError("employee lookup failed", err)
	}
	if emp == nil {
		return nil, internal.ErrInvalidCredentials
	}

	if err := VerifyPassword(emp.PasswordHash, dto.Password); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	roles, err := s.repo.GetRoleNames(emp.ID)
	if err != nil {
		s.logger.Error("role lookup failed", "error", err, "employee_id", emp.ID)
		return nil, internal.NewInternalError("role lookup failed", err)
	}

	token, err := s.tokenGen.GenerateToken(emp.ID, emp.Email, roles)
	if err != nil {
		s.logger.Error("token generation failed", "error", err, "employee_id", emp.ID)
		return nil, internal.NewInternalError("token generation failed", err)
	}

	s.logger.Info("login successful", "employee_id", emp.ID)

	return &AuthenticatedUser{
		ID:    emp.ID,
		Name:  emp.Name,
		Email: emp.Email,
		Roles: roles,
		Token: token,
	}, nil
}

// GetProfile re-reads both the employee record and the role set from the
// store, so profile views reflect grants made after the token was issued.
func (s *Service) GetProfile(employeeID int64) (*Profile, error) {
	emp, err := s.repo.GetEmployeeByID(employeeID)
	if err != nil {
		return nil, internal.NewInternalError("employee lookup failed", err)
	}
	if emp == nil {
		return nil, internal.ErrEmployeeNotFound
	}

	roles, err := s.repo.GetRoleNames(emp.ID)
	if err != nil {
		return nil, internal.NewInternalError("role lookup failed", err)
	}

	return &Profile{
		ID:           emp.ID,
		EmployeeCode: emp.EmployeeCode,
		Name:         emp.Name,
		Email:        emp.Email,
		Phone:        emp.Phone,
		Department:   emp.Department,
		Position:     emp.Position,
		JoinDate:     emp.JoinDate,
		Status:       emp.Status,
		Roles:        roles,
	}, nil
}

// ValidateAccessToken verifies the token and converts its claims into the
// request principal.
func (s *Service) ValidateAccessToken(tokenString string) (*internal.Principal, error) {
	claims, err := s.tokenGen.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	return &internal.Principal{
		ID:    claims.UserID,
		Email: claims.Email,
		Roles: claims.Roles,
	}, nil
}
