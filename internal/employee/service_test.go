package employee

import (
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/auth"
	employeeDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/employee"
)

func TestEmployee(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Employee Module Suite")
}

// Mock Repository keeping employees in memory with unique email and code.
type mockEmployeeRepository struct {
	employees map[int64]*employeeDatamodel.Employee
	nextID    int64
}

func newMockEmployeeRepository() *mockEmployeeRepository {
	return &mockEmployeeRepository{
		employees: make(map[int64]*employeeDatamodel.Employee),
		nextID:    1,
	}
}

func (m *mockEmployeeRepository) hasConflict(emp *employeeDatamodel.Employee) bool {
	for _, existing := range m.employees {
		if existing.ID == emp.ID {
			continue
		}
		if existing.Email == emp.Email || existing.EmployeeCode == emp.EmployeeCode {
			return true
		}
	}
	return false
}

func (m *mockEmployeeRepository) Create(emp *employeeDatamodel.Employee) error {
	if m.hasConflict(emp) {
		return internal.ErrDuplicateEmployee
	}
	emp.ID = m.nextID
	m.nextID++
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockEmployeeRepository) GetByID(id int64) (*employeeDatamodel.Employee, error) {
	return m.employees[id], nil
}

func (m *mockEmployeeRepository) GetAll() ([]*employeeDatamodel.Employee, error) {
	out := make([]*employeeDatamodel.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (m *mockEmployeeRepository) Update(emp *employeeDatamodel.Employee) error {
	if m.hasConflict(emp) {
		return internal.ErrDuplicateEmployee
	}
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockEmployeeRepository) Delete(id int64) error {
	if _, exists := m.employees[id]; !exists {
		return internal.ErrEmployeeNotFound
	}
	delete(m.employees, id)
	return nil
}

var _ = ginkgo.Describe("EmployeeService", func() {
	var (
		service  *Service
		mockRepo *mockEmployeeRepository
	)

	validCreate := func() CreateEmployeeDTO {
		return CreateEmployeeDTO{
			EmployeeCode: "ENG042",
			Name:         "New Engineer",
			Email:        "engineer@company.com",
			Password:     "password123",
			Department:   "Engineering",
		}
	}

	ginkgo.BeforeEach(func() {
		mockRepo = newMockEmployeeRepository()
		service = NewService(mockRepo, bcrypt.MinCost, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should store a bcrypt hash, never the raw password", func() {
			// When
			emp, err := service.Create(validCreate())

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			stored := mockRepo.employees[emp.ID]
			gomega.Expect(stored.PasswordHash).ToNot(gomega.Equal("password123"))
			gomega.Expect(auth.VerifyPassword(stored.PasswordHash, "password123")).To(gomega.Succeed())
		})

		ginkgo.It("should default status to ACTIVE", func() {
			// When
			emp, err := service.Create(validCreate())

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(emp.Status).To(gomega.Equal(StatusActive))
		})

		ginkgo.It("should reject a duplicate email or code with a conflict", func() {
			// Given
			_, err := service.Create(validCreate())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			emp, err := service.Create(validCreate())

			// Then
			gomega.Expect(err).To(gomega.Equal(internal.ErrDuplicateEmployee))
			gomega.Expect(emp).To(gomega.BeNil())
		})

		ginkgo.It("should reject a short password", func() {
			// Given
			dto := validCreate()
			dto.Password = "short"

			// When
			emp, err := service.Create(dto)

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("password"))
			gomega.Expect(emp).To(gomega.BeNil())
		})

		ginkgo.It("should reject a malformed email", func() {
			// Given
			dto := validCreate()
			dto.Email = "not-an-email"

			// When
			emp, err := service.Create(dto)

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("email"))
			gomega.Expect(emp).To(gomega.BeNil())
		})

		ginkgo.It("should reject an unknown status", func() {
			// Given
			dto := validCreate()
			dto.Status = "RETIRED"

			// When
			emp, err := service.Create(dto)

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(emp).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("should apply only the submitted fields", func() {
			// Given
			created, err := service.Create(validCreate())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			newName := "Renamed Engineer"

			// When
			updated, err := service.Update(created.ID, UpdateEmployeeDTO{Name: &newName})

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Name).To(gomega.Equal("Renamed Engineer"))
			gomega.Expect(updated.Email).To(gomega.Equal("engineer@company.com"))
		})

		ginkgo.It("should re-hash a submitted password", func() {
			// Given
			created, err := service.Create(validCreate())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			newPassword := "newpassword456"

			// When
			_, err = service.Update(created.ID, UpdateEmployeeDTO{Password: &newPassword})

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			stored := mockRepo.employees[created.ID]
			gomega.Expect(auth.VerifyPassword(stored.PasswordHash, "newpassword456")).To(gomega.Succeed())
		})

		ginkgo.It("should return not found for an unknown employee", func() {
			// When
			updated, err := service.Update(999, UpdateEmployeeDTO{})

			// Then
			gomega.Expect(err).To(gomega.Equal(internal.ErrEmployeeNotFound))
			gomega.Expect(updated).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("GetByID", func() {
		ginkgo.It("should return not found for an unknown employee", func() {
			// When
			emp, err := service.GetByID(999)

			// Then
			gomega.Expect(err).To(gomega.Equal(internal.ErrEmployeeNotFound))
			gomega.Expect(emp).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should remove an existing employee", func() {
			// Given
			created, err := service.Create(validCreate())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			err = service.Delete(created.ID)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = service.GetByID(created.ID)
			gomega.Expect(err).To(gomega.Equal(internal.ErrEmployeeNotFound))
		})

		ginkgo.It("should return not found for an unknown employee", func() {
			// When
			err := service.Delete(999)

			// Then
			gomega.Expect(err).To(gomega.Equal(internal.ErrEmployeeNotFound))
		})
	})
})
