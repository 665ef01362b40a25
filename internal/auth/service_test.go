package auth

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/workforce-management/internal"
	employeeDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/employee"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock Repository for testing
type mockAuthRepository struct {
	employeesByEmail map[string]*employeeDatamodel.Employee
	employeesByID    map[int64]*employeeDatamodel.Employee
	rolesByID        map[int64][]string
	returnError      bool
	errorToReturn    error
}

func newMockAuthRepository() *mockAuthRepository {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	hr := &employeeDatamodel.Employee{
		ID:           1,
		EmployeeCode: "HR001",
		Name:         "HR Manager",
		Email:        "hr@company.com",
		PasswordHash: string(hash),
		Status:       employeeDatamodel.StatusActive,
	}
	regular := &employeeDatamodel.Employee{
		ID:           2,
		EmployeeCode: "REG001",
		Name:         "Regular Employee",
		Email:        "employee@company.com",
		PasswordHash: string(hash),
		Status:       employeeDatamodel.StatusActive,
	}

	return &mockAuthRepository{
		employeesByEmail: map[string]*employeeDatamodel.Employee{
			hr.Email:      hr,
			regular.Email: regular,
		},
		employeesByID: map[int64]*employeeDatamodel.Employee{
			hr.ID:      hr,
			regular.ID: regular,
		},
		rolesByID: map[int64][]string{
			hr.ID:      {RoleHR},
			regular.ID: {RoleEmployee},
		},
	}
}

func (m *mockAuthRepository) GetEmployeeByEmail(email string) (*employeeDatamodel.Employee, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.employeesByEmail[email], nil
}

func (m *mockAuthRepository) GetEmployeeByID(id int64) (*employeeDatamodel.Employee, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.employeesByID[id], nil
}

func (m *mockAuthRepository) GetRoleNames(employeeID int64) ([]string, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.rolesByID[employeeID], nil
}

func (m *mockAuthRepository) setError(err error) {
	m.returnError = true
	m.errorToReturn = err
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockAuthRepository
		tokenGen *JWTTokenGenerator
		secret   = "test-secret-at-least-thirty-two-chars"
		ttl      = 8 * time.Hour
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockAuthRepository()
		tokenGen = NewJWTTokenGenerator(secret, ttl)
		service = NewService(mockRepo, tokenGen, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return the authenticated user with a token", func() {
				// Given
				dto := LoginDTO{
					Email:    "hr@company.com",
					Password: "correct_password",
				}

				// When
				user, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(user.ID).To(gomega.Equal(int64(1)))
				gomega.Expect(user.Name).To(gomega.Equal("HR Manager"))
				gomega.Expect(user.Roles).To(gomega.Equal([]string{RoleHR}))
				gomega.Expect(user.Token).ToNot(gomega.BeEmpty())
			})

			ginkgo.It("should embed the current role set in the token", func() {
				// Given
				dto := LoginDTO{
					Email:    "hr@company.com",
					Password: "correct_password",
				}

				// When
				user, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := tokenGen.ValidateToken(user.Token)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal(int64(1)))
				gomega.Expect(claims.Email).To(gomega.Equal("hr@company.com"))
				gomega.Expect(claims.Roles).To(gomega.Equal([]string{RoleHR}))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should return the same error for an unknown email as for a wrong password", func() {
				// Given
				unknownEmail := LoginDTO{
					Email:    "nonexistent@company.com",
					Password: "correct_password",
				}
				wrongPassword := LoginDTO{
					Email:    "hr@company.com",
					Password: "wrong_password",
				}

				// When
				_, errUnknown := service.Authenticate(unknownEmail)
				_, errWrong := service.Authenticate(wrongPassword)

				// Then
				gomega.Expect(errUnknown).To(gomega.Equal(internal.ErrInvalidCredentials))
				gomega.Expect(errWrong).To(gomega.Equal(internal.ErrInvalidCredentials))
				gomega.Expect(errUnknown.Error()).To(gomega.Equal(errWrong.Error()))
			})

			ginkgo.It("should not return a user on failure", func() {
				// Given
				dto := LoginDTO{
					Email:    "hr@company.com",
					Password: "wrong_password",
				}

				// When
				user, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(user).To(gomega.BeNil())
			})
		})

		ginkgo.Context("when input validation fails", func() {
			ginkgo.It("should return validation error for empty email", func() {
				// Given
				dto := LoginDTO{
					Email:    "",
					Password: "password",
				}

				// When
				user, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("email is required"))
				gomega.Expect(user).To(gomega.BeNil())
			})

			ginkgo.It("should return validation error for empty password", func() {
				// Given
				dto := LoginDTO{
					Email:    "hr@company.com",
					Password: "",
				}

				// When
				user, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("password is required"))
				gomega.Expect(user).To(gomega.BeNil())
			})
		})

		ginkgo.Context("when the store fails", func() {
			ginkgo.It("should return an internal error, not invalid credentials", func() {
				// Given
				mockRepo.setError(errors.New("connection refused"))
				dto := LoginDTO{
					Email:    "hr@company.com",
					Password: "correct_password",
				}

				// When
				user, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err).ToNot(gomega.Equal(internal.ErrInvalidCredentials))
				gomega.Expect(user).To(gomega.BeNil())
			})
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("should round-trip a freshly issued token into a principal", func() {
			// Given
			token, err := tokenGen.GenerateToken(2, "employee@company.com", []string{RoleEmployee})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			principal, err := service.ValidateAccessToken(token)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(principal.ID).To(gomega.Equal(int64(2)))
			gomega.Expect(principal.Email).To(gomega.Equal("employee@company.com"))
			gomega.Expect(principal.Roles).To(gomega.Equal([]string{RoleEmployee}))
		})

		ginkgo.It("should reject a token signed with a different secret", func() {
			// Given
			otherGen := NewJWTTokenGenerator("another-secret-also-thirty-two-chars!", ttl)
			token, err := otherGen.GenerateToken(2, "employee@company.com", []string{RoleEmployee})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			principal, err := service.ValidateAccessToken(token)

			// Then
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
			gomega.Expect(principal).To(gomega.BeNil())
		})

		ginkgo.It("should reject a tampered token", func() {
			// Given
			token, err := tokenGen.GenerateToken(2, "employee@company.com", []string{RoleEmployee})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			tampered := token[:len(token)-2] + "xx"

			// When
			principal, err := service.ValidateAccessToken(tampered)

			// Then
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
			gomega.Expect(principal).To(gomega.BeNil())
		})

		ginkgo.It("should reject an expired token with the same error as a forged one", func() {
			// Given
			expiredGen := &JWTTokenGenerator{Secret: []byte(secret), TokenTTL: -time.Hour}
			token, err := expiredGen.GenerateToken(2, "employee@company.com", []string{RoleEmployee})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			principal, err := service.ValidateAccessToken(token)

			// Then
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
			gomega.Expect(principal).To(gomega.BeNil())
		})

		ginkgo.It("should reject garbage input", func() {
			// When
			principal, err := service.ValidateAccessToken("not-a-jwt")

			// Then
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
			gomega.Expect(principal).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("GetProfile", func() {
		ginkgo.It("should read roles from the store, not the token", func() {
			// Given
			mockRepo.rolesByID[2] = []string{RoleEmployee, RoleHR}

			// When
			profile, err := service.GetProfile(2)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(profile.EmployeeCode).To(gomega.Equal("REG001"))
			gomega.Expect(profile.Roles).To(gomega.Equal([]string{RoleEmployee, RoleHR}))
		})

		ginkgo.It("should return not found for an unknown employee", func() {
			// When
			profile, err := service.GetProfile(999)

			// Then
			gomega.Expect(err).To(gomega.Equal(internal.ErrEmployeeNotFound))
			gomega.Expect(profile).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("Password hashing", func() {
		ginkgo.It("should verify a password against its own hash", func() {
			// When
			hash, err := HashPassword("password123", bcrypt.MinCost)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(VerifyPassword(hash, "password123")).To(gomega.Succeed())
			gomega.Expect(VerifyPassword(hash, "password124")).ToNot(gomega.Succeed())
		})

		ginkgo.It("should produce a different hash for the same password", func() {
			// When
			first, err1 := HashPassword("password123", bcrypt.MinCost)
			second, err2 := HashPassword("password123", bcrypt.MinCost)

			// Then
			gomega.Expect(err1).ToNot(gomega.HaveOccurred())
			gomega.Expect(err2).ToNot(gomega.HaveOccurred())
			gomega.Expect(first).ToNot(gomega.Equal(second))
		})
	})
})
