package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/workforce-management/internal"
)

// Role names are static reference data, provisioned by the seeder.
// Authorization tests membership only; no role implies another.
const (
	RoleSuperAdmin = "SUPERADMIN"
	RoleAdmin      = "ADMIN"
	RoleHR         = "HR"
	RoleEmployee   = "EMPLOYEE"
)

// PrivilegedRoles may target arbitrary employees and manage attendance
// records.
var PrivilegedRoles = []string{RoleSuperAdmin, RoleAdmin, RoleHR}

// Claims embeds the principal's role set at issuance time. The set is not
// re-read from the store per request; role changes take effect on next
// login.
type Claims struct {
	UserID int64    `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// AuthenticatedUser is what a successful login returns.
type AuthenticatedUser struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	Token string   `json:"token"`
}

// Profile is the live projection served by /auth/me; roles come from the
// store, not from the token, so recent grants are visible.
type Profile struct {
	ID           int64      `json:"id"`
	EmployeeCode string     `json:"employee_code"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	Department   string     `json:"department,omitempty"`
	Position     string     `json:"position,omitempty"`
	JoinDate     *time.Time `json:"join_date,omitempty"`
	Status       string     `json:"status"`
	Roles        []string   `json:"roles"`
}

type TokenGenerator interface {
	GenerateToken(userID int64, email string, roles []string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: ttl,
	}
}

// GenerateToken creates a signed, self-contained HS256 token.
func (j *JWTTokenGenerator) GenerateToken(userID int64, email string, roles []string) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(userID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// ValidateToken checks signature and expiry. Every failure mode, whether
// malformed, forged or expired, yields the same error so the caller learns
// nothing about why the token was rejected.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal.ErrInvalidToken
		}
		return j.Secret, nil
	})
	if err != nil {
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}

	return claims, nil
}

// HashPassword creates a bcrypt hash with an embedded random salt; the
// same password never hashes to the same string twice.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword is constant-time with respect to the candidate password;
// it returns an error on mismatch and never panics.
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
