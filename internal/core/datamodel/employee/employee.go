package employee

import "time"

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusOnLeave  = "ON_LEAVE"
)

type Employee struct {
	ID           int64      `gorm:"primaryKey"`
	EmployeeCode string     `gorm:"column:employee_code;uniqueIndex;not null"`
	Name         string     `gorm:"column:name;not null"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Phone        string     `gorm:"column:phone"`
	Department   string     `gorm:"column:department"`
	Position     string     `gorm:"column:position"`
	JoinDate     *time.Time `gorm:"column:join_date"`
	Status       string     `gorm:"column:status;default:ACTIVE"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

type Role struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Role) TableName() string {
	return "roles"
}

// EmployeeRole joins employees to roles; one row per pair.
type EmployeeRole struct {
	ID         int64     `gorm:"primaryKey"`
	EmployeeID int64     `gorm:"column:employee_id;not null;uniqueIndex:idx_employee_role"`
	RoleID     int64     `gorm:"column:role_id;not null;uniqueIndex:idx_employee_role"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (EmployeeRole) TableName() string {
	return "employee_roles"
}
