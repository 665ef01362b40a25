package attendance

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/employee"
)

const (
	WorkModeWFH = "WFH"
	WorkModeWFO = "WFO"
)

// Attendance is one row per employee per calendar day. The composite
// unique index is the correctness backstop for concurrent check-ins; the
// service-level existence check is only a fast path.
type Attendance struct {
	ID         int64                      `gorm:"primaryKey"`
	EmployeeID int64                      `gorm:"column:employee_id;not null;uniqueIndex:idx_employee_date"`
	Date       time.Time                  `gorm:"column:date;not null;uniqueIndex:idx_employee_date"`
	CheckIn    *time.Time                 `gorm:"column:check_in"`
	CheckOut   *time.Time                 `gorm:"column:check_out"`
	WorkMode   string                     `gorm:"column:work_mode"`
	PhotoURL   string                     `gorm:"column:photo_url"`
	CreatedAt  time.Time                  `gorm:"column:created_at"`
	UpdatedAt  time.Time                  `gorm:"column:updated_at"`
	Employee   employeeDatamodel.Employee `gorm:"foreignKey:EmployeeID"`
}

func (Attendance) TableName() string {
	return "attendances"
}
