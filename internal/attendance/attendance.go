package attendance

import (
	"time"

	attendanceDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/attendance"
	employeeDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/employee"
)

const (
	WorkModeWFH = attendanceDatamodel.WorkModeWFH
	WorkModeWFO = attendanceDatamodel.WorkModeWFO
)

// Observable states per (employee, calendar-date) key.
const (
	StateAbsent     = "absent"
	StateCheckedIn  = "checked_in"
	StateCheckedOut = "checked_out"
)

type Attendance struct {
	ID         int64            `json:"id"`
	EmployeeID int64            `json:"employee_id"`
	Date       time.Time        `json:"date"`
	CheckIn    *time.Time       `json:"check_in"`
	CheckOut   *time.Time       `json:"check_out"`
	WorkMode   string           `json:"work_mode"`
	PhotoURL   string           `json:"photo_url,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	Employee   *EmployeeSummary `json:"employee,omitempty"`
}

// EmployeeSummary is the slim employee projection embedded in attendance
// listings.
type EmployeeSummary struct {
	ID           int64  `json:"id"`
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Department   string `json:"department,omitempty"`
	Position     string `json:"position,omitempty"`
}

// State derives the record's position in the check-in/check-out machine.
func (a *Attendance) State() string {
	if a == nil {
		return StateAbsent
	}
	if a.CheckOut != nil {
		return StateCheckedOut
	}
	return StateCheckedIn
}

// NormalizeDate truncates a timestamp to midnight in server-local time.
// Every operation keys the day through this one function so two actions
// on the same wall-clock day always resolve to the same record.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func FromDataModel(a *attendanceDatamodel.Attendance) *Attendance {
	rec := &Attendance{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date,
		CheckIn:    a.CheckIn,
		CheckOut:   a.CheckOut,
		WorkMode:   a.WorkMode,
		PhotoURL:   a.PhotoURL,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if a.Employee.ID != 0 {
		rec.Employee = summaryFromDataModel(&a.Employee)
	}
	return rec
}

func FromDataModelSlice(records []*attendanceDatamodel.Attendance) []*Attendance {
	result := make([]*Attendance, len(records))
	for i, a := range records {
		result[i] = FromDataModel(a)
	}
	return result
}

func summaryFromDataModel(e *employeeDatamodel.Employee) *EmployeeSummary {
	return &EmployeeSummary{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		Name:         e.Name,
		Email:        e.Email,
		Department:   e.Department,
		Position:     e.Position,
	}
}
