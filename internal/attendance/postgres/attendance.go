package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/attendance"
)

// AttendanceRepository implements the attendance.Repository interface using
// GORM. The gorm.DB must be opened with TranslateError so driver-level
// unique violations surface as gorm.ErrDuplicatedKey.
type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.Repository {
	return &AttendanceRepository{db: db}
}

// Create inserts the day's record. A unique violation on
// (employee_id, date) means a concurrent request won the day; it is
// reported as the same state-transition failure the fast path returns.
func (r *AttendanceRepository) Create(rec *attendanceDatamodel.Attendance) error {
	err := r.db.Omit("Employee").Create(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrAlreadyCheckedIn
		}
		return err
	}
	return nil
}

func (r *AttendanceRepository) GetByEmployeeAndDate(employeeID int64, date time.Time) (*attendanceDatamodel.Attendance, error) {
	var rec attendanceDatamodel.Attendance
	err := r.db.Preload("Employee").
		Where("employee_id = ? AND date = ?", employeeID, date).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *AttendanceRepository) GetByID(id int64) (*attendanceDatamodel.Attendance, error) {
	var rec attendanceDatamodel.Attendance
	err := r.db.Preload("Employee").Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *AttendanceRepository) Update(rec *attendanceDatamodel.Attendance) error {
	rec.UpdatedAt = time.Now()
	return r.db.Omit("Employee").Save(rec).Error
}

func (r *AttendanceRepository) Delete(id int64) error {
	res := r.db.Delete(&attendanceDatamodel.Attendance{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrAttendanceNotFound
	}
	return nil
}

func (r *AttendanceRepository) ListByEmployee(employeeID int64, q attendance.RangeQuery) ([]*attendanceDatamodel.Attendance, error) {
	var records []*attendanceDatamodel.Attendance

	tx := r.db.Preload("Employee").Where("employee_id = ?", employeeID)
	tx = applyRange(tx, q)

	err := tx.Order("date DESC").Find(&records).Error
	return records, err
}

// ListAll joins employees so the listing can tiebreak on employee name.
func (r *AttendanceRepository) ListAll(q attendance.AdminQuery) ([]*attendanceDatamodel.Attendance, error) {
	var records []*attendanceDatamodel.Attendance

	tx := r.db.Preload("Employee").
		Joins("JOIN employees ON employees.id = attendances.employee_id")
	if q.EmployeeID != nil {
		tx = tx.Where("attendances.employee_id = ?", *q.EmployeeID)
	}
	tx = applyRange(tx, q.RangeQuery)

	err := tx.Order("attendances.date DESC, employees.name ASC").Find(&records).Error
	return records, err
}

// applyRange adds the inclusive date bounds when supplied.
func applyRange(tx *gorm.DB, q attendance.RangeQuery) *gorm.DB {
	if q.StartDate != nil {
		tx = tx.Where("attendances.date >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		tx = tx.Where("attendances.date <= ?", *q.EndDate)
	}
	return tx
}
