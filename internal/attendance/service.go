package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/workforce-management/internal"
	attendanceDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/attendance"
	"github.com/frahmantamala/workforce-management/internal/core/events"
)

// Repository is the attendance slice of the store contract. Point lookups
// return (nil, nil) when no row exists. Create must surface a storage
// uniqueness violation as internal.ErrAlreadyCheckedIn so concurrent
// check-ins racing past the existence check still collapse to one record.
type Repository interface {
	Create(rec *attendanceDatamodel.Attendance) error
	GetByEmployeeAndDate(employeeID int64, date time.Time) (*attendanceDatamodel.Attendance, error)
	GetByID(id int64) (*attendanceDatamodel.Attendance, error)
	Update(rec *attendanceDatamodel.Attendance) error
	Delete(id int64) error
	ListByEmployee(employeeID int64, q RangeQuery) ([]*attendanceDatamodel.Attendance, error)
	ListAll(q AdminQuery) ([]*attendanceDatamodel.Attendance, error)
}

type Service struct {
	repo   Repository
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// CheckIn creates the day's record. A second same-day call fails instead
// of upserting; check-out is a separate transition.
func (s *Service) CheckIn(employeeID int64, dto CheckInDTO) (*Attendance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	day := s.dayKey(dto.Date)

	// Fast path; the unique index on (employee_id, date) is what actually
	// guarantees at most one record under concurrent requests.
	existing, err := s.repo.GetByEmployeeAndDate(employeeID, day)
	if err != nil {
		s.logger.Error("attendance lookup failed", "error", err, "employee_id", employeeID)
		return nil, internal.NewInternalError("attendance lookup failed", err)
	}
	if existing != nil {
		return nil, internal.ErrAlreadyCheckedIn
	}

	now := time.Now()
	rec := &attendanceDatamodel.Attendance{
		EmployeeID: employeeID,
		Date:       day,
		CheckIn:    &now,
		WorkMode:   dto.WorkMode,
		PhotoURL:   dto.PhotoURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(rec); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			// Lost the race to a concurrent check-in.
			return nil, appErr
		}
		s.logger.Error("failed to create attendance", "error", err, "employee_id", employeeID)
		return nil, internal.NewInternalError("failed to create attendance", err)
	}

	s.logger.Info("check-in recorded",
		"attendance_id", rec.ID,
		"employee_id", employeeID,
		"date", day.Format("2006-01-02"),
		"work_mode", dto.WorkMode)

	s.publish(events.NewAttendanceCheckedInEvent(rec.ID, employeeID, dto.WorkMode))

	return FromDataModel(rec), nil
}

// CheckOut transitions the day's record from checked-in to checked-out.
func (s *Service) CheckOut(employeeID int64, dto CheckOutDTO) (*Attendance, error) {
	day := s.dayKey(dto.Date)

	rec, err := s.repo.GetByEmployeeAndDate(employeeID, day)
	if err != nil {
		s.logger.Error("attendance lookup failed", "error", err, "employee_id", employeeID)
		return nil, internal.NewInternalError("attendance lookup failed", err)
	}
	if rec == nil {
		return nil, internal.ErrNoCheckInRecord
	}
	if rec.CheckOut != nil {
		return nil, internal.ErrAlreadyCheckedOut
	}

	now := time.Now()
	rec.CheckOut = &now
	if dto.PhotoURL != "" {
		rec.PhotoURL = dto.PhotoURL
	}
	rec.UpdatedAt = now

	if err := s.repo.Update(rec); err != nil {
		s.logger.Error("failed to update attendance", "error", err, "attendance_id", rec.ID)
		return nil, internal.NewInternalError("failed to update attendance", err)
	}

	s.logger.Info("check-out recorded",
		"attendance_id", rec.ID,
		"employee_id", employeeID,
		"date", day.Format("2006-01-02"))

	s.publish(events.NewAttendanceCheckedOutEvent(rec.ID, employeeID))

	return FromDataModel(rec), nil
}

// FindByEmployee lists an employee's records, newest day first.
func (s *Service) FindByEmployee(employeeID int64, q RangeQuery) ([]*Attendance, error) {
	records, err := s.repo.ListByEmployee(employeeID, normalizeRange(q))
	if err != nil {
		s.logger.Error("attendance listing failed", "error", err, "employee_id", employeeID)
		return nil, internal.NewInternalError("attendance listing failed", err)
	}
	return FromDataModelSlice(records), nil
}

// FindToday returns today's record, or nil when the employee has not
// checked in; absence is not an error.
func (s *Service) FindToday(employeeID int64) (*Attendance, error) {
	rec, err := s.repo.GetByEmployeeAndDate(employeeID, NormalizeDate(time.Now()))
	if err != nil {
		s.logger.Error("attendance lookup failed", "error", err, "employee_id", employeeID)
		return nil, internal.NewInternalError("attendance lookup failed", err)
	}
	if rec == nil {
		return nil, nil
	}
	return FromDataModel(rec), nil
}

// FindAll is the privileged listing across all employees, date descending
// with employee name ascending as the tiebreak.
func (s *Service) FindAll(q AdminQuery) ([]*Attendance, error) {
	q.RangeQuery = normalizeRange(q.RangeQuery)
	records, err := s.repo.ListAll(q)
	if err != nil {
		s.logger.Error("attendance listing failed", "error", err)
		return nil, internal.NewInternalError("attendance listing failed", err)
	}
	return FromDataModelSlice(records), nil
}

// Update is the privileged correction path. It deliberately does not
// re-check the daily-uniqueness invariant; moving a record onto an
// occupied day is an administrative override.
func (s *Service) Update(id int64, dto UpdateAttendanceDTO) (*Attendance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("attendance lookup failed", err)
	}
	if rec == nil {
		return nil, internal.ErrAttendanceNotFound
	}

	if dto.CheckIn != nil {
		rec.CheckIn = dto.CheckIn
	}
	if dto.CheckOut != nil {
		rec.CheckOut = dto.CheckOut
	}
	if dto.WorkMode != nil {
		rec.WorkMode = *dto.WorkMode
	}
	if dto.PhotoURL != nil {
		rec.PhotoURL = *dto.PhotoURL
	}
	rec.UpdatedAt = time.Now()

	if err := s.repo.Update(rec); err != nil {
		s.logger.Error("failed to update attendance", "error", err, "attendance_id", id)
		return nil, internal.NewInternalError("failed to update attendance", err)
	}

	s.logger.Info("attendance corrected", "attendance_id", id)

	return FromDataModel(rec), nil
}

func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return appErr
		}
		s.logger.Error("failed to delete attendance", "error", err, "attendance_id", id)
		return internal.NewInternalError("failed to delete attendance", err)
	}

	s.logger.Info("attendance deleted", "attendance_id", id)
	return nil
}

func (s *Service) dayKey(submitted time.Time) time.Time {
	if submitted.IsZero() {
		return NormalizeDate(time.Now())
	}
	return NormalizeDate(submitted)
}

func (s *Service) publish(event events.BaseEvent) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(context.Background(), event)
}

func normalizeRange(q RangeQuery) RangeQuery {
	if q.StartDate != nil {
		d := NormalizeDate(*q.StartDate)
		q.StartDate = &d
	}
	if q.EndDate != nil {
		d := NormalizeDate(*q.EndDate)
		q.EndDate = &d
	}
	return q
}
