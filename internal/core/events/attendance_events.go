package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAttendanceCheckedIn  = "attendance.checked_in"
	EventTypeAttendanceCheckedOut = "attendance.checked_out"
)

func NewAttendanceCheckedInEvent(attendanceID, employeeID int64, workMode string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventTypeAttendanceCheckedIn,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"attendance_id": attendanceID,
			"employee_id":   employeeID,
			"work_mode":     workMode,
		},
	}
}

func NewAttendanceCheckedOutEvent(attendanceID, employeeID int64) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventTypeAttendanceCheckedOut,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"attendance_id": attendanceID,
			"employee_id":   employeeID,
		},
	}
}

// RegisterAuditSubscribers attaches the audit-trail logging handlers to the
// bus. The audit log is the only consumer of attendance events right now.
func RegisterAuditSubscribers(bus *EventBus, logger *slog.Logger) {
	audit := func(ctx context.Context, event Event) error {
		logger.Info("attendance audit",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	bus.Subscribe(EventTypeAttendanceCheckedIn, audit)
	bus.Subscribe(EventTypeAttendanceCheckedOut, audit)
}
