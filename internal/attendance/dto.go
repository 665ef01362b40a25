package attendance

import (
	"time"

	"github.com/frahmantamala/workforce-management/internal"
)

// CheckInDTO starts an attendance day. A zero Date means "today"; whatever
// time-of-day component arrives is discarded by normalization.
type CheckInDTO struct {
	Date     time.Time `json:"date"`
	WorkMode string    `json:"work_mode"`
	PhotoURL string    `json:"photo_url"`
}

func (d CheckInDTO) Validate() error {
	if d.WorkMode != WorkModeWFH && d.WorkMode != WorkModeWFO {
		return internal.NewValidationError("work_mode must be WFH or WFO", internal.ErrCodeValidationFailed)
	}
	return nil
}

type CheckOutDTO struct {
	Date     time.Time `json:"date"`
	PhotoURL string    `json:"photo_url"`
}

// UpdateAttendanceDTO is the privileged correction payload; nil fields are
// left untouched.
type UpdateAttendanceDTO struct {
	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`
	WorkMode *string    `json:"work_mode"`
	PhotoURL *string    `json:"photo_url"`
}

func (d UpdateAttendanceDTO) Validate() error {
	if d.WorkMode != nil && *d.WorkMode != WorkModeWFH && *d.WorkMode != WorkModeWFO {
		return internal.NewValidationError("work_mode must be WFH or WFO", internal.ErrCodeValidationFailed)
	}
	return nil
}

// RangeQuery carries the optional inclusive date bounds of a listing.
type RangeQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// AdminQuery extends RangeQuery with the optional employee filter for the
// privileged listing.
type AdminQuery struct {
	RangeQuery
	EmployeeID *int64
}
