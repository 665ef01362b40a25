package attendance

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/transport"
	"github.com/frahmantamala/workforce-management/pkg/logger"
)

type ServiceAPI interface {
	CheckIn(employeeID int64, dto CheckInDTO) (*Attendance, error)
	CheckOut(employeeID int64, dto CheckOutDTO) (*Attendance, error)
	FindByEmployee(employeeID int64, q RangeQuery) ([]*Attendance, error)
	FindToday(employeeID int64) (*Attendance, error)
	FindAll(q AdminQuery) ([]*Attendance, error)
	Update(id int64, dto UpdateAttendanceDTO) (*Attendance, error)
	Delete(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// CheckIn handles POST /attendances/check-in. The employee scope is always
// the authenticated subject; clients cannot check in on behalf of others.
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrInvalidToken)
		return
	}

	var dto CheckInDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.CheckIn(principal.ID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "Check-in successful", rec)
}

// CheckOut handles POST /attendances/check-out.
func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrInvalidToken)
		return
	}

	var dto CheckOutDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.CheckOut(principal.ID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Check-out successful", rec)
}

// GetCurrent handles GET /attendances/current for the authenticated
// employee's own records.
func (h *Handler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrInvalidToken)
		return
	}

	q, err := rangeFromQuery(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.Service.FindByEmployee(principal.ID, q)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Attendances retrieved successfully", records)
}

// GetCurrentToday handles GET /attendances/current/today; data is null
// when the employee has not checked in yet.
func (h *Handler) GetCurrentToday(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrInvalidToken)
		return
	}

	rec, err := h.Service.FindToday(principal.ID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Today attendance retrieved successfully", rec)
}

// GetByEmployee handles GET /attendances/employee/{employeeID}; route is
// gated to privileged roles.
func (h *Handler) GetByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	q, err := rangeFromQuery(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.Service.FindByEmployee(employeeID, q)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Employee attendances retrieved successfully", records)
}

// GetAll handles GET /attendances/all; route is gated to privileged roles.
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	rq, err := rangeFromQuery(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := AdminQuery{RangeQuery: rq}
	if raw := r.URL.Query().Get("employeeId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid employeeId filter")
			return
		}
		q.EmployeeID = &id
	}

	records, err := h.Service.FindAll(q)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "All attendances retrieved successfully", records)
}

// Update handles PATCH /attendances/{id}; privileged correction.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid attendance id")
		return
	}

	var dto UpdateAttendanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.Update(id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Attendance updated successfully", rec)
}

// Delete handles DELETE /attendances/{id}; privileged.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid attendance id")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Attendance deleted successfully", nil)
}

// rangeFromQuery parses the optional inclusive startDate/endDate bounds in
// YYYY-MM-DD form.
func rangeFromQuery(r *http.Request) (RangeQuery, error) {
	var q RangeQuery

	if raw := r.URL.Query().Get("startDate"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return q, internal.NewValidationError("startDate must be YYYY-MM-DD", internal.ErrCodeValidationFailed)
		}
		q.StartDate = &t
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return q, internal.NewValidationError("endDate must be YYYY-MM-DD", internal.ErrCodeValidationFailed)
		}
		q.EndDate = &t
	}

	return q, nil
}
