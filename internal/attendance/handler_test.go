package attendance_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/attendance"
	attendancePostgres "github.com/frahmantamala/workforce-management/internal/attendance/postgres"
	attendanceDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/attendance"
	employeeDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/employee"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

var _ = Describe("Attendance Handler Integration", func() {
	var (
		db      *gorm.DB
		service *attendance.Service
		handler *attendance.Handler
		router  *chi.Mux
	)

	asEmployee := func(id int64, roles ...string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := internal.ContextWithPrincipal(r.Context(), &internal.Principal{
					ID:    id,
					Email: "employee@company.com",
					Roles: roles,
				})
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		}
	}

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	parse := func(rec *httptest.ResponseRecorder) envelope {
		var env envelope
		Expect(json.Unmarshal(rec.Body.Bytes(), &env)).To(Succeed())
		return env
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			TranslateError: true,
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&employeeDatamodel.Employee{}, &attendanceDatamodel.Attendance{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&employeeDatamodel.Employee{
			ID:           1,
			EmployeeCode: "REG001",
			Name:         "Regular Employee",
			Email:        "employee@company.com",
			PasswordHash: "x",
			Status:       employeeDatamodel.StatusActive,
		}).Error).NotTo(HaveOccurred())

		repo := attendancePostgres.NewAttendanceRepository(db)
		service = attendance.NewService(repo, nil, slogger)
		handler = attendance.NewHandler(service)

		router = chi.NewRouter()
		router.Group(func(r chi.Router) {
			r.Use(asEmployee(1, "EMPLOYEE"))
			r.Post("/attendances/check-in", handler.CheckIn)
			r.Post("/attendances/check-out", handler.CheckOut)
			r.Get("/attendances/current", handler.GetCurrent)
			r.Get("/attendances/current/today", handler.GetCurrentToday)
		})
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).NotTo(HaveOccurred())
	})

	Describe("a working day", func() {
		It("should walk the full check-in and check-out flow", func() {
			// today starts empty
			rec := do(http.MethodGet, "/attendances/current/today", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(string(parse(rec).Data)).To(Equal("null"))

			// check in
			rec = do(http.MethodPost, "/attendances/check-in", map[string]string{"work_mode": "WFO"})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			env := parse(rec)
			Expect(env.Success).To(BeTrue())
			Expect(env.Message).To(Equal("Check-in successful"))

			// a second check-in is refused
			rec = do(http.MethodPost, "/attendances/check-in", map[string]string{"work_mode": "WFO"})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			env = parse(rec)
			Expect(env.Success).To(BeFalse())
			Expect(env.Message).To(Equal("Already checked in today"))

			// check out
			rec = do(http.MethodPost, "/attendances/check-out", map[string]string{})
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(parse(rec).Message).To(Equal("Check-out successful"))

			// a second check-out is refused
			rec = do(http.MethodPost, "/attendances/check-out", map[string]string{})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(parse(rec).Message).To(Equal("Already checked out today"))

			// and the day still cannot be restarted
			rec = do(http.MethodPost, "/attendances/check-in", map[string]string{"work_mode": "WFH"})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(parse(rec).Message).To(Equal("Already checked in today"))

			// history shows exactly one record for today
			rec = do(http.MethodGet, "/attendances/current", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var records []attendance.Attendance
			Expect(json.Unmarshal(parse(rec).Data, &records)).To(Succeed())
			Expect(records).To(HaveLen(1))
			Expect(records[0].CheckIn).NotTo(BeNil())
			Expect(records[0].CheckOut).NotTo(BeNil())
		})

		It("should refuse check-out before any check-in", func() {
			rec := do(http.MethodPost, "/attendances/check-out", map[string]string{})

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			env := parse(rec)
			Expect(env.Success).To(BeFalse())
			Expect(env.Message).To(Equal("No check-in record found for today"))
		})

		It("should refuse an invalid work mode", func() {
			rec := do(http.MethodPost, "/attendances/check-in", map[string]string{"work_mode": "OFFICE"})

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(parse(rec).Message).To(ContainSubstring("work_mode"))
		})

		It("should reject a malformed startDate filter", func() {
			rec := do(http.MethodGet, "/attendances/current?startDate=16-03-2026", nil)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(parse(rec).Message).To(ContainSubstring("startDate"))
		})
	})
})
