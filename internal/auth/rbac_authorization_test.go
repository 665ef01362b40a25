package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/workforce-management/internal"
)

var _ = ginkgo.Describe("RBACAuthorization", func() {
	var (
		rbac    *RBACAuthorization
		next    http.Handler
		reached bool
	)

	ginkgo.BeforeEach(func() {
		rbac = NewRBACAuthorization(slog.New(slog.NewTextHandler(io.Discard, nil)))
		reached = false
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		})
	})

	requestWithPrincipal := func(p *internal.Principal) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/attendances/all", nil)
		if p != nil {
			req = req.WithContext(internal.ContextWithPrincipal(req.Context(), p))
		}
		return req
	}

	ginkgo.Describe("RequirePrivileged", func() {
		ginkgo.It("should pass an HR principal through", func() {
			// Given
			req := requestWithPrincipal(&internal.Principal{ID: 1, Roles: []string{RoleHR}})
			rec := httptest.NewRecorder()

			// When
			rbac.RequirePrivileged()(next).ServeHTTP(rec, req)

			// Then
			gomega.Expect(reached).To(gomega.BeTrue())
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should pass a principal holding any one privileged role", func() {
			// Given
			req := requestWithPrincipal(&internal.Principal{ID: 2, Roles: []string{RoleEmployee, RoleAdmin}})
			rec := httptest.NewRecorder()

			// When
			rbac.RequirePrivileged()(next).ServeHTTP(rec, req)

			// Then
			gomega.Expect(reached).To(gomega.BeTrue())
		})

		ginkgo.It("should reject an EMPLOYEE-only principal with 403", func() {
			// Given
			req := requestWithPrincipal(&internal.Principal{ID: 3, Roles: []string{RoleEmployee}})
			rec := httptest.NewRecorder()

			// When
			rbac.RequirePrivileged()(next).ServeHTTP(rec, req)

			// Then
			gomega.Expect(reached).To(gomega.BeFalse())
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(gomega.Succeed())
			gomega.Expect(resp.Success).To(gomega.BeFalse())
			gomega.Expect(resp.Message).To(gomega.Equal("Insufficient role for this operation"))
		})

		ginkgo.It("should reject a principal with no roles", func() {
			// Given
			req := requestWithPrincipal(&internal.Principal{ID: 4})
			rec := httptest.NewRecorder()

			// When
			rbac.RequirePrivileged()(next).ServeHTTP(rec, req)

			// Then
			gomega.Expect(reached).To(gomega.BeFalse())
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should answer 401 when no principal is on the context", func() {
			// Given
			req := requestWithPrincipal(nil)
			rec := httptest.NewRecorder()

			// When
			rbac.RequirePrivileged()(next).ServeHTTP(rec, req)

			// Then
			gomega.Expect(reached).To(gomega.BeFalse())
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Describe("RequireRoles", func() {
		ginkgo.It("should match on exact role names only", func() {
			// Given
			req := requestWithPrincipal(&internal.Principal{ID: 5, Roles: []string{"hr"}})
			rec := httptest.NewRecorder()

			// When
			rbac.RequireRoles(RoleHR)(next).ServeHTTP(rec, req)

			// Then
			gomega.Expect(reached).To(gomega.BeFalse())
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})
	})
})
