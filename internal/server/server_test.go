package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/frahmantamala/firedept-portal/internal"
	"github.com/frahmantamala/firedept-portal/internal/database"
	"github.com/frahmantamala/firedept-portal/internal/server"
	"github.com/frahmantamala/firedept-portal/internal/transport/swagger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestServer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Server Suite")
}

func testConfig() *internal.Config {
	return &internal.Config{
		Database: internal.DatabaseConfig{Driver: internal.DriverSQLite},
		Security: internal.SecurityConfig{
			SessionSecret:   "a-test-secret-that-is-long-enough-123",
			SessionDuration: time.Hour,
			BCryptCost:      bcrypt.MinCost,
		},
	}
}

var _ = Describe("Router", func() {
	var deps *server.Dependencies

	do := func(method, path, token string, body interface{}) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(raw)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		deps.Router.ServeHTTP(w, req)
		return w
	}

	login := func(username, role string) string {
		w := do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"username": username, "email": username + "@example.com", "password": "secret-pass", "role": role,
		})
		Expect(w.Code).To(Equal(http.StatusCreated), w.Body.String())

		w = do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": username, "password": "secret-pass",
		})
		Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())
		var session struct {
			Token string `json:"token"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&session)).To(Succeed())
		return session.Token
	}

	errorCode := func(w *httptest.ResponseRecorder) string {
		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		return body.Error.Code
	}

	BeforeEach(func() {
		db, err := database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() {
			sqlDB, _ := db.DB()
			_ = sqlDB.Close()
		})

		deps, err = server.NewDependencies(testConfig(), db, slog.New(slog.NewTextHandler(io.Discard, nil)))
		Expect(err).NotTo(HaveOccurred())
	})

	It("answers liveness and readiness probes", func() {
		w := do(http.MethodGet, "/api/v1/ping", "", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = do(http.MethodGet, "/api/v1/health", "", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var health struct {
			Status     string                     `json:"status"`
			Components map[string]json.RawMessage `json:"components"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&health)).To(Succeed())
		Expect(health.Status).To(Equal("healthy"))
		Expect(health.Components).To(HaveKey("sqlite"))
	})

	It("serves the OpenAPI document", func() {
		w := do(http.MethodGet, swagger.SpecPath, "", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("openapi: 3.0.3"))
	})

	It("tags responses with a trace id", func() {
		w := do(http.MethodGet, "/api/v1/ping", "", nil)
		Expect(w.Header().Get("X-Trace-ID")).NotTo(BeEmpty())
	})

	It("requires a session for application routes", func() {
		w := do(http.MethodGet, "/api/v1/applications", "", nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(errorCode(w)).To(Equal("SESSION_NOT_FOUND"))
	})

	It("keeps applicants out of the admin routes", func() {
		token := login("alice", "applicant")

		for _, path := range []string{"/api/v1/admin/applications", "/api/v1/admin/inspections", "/api/v1/admin/nocs", "/api/v1/admin/dashboard"} {
			w := do(http.MethodGet, path, token, nil)
			Expect(w.Code).To(Equal(http.StatusForbidden), path)
			Expect(errorCode(w)).To(Equal("ACCESS_DENIED"))
		}
	})

	It("lets only applicants submit applications", func() {
		token := login("chief", "admin")

		w := do(http.MethodPost, "/api/v1/applications", token, map[string]string{"type": "noc", "description": "d"})
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("serves the admin routes to admins", func() {
		token := login("chief", "admin")

		for _, path := range []string{"/api/v1/admin/applications?type=noc", "/api/v1/admin/inspections", "/api/v1/admin/nocs", "/api/v1/admin/dashboard"} {
			w := do(http.MethodGet, path, token, nil)
			Expect(w.Code).To(Equal(http.StatusOK), path)
		}
	})

	It("documents every API route", func() {
		Expect(swagger.Validate(context.Background())).To(Succeed())
		doc, err := swagger.Load()
		Expect(err).NotTo(HaveOccurred())

		var routes int
		err = chi.Walk(deps.Router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if !strings.HasPrefix(route, "/api/v1/") {
				return nil
			}
			routes++
			path := strings.TrimSuffix(strings.TrimPrefix(route, "/api/v1"), "/")
			item := doc.Paths.Find(path)
			Expect(item).NotTo(BeNil(), "%s %s is not documented", method, path)
			Expect(item.GetOperation(method)).NotTo(BeNil(), "%s %s is not documented", method, path)
			return nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(routes).To(Equal(16))
	})
})
