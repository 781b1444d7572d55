package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/frahmantamala/firedept-portal/internal/transport"
	"github.com/frahmantamala/firedept-portal/internal/user"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = ginkgo.Describe("Auth Handler", func() {
	var (
		handler *Handler
		service *Service
	)

	ginkgo.BeforeEach(func() {
		service = NewService(newMockAccountStore(), NewJWTTokenGenerator("handler-test-secret-at-least-32-chars", time.Hour), bcrypt.MinCost, silentLogger())
		handler = NewHandler(&transport.BaseHandler{Logger: silentLogger()}, service, true)

		_, err := service.Register(context.Background(), RegisterDTO{Username: "alice", Email: "alice@example.com", Password: "pw"})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
	})

	login := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice","password":"pw"}`))
		w := httptest.NewRecorder()
		handler.Login(w, req)
		return w
	}

	protected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := user.UserFromContext(r.Context())
		gomega.Expect(ok).To(gomega.BeTrue())
		w.Header().Set("X-User", u.Username)
		w.WriteHeader(http.StatusOK)
	})

	ginkgo.It("should register a user and return 201", func() {
		req := httptest.NewRequest(http.MethodPost, "/auth/register",
			strings.NewReader(`{"username":"bob","email":"bob@example.com","password":"pw"}`))
		w := httptest.NewRecorder()

		handler.Register(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusCreated))
		gomega.Expect(w.Body.String()).ToNot(gomega.ContainSubstring("password"))

		var body map[string]interface{}
		gomega.Expect(json.NewDecoder(w.Body).Decode(&body)).To(gomega.Succeed())
		gomega.Expect(body["role"]).To(gomega.Equal("applicant"))
	})

	ginkgo.It("should return 409 for a duplicate username", func() {
		req := httptest.NewRequest(http.MethodPost, "/auth/register",
			strings.NewReader(`{"username":"alice","email":"new@example.com","password":"pw"}`))
		w := httptest.NewRecorder()

		handler.Register(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusConflict))
		gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("DUPLICATE_USERNAME"))
	})

	ginkgo.It("should set an HttpOnly session cookie on login", func() {
		w := login()

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		cookies := w.Result().Cookies()
		gomega.Expect(cookies).To(gomega.HaveLen(1))
		gomega.Expect(cookies[0].Name).To(gomega.Equal(SessionCookieName))
		gomega.Expect(cookies[0].HttpOnly).To(gomega.BeTrue())
		gomega.Expect(cookies[0].Secure).To(gomega.BeTrue())
	})

	ginkgo.It("should return 401 for bad credentials", func() {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice","password":"nope"}`))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(w.Result().Cookies()).To(gomega.BeEmpty())
	})

	ginkgo.It("should accept the session cookie in the middleware", func() {
		cookie := login().Result().Cookies()[0]

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		handler.AuthMiddleware(protected).ServeHTTP(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(w.Header().Get("X-User")).To(gomega.Equal("alice"))
	})

	ginkgo.It("should accept a bearer token in the middleware", func() {
		var session Session
		gomega.Expect(json.NewDecoder(login().Body).Decode(&session)).To(gomega.Succeed())

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+session.Token)
		w := httptest.NewRecorder()
		handler.AuthMiddleware(protected).ServeHTTP(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
	})

	ginkgo.It("should reject requests without a session", func() {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		w := httptest.NewRecorder()
		handler.AuthMiddleware(protected).ServeHTTP(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("SESSION_NOT_FOUND"))
	})

	ginkgo.It("should expire the cookie on logout", func() {
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		w := httptest.NewRecorder()

		handler.Logout(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusNoContent))
		cookies := w.Result().Cookies()
		gomega.Expect(cookies).To(gomega.HaveLen(1))
		gomega.Expect(cookies[0].Value).To(gomega.BeEmpty())
		gomega.Expect(cookies[0].MaxAge).To(gomega.BeNumerically("<", 0))
	})
})
