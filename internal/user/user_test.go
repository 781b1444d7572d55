package user_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frahmantamala/firedept-portal/internal"
	"github.com/frahmantamala/firedept-portal/internal/database"
	"github.com/frahmantamala/firedept-portal/internal/transport"
	"github.com/frahmantamala/firedept-portal/internal/user"
	userPostgres "github.com/frahmantamala/firedept-portal/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

var _ = Describe("Role", func() {
	DescribeTable("ParseRole",
		func(raw string, expected user.Role) {
			role, err := user.ParseRole(raw)
			Expect(err).NotTo(HaveOccurred())
			Expect(role).To(Equal(expected))
		},
		Entry("empty defaults to applicant", "", user.RoleApplicant),
		Entry("applicant", "applicant", user.RoleApplicant),
		Entry("admin with spacing and case", "  Admin ", user.RoleAdmin),
	)

	It("rejects unknown roles", func() {
		_, err := user.ParseRole("inspector")
		Expect(err).To(MatchError(internal.ErrInvalidRole))
	})

	It("denies unknown roles every privilege", func() {
		u := &user.User{ID: 1, Role: user.Role("root")}
		Expect(u.IsAdmin()).To(BeFalse())
		Expect(u.IsApplicant()).To(BeFalse())
		Expect(u.CanView(2)).To(BeFalse())
		Expect(u.CanView(1)).To(BeTrue())
	})

	It("lets admins view any record", func() {
		admin := &user.User{ID: 1, Role: user.RoleAdmin}
		Expect(admin.CanView(42)).To(BeTrue())
	})
})

var _ = Describe("User Handler", func() {
	var (
		service *user.Service
		handler *user.Handler
		alice   *user.User
	)

	BeforeEach(func() {
		db, err := database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() {
			sqlDB, _ := db.DB()
			_ = sqlDB.Close()
		})

		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = user.NewService(userPostgres.NewUserRepository(db), lg)
		handler = user.NewHandler(&transport.BaseHandler{Logger: lg}, service)

		alice = &user.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash", Role: user.RoleApplicant}
		Expect(service.Create(context.Background(), alice)).To(Succeed())
	})

	It("returns the current user without the password hash", func() {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req = req.WithContext(user.ContextWithUser(req.Context(), alice))
		w := httptest.NewRecorder()

		handler.GetCurrentUser(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).NotTo(ContainSubstring("hash"))

		var got user.User
		Expect(json.NewDecoder(w.Body).Decode(&got)).To(Succeed())
		Expect(got.ID).To(Equal(alice.ID))
		Expect(got.Role).To(Equal(user.RoleApplicant))
	})

	It("returns 401 without a session user", func() {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		w := httptest.NewRecorder()

		handler.GetCurrentUser(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})
