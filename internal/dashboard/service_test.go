package dashboard_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frahmantamala/firedept-portal/internal"
	"github.com/frahmantamala/firedept-portal/internal/application"
	applicationPostgres "github.com/frahmantamala/firedept-portal/internal/application/postgres"
	"github.com/frahmantamala/firedept-portal/internal/dashboard"
	dashboardPostgres "github.com/frahmantamala/firedept-portal/internal/dashboard/postgres"
	"github.com/frahmantamala/firedept-portal/internal/database"
	"github.com/frahmantamala/firedept-portal/internal/inspection"
	inspectionPostgres "github.com/frahmantamala/firedept-portal/internal/inspection/postgres"
	"github.com/frahmantamala/firedept-portal/internal/noc"
	nocPostgres "github.com/frahmantamala/firedept-portal/internal/noc/postgres"
	"github.com/frahmantamala/firedept-portal/internal/transport"
	"github.com/frahmantamala/firedept-portal/internal/user"
	userPostgres "github.com/frahmantamala/firedept-portal/internal/user/postgres"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDashboard(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dashboard Suite")
}

var _ = Describe("Dashboard", func() {
	var (
		ctx     context.Context
		service *dashboard.Service
		handler *dashboard.Handler
		admin   *user.User
		alice   *user.User
	)

	BeforeEach(func() {
		ctx = context.Background()
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))

		db, err := database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(sqlDB.Close)

		users := user.NewService(userPostgres.NewUserRepository(db), lg)
		alice = &user.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h", Role: user.RoleApplicant}
		admin = &user.User{Username: "chief", Email: "chief@example.com", PasswordHash: "h", Role: user.RoleAdmin}
		Expect(users.Create(ctx, alice)).To(Succeed())
		Expect(users.Create(ctx, admin)).To(Succeed())

		apps := application.NewService(applicationPostgres.NewApplicationRepository(db), lg)
		inspections := inspection.NewService(inspectionPostgres.NewInspectionRepository(db), lg)
		nocs := noc.NewService(nocPostgres.NewNOCRepository(db), lg)

		var ids []int64
		for _, name := range []string{"a", "b", "c"} {
			app, err := apps.Submit(ctx, alice, application.SubmitApplicationDTO{Type: "noc", Description: "d", BusinessName: name})
			Expect(err).NotTo(HaveOccurred())
			ids = append(ids, app.ID)
		}

		_, err = inspections.Schedule(ctx, inspection.ScheduleInspectionDTO{
			ApplicationID: ids[0], Date: "2025-03-10", Time: "09:00", InspectorName: "Ravi",
		}, admin)
		Expect(err).NotTo(HaveOccurred())
		_, err = nocs.Issue(ctx, noc.IssueNOCDTO{ApplicationID: ids[1]}, admin)
		Expect(err).NotTo(HaveOccurred())

		sx := sqlx.NewDb(sqlDB, database.SQLDriverName(internal.DriverSQLite))
		service = dashboard.NewService(dashboardPostgres.NewDashboardRepository(sx), lg)
		handler = dashboard.NewHandler(&transport.BaseHandler{Logger: lg}, service)
	})

	It("counts applications by status", func() {
		summary, err := service.Summary(ctx, admin)
		Expect(err).NotTo(HaveOccurred())

		Expect(summary.TotalApplications).To(Equal(int64(3)))
		Expect(summary.ApplicationsByStatus).To(Equal(map[string]int64{
			"pending":              1,
			"inspection_scheduled": 1,
			"approved":             1,
			"rejected":             0,
		}))
		Expect(summary.TotalInspections).To(Equal(int64(1)))
		Expect(summary.ScheduledInspections).To(Equal(int64(1)))
		Expect(summary.NOCsIssued).To(Equal(int64(1)))
	})

	It("is admin only", func() {
		_, err := service.Summary(ctx, alice)
		Expect(err).To(MatchError(internal.ErrAccessDenied))
	})

	It("serves the summary as JSON", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		req = req.WithContext(user.ContextWithUser(req.Context(), admin))
		w := httptest.NewRecorder()

		handler.GetSummary(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body["total_applications"]).To(BeNumerically("==", 3))
	})
})
