package inspection_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/frahmantamala/firedept-portal/internal"
	"github.com/frahmantamala/firedept-portal/internal/application"
	applicationPostgres "github.com/frahmantamala/firedept-portal/internal/application/postgres"
	inspectionDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/inspection"
	"github.com/frahmantamala/firedept-portal/internal/database"
	"github.com/frahmantamala/firedept-portal/internal/inspection"
	inspectionPostgres "github.com/frahmantamala/firedept-portal/internal/inspection/postgres"
	"github.com/frahmantamala/firedept-portal/internal/user"
	userPostgres "github.com/frahmantamala/firedept-portal/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestInspection(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Inspection Suite")
}

// failingStatusRepo runs the real transaction but fails the application
// status update, to prove the inspection insert is rolled back.
type failingStatusRepo struct {
	*inspectionPostgres.InspectionRepository
}

type failingApps struct {
	application.RepositoryAPI
}

func (failingApps) UpdateStatus(ctx context.Context, id int64, status application.Status, updatedAt time.Time) error {
	return errors.New("disk full")
}

func (r failingStatusRepo) Transaction(ctx context.Context, fn func(inspection.RepositoryAPI, application.RepositoryAPI) error) error {
	return r.InspectionRepository.Transaction(ctx, func(repo inspection.RepositoryAPI, apps application.RepositoryAPI) error {
		return fn(repo, failingApps{apps})
	})
}

var _ = Describe("Inspection Service", func() {
	var (
		ctx      context.Context
		db       *gorm.DB
		apps     *application.Service
		service  *inspection.Service
		repo     *inspectionPostgres.InspectionRepository
		lg       *slog.Logger
		admin    *user.User
		alice    *user.User
		bakery   *application.Application
		validDTO inspection.ScheduleInspectionDTO
	)

	countInspections := func() int64 {
		var n int64
		Expect(db.Model(&inspectionDatamodel.Inspection{}).Count(&n).Error).To(Succeed())
		return n
	}

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		lg = slog.New(slog.NewTextHandler(io.Discard, nil))

		db, err = database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() {
			sqlDB, _ := db.DB()
			_ = sqlDB.Close()
		})

		users := user.NewService(userPostgres.NewUserRepository(db), lg)
		alice = &user.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h", Role: user.RoleApplicant}
		admin = &user.User{Username: "chief", Email: "chief@example.com", PasswordHash: "h", Role: user.RoleAdmin}
		Expect(users.Create(ctx, alice)).To(Succeed())
		Expect(users.Create(ctx, admin)).To(Succeed())

		apps = application.NewService(applicationPostgres.NewApplicationRepository(db), lg)
		bakery, err = apps.Submit(ctx, alice, application.SubmitApplicationDTO{
			Type: application.TypeInspection, Description: "oven check", BusinessName: "Alice Bakery",
		})
		Expect(err).NotTo(HaveOccurred())

		repo = inspectionPostgres.NewInspectionRepository(db)
		service = inspection.NewService(repo, lg)

		validDTO = inspection.ScheduleInspectionDTO{
			ApplicationID: bakery.ID,
			Date:          "2025-03-10",
			Time:          "10:30",
			InspectorName: "Ravi Kumar",
		}
	})

	Describe("Schedule", func() {
		It("creates a scheduled inspection and updates the application", func() {
			insp, err := service.Schedule(ctx, validDTO, admin)
			Expect(err).NotTo(HaveOccurred())

			Expect(insp.ID).To(BeNumerically(">", 0))
			Expect(insp.Status).To(Equal(inspection.StatusScheduled))
			Expect(insp.Date).To(Equal("2025-03-10"))
			Expect(insp.Time).To(Equal("10:30"))

			detail, err := apps.Get(ctx, bakery.ID, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Status).To(Equal(application.StatusInspectionScheduled))
			Expect(detail.UpdatedAt).To(BeTemporally(">=", bakery.UpdatedAt))
			Expect(detail.Inspections).To(HaveLen(1))
			Expect(detail.Inspections[0].InspectorName).To(Equal("Ravi Kumar"))
		})

		It("allows several inspections for one application", func() {
			_, err := service.Schedule(ctx, validDTO, admin)
			Expect(err).NotTo(HaveOccurred())
			validDTO.Date = "2025-04-01"
			_, err = service.Schedule(ctx, validDTO, admin)
			Expect(err).NotTo(HaveOccurred())

			Expect(countInspections()).To(Equal(int64(2)))
		})

		It("fails with not found and creates no row for an unknown application", func() {
			validDTO.ApplicationID = bakery.ID + 100

			_, err := service.Schedule(ctx, validDTO, admin)
			Expect(err).To(MatchError(internal.ErrApplicationNotFound))
			Expect(countInspections()).To(BeZero())
		})

		It("rejects malformed dates", func() {
			for _, bad := range []string{"10/03/2025", "2025-13-01", "2025-02-30", "tomorrow"} {
				validDTO.Date = bad
				_, err := service.Schedule(ctx, validDTO, admin)
				Expect(err).To(MatchError(internal.ErrInvalidDate), bad)
			}
			Expect(countInspections()).To(BeZero())
		})

		It("denies applicants", func() {
			_, err := service.Schedule(ctx, validDTO, alice)
			Expect(err).To(MatchError(internal.ErrAccessDenied))
			Expect(countInspections()).To(BeZero())
		})

		It("rolls back the inspection when the status update fails", func() {
			service = inspection.NewService(failingStatusRepo{repo}, lg)

			_, err := service.Schedule(ctx, validDTO, admin)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInternal))

			Expect(countInspections()).To(BeZero())
			detail, err := apps.Get(ctx, bakery.ID, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Status).To(Equal(application.StatusPending))
		})
	})

	Describe("ListAll", func() {
		It("joins the application and lists newest first", func() {
			_, err := service.Schedule(ctx, validDTO, admin)
			Expect(err).NotTo(HaveOccurred())
			validDTO.InspectorName = "Meera"
			_, err = service.Schedule(ctx, validDTO, admin)
			Expect(err).NotTo(HaveOccurred())

			views, err := service.ListAll(ctx, admin, application.ListOptions{})
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(2))
			Expect(views[0].InspectorName).To(Equal("Meera"))
			Expect(views[0].BusinessName).To(Equal("Alice Bakery"))
			Expect(views[0].ApplicationType).To(Equal(application.TypeInspection))
			Expect(views[0].ApplicationStatus).To(Equal(string(application.StatusInspectionScheduled)))
			Expect(views[0].Date).To(Equal("2025-03-10"))
		})

		It("denies applicants", func() {
			_, err := service.ListAll(ctx, alice, application.ListOptions{})
			Expect(err).To(MatchError(internal.ErrAccessDenied))
		})
	})
})
