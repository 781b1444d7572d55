package postgres_test

import (
	"context"
	"testing"

	userDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/user"
	"github.com/frahmantamala/firedept-portal/internal/database"
	"github.com/frahmantamala/firedept-portal/internal/user"
	userPostgres "github.com/frahmantamala/firedept-portal/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

var _ = Describe("User Repository", func() {
	var (
		ctx  context.Context
		db   *gorm.DB
		repo user.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())

		repo = userPostgres.NewUserRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	newUser := func(username, email string) *userDatamodel.User {
		return &userDatamodel.User{
			Username:     username,
			Email:        email,
			PasswordHash: "hash",
			Role:         "applicant",
		}
	}

	Describe("Create", func() {
		It("should assign an id and creation time", func() {
			u := newUser("alice", "alice@example.com")

			Expect(repo.Create(ctx, u)).To(Succeed())
			Expect(u.ID).To(BeNumerically(">", 0))
			Expect(u.CreatedAt.IsZero()).To(BeFalse())
		})

		It("should reject a duplicate username", func() {
			Expect(repo.Create(ctx, newUser("alice", "alice@example.com"))).To(Succeed())

			err := repo.Create(ctx, newUser("alice", "other@example.com"))
			Expect(err).To(MatchError(user.ErrDuplicate))
		})

		It("should reject a duplicate email", func() {
			Expect(repo.Create(ctx, newUser("alice", "alice@example.com"))).To(Succeed())

			err := repo.Create(ctx, newUser("bob", "alice@example.com"))
			Expect(err).To(MatchError(user.ErrDuplicate))
		})
	})

	Describe("lookups", func() {
		var created *userDatamodel.User

		BeforeEach(func() {
			created = newUser("alice", "alice@example.com")
			Expect(repo.Create(ctx, created)).To(Succeed())
		})

		It("should find a user by id", func() {
			found, err := repo.GetByID(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Username).To(Equal("alice"))
		})

		It("should find a user by username", func() {
			found, err := repo.GetByUsername(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(created.ID))
		})

		It("should return ErrNotFound for unknown users", func() {
			_, err := repo.GetByID(ctx, created.ID+100)
			Expect(err).To(MatchError(user.ErrNotFound))

			_, err = repo.GetByUsername(ctx, "nobody")
			Expect(err).To(MatchError(user.ErrNotFound))
		})

		It("should report taken usernames and emails", func() {
			taken, err := repo.ExistsByUsername(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeTrue())

			taken, err = repo.ExistsByEmail(ctx, "bob@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeFalse())
		})
	})
})
