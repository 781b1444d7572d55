package internal_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/firedept-portal/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestInternal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Internal Suite")
}

func validConfig() *internal.Config {
	return &internal.Config{
		Server: internal.ServerConfig{
			Port:              8080,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
		},
		Database: internal.DatabaseConfig{
			Driver:       internal.DriverSQLite,
			Source:       "fire_dept.db",
			MaxOpenConns: 4,
			MaxIdleConns: 2,
		},
		Security: internal.SecurityConfig{
			SessionSecret:   "0123456789abcdef0123456789abcdef",
			SessionDuration: time.Hour,
			BCryptCost:      10,
		},
		Observability: internal.ObservabilityConfig{
			Logging: internal.LoggingConfig{Level: "info", Format: "text"},
		},
	}
}

var _ = Describe("Config", func() {
	It("accepts a complete configuration", func() {
		Expect(validConfig().Validate()).To(Succeed())
	})

	It("rejects a short session secret", func() {
		cfg := validConfig()
		cfg.Security.SessionSecret = "short"

		err := cfg.Validate()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("session secret"))
	})

	It("rejects an unknown database driver", func() {
		cfg := validConfig()
		cfg.Database.Driver = "mysql"

		err := cfg.Validate()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("unsupported driver"))
	})

	It("enforces field tags", func() {
		cfg := validConfig()
		cfg.Database.MaxOpenConns = 0
		cfg.Database.MaxIdleConns = 0

		err := cfg.Validate()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Config.Database.MaxOpenConns"))
	})

	It("aggregates errors from several sections", func() {
		cfg := validConfig()
		cfg.Database.MaxIdleConns = 10
		cfg.Observability.Logging.Format = "xml"

		err := cfg.Validate()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("database config"))
		Expect(err.Error()).To(ContainSubstring("logging config"))
	})
})

var _ = Describe("AppError", func() {
	It("matches sentinels by code even when a cause is attached", func() {
		wrapped := internal.ErrApplicationNotFound.WithCause(errSample)
		Expect(wrapped).To(MatchError(internal.ErrApplicationNotFound))
		Expect(internal.ErrApplicationNotFound.Cause).To(BeNil())
	})

	It("does not match a different code", func() {
		Expect(internal.ErrAccessDenied).NotTo(MatchError(internal.ErrApplicationNotFound))
	})
})

var errSample = internal.NewInternalError("boom", nil)
