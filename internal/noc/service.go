package noc

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/frahmantamala/firedept-portal/internal"
	"github.com/frahmantamala/firedept-portal/internal/application"
	nocDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/noc"
	"github.com/frahmantamala/firedept-portal/internal/user"
)

// RepositoryAPI defines the data access methods for certificates.
// Transaction runs fn with repositories bound to a single transaction.
type RepositoryAPI interface {
	Create(ctx context.Context, n *nocDatamodel.NOC) error
	Count(ctx context.Context) (int64, error)
	ExistsForApplication(ctx context.Context, applicationID int64) (bool, error)
	ListAll(ctx context.Context, opts application.ListOptions) ([]*View, error)
	Transaction(ctx context.Context, fn func(repo RepositoryAPI, apps application.RepositoryAPI) error) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger

	// serializes count-then-insert within this process; the unique index
	// on noc_number covers other processes
	issueMu sync.Mutex
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Issue creates the certificate for an application and approves it in the
// same transaction.
func (s *Service) Issue(ctx context.Context, dto IssueNOCDTO, requester *user.User) (*NOC, error) {
	if !requester.IsAdmin() {
		s.logger.Warn("issue noc denied", "application_id", dto.ApplicationID)
		return nil, internal.ErrAccessDenied
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var expiry *time.Time
	if dto.ExpiryDate != nil && strings.TrimSpace(*dto.ExpiryDate) != "" {
		parsed, err := time.Parse(internal.DateLayout, strings.TrimSpace(*dto.ExpiryDate))
		if err != nil {
			return nil, internal.ErrInvalidDate.WithCause(err)
		}
		expiry = &parsed
	}

	s.issueMu.Lock()
	defer s.issueMu.Unlock()

	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	now := time.Now()
	model := &nocDatamodel.NOC{
		ApplicationID: dto.ApplicationID,
		IssueDate:     truncateToDate(now),
		ExpiryDate:    expiry,
		Status:        string(StatusIssued),
		Remarks:       dto.Remarks,
	}

	err := s.repo.Transaction(ctx, func(repo RepositoryAPI, apps application.RepositoryAPI) error {
		if _, err := apps.GetByID(ctx, dto.ApplicationID); err != nil {
			return err
		}

		issued, err := repo.ExistsForApplication(ctx, dto.ApplicationID)
		if err != nil {
			return err
		}
		if issued {
			return internal.ErrNOCAlreadyIssued
		}

		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		model.NOCNumber = FormatNumber(now.Year(), count+1)

		if err := repo.Create(ctx, model); err != nil {
			return err
		}
		return apps.UpdateStatus(ctx, dto.ApplicationID, application.StatusApproved, now)
	})
	if err != nil {
		return nil, s.mapIssueError(ctx, dto.ApplicationID, err)
	}

	s.logger.Info("noc issued",
		"noc_id", model.ID,
		"noc_number", model.NOCNumber,
		"application_id", model.ApplicationID,
		"admin_id", requester.ID)

	return FromDataModel(model), nil
}

func (s *Service) mapIssueError(ctx context.Context, applicationID int64, err error) error {
	switch {
	case errors.Is(err, application.ErrNotFound):
		return internal.ErrApplicationNotFound
	case errors.Is(err, internal.ErrNOCAlreadyIssued):
		return internal.ErrNOCAlreadyIssued
	case errors.Is(err, ErrDuplicateNumber):
		// the transaction is gone; tell a concurrent issuance for the same
		// application apart from a numbering collision
		if issued, exErr := s.repo.ExistsForApplication(ctx, applicationID); exErr == nil && issued {
			return internal.ErrNOCAlreadyIssued
		}
		s.logger.Warn("certificate number collision", "application_id", applicationID)
		return internal.ErrDuplicateCertificateNumber
	default:
		s.logger.Error("failed to issue noc", "error", err, "application_id", applicationID)
		return internal.NewInternalError("failed to issue noc", err)
	}
}

// ListAll returns every certificate with its application, most recently
// issued first.
func (s *Service) ListAll(ctx context.Context, requester *user.User, opts application.ListOptions) ([]*View, error) {
	if !requester.IsAdmin() {
		return nil, internal.ErrAccessDenied
	}

	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	views, err := s.repo.ListAll(ctx, opts)
	if err != nil {
		s.logger.Error("failed to list nocs", "error", err)
		return nil, internal.NewInternalError("failed to list nocs", err)
	}
	return views, nil
}
