package inspection

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/firedept-portal/internal"
	"github.com/frahmantamala/firedept-portal/internal/application"
	inspectionDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/inspection"
	"github.com/frahmantamala/firedept-portal/internal/user"
)

// RepositoryAPI defines the data access methods for inspections.
// Transaction runs fn with repositories bound to a single transaction.
type RepositoryAPI interface {
	Create(ctx context.Context, i *inspectionDatamodel.Inspection) error
	ListAll(ctx context.Context, opts application.ListOptions) ([]*View, error)
	Transaction(ctx context.Context, fn func(repo RepositoryAPI, apps application.RepositoryAPI) error) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Schedule books an inspection and moves the application to
// inspection_scheduled. Both writes commit together or not at all.
func (s *Service) Schedule(ctx context.Context, dto ScheduleInspectionDTO, requester *user.User) (*Inspection, error) {
	if !requester.IsAdmin() {
		s.logger.Warn("schedule inspection denied", "application_id", dto.ApplicationID)
		return nil, internal.ErrAccessDenied
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	date, err := time.Parse(internal.DateLayout, strings.TrimSpace(dto.Date))
	if err != nil {
		return nil, internal.ErrInvalidDate.WithCause(err)
	}

	now := time.Now()
	model := &inspectionDatamodel.Inspection{
		ApplicationID: dto.ApplicationID,
		Date:          date,
		Time:          strings.TrimSpace(dto.Time),
		InspectorName: strings.TrimSpace(dto.InspectorName),
		Status:        string(StatusScheduled),
		Remarks:       dto.Remarks,
		CreatedAt:     now,
	}

	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	err = s.repo.Transaction(ctx, func(repo RepositoryAPI, apps application.RepositoryAPI) error {
		if _, err := apps.GetByID(ctx, dto.ApplicationID); err != nil {
			return err
		}
		if err := repo.Create(ctx, model); err != nil {
			return err
		}
		return apps.UpdateStatus(ctx, dto.ApplicationID, application.StatusInspectionScheduled, now)
	})
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return nil, internal.ErrApplicationNotFound
		}
		s.logger.Error("failed to schedule inspection", "error", err, "application_id", dto.ApplicationID)
		return nil, internal.NewInternalError("failed to schedule inspection", err)
	}

	s.logger.Info("inspection scheduled",
		"inspection_id", model.ID,
		"application_id", model.ApplicationID,
		"date", dto.Date,
		"inspector", model.InspectorName,
		"admin_id", requester.ID)

	return FromDataModel(model), nil
}

// ListAll returns every inspection with its application, newest first.
func (s *Service) ListAll(ctx context.Context, requester *user.User, opts application.ListOptions) ([]*View, error) {
	if !requester.IsAdmin() {
		return nil, internal.ErrAccessDenied
	}

	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	views, err := s.repo.ListAll(ctx, opts)
	if err != nil {
		s.logger.Error("failed to list inspections", "error", err)
		return nil, internal.NewInternalError("failed to list inspections", err)
	}
	return views, nil
}
