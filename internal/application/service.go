package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/firedept-portal/internal"
	applicationDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/application"
	"github.com/frahmantamala/firedept-portal/internal/user"
)

// RepositoryAPI defines the data access methods for applications
type RepositoryAPI interface {
	Create(ctx context.Context, a *applicationDatamodel.Application) error
	GetByID(ctx context.Context, id int64) (*applicationDatamodel.Application, error)
	ListByApplicant(ctx context.Context, applicantID int64, opts ListOptions) ([]*applicationDatamodel.Application, error)
	ListAll(ctx context.Context, opts ListOptions) ([]*applicationDatamodel.Application, error)
	ListByTypes(ctx context.Context, types []string, opts ListOptions) ([]*applicationDatamodel.Application, error)
	UpdateStatus(ctx context.Context, id int64, status Status, updatedAt time.Time) error
	FindInspectionsByApplication(ctx context.Context, applicationID int64) ([]InspectionSummary, error)
	FindNOCByApplication(ctx context.Context, applicationID int64) (*NOCSummary, error)
}

// Service handles the application workflow
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

// Submit opens a new application owned by applicant. Only applicants may submit.
func (s *Service) Submit(ctx context.Context, applicant *user.User, dto SubmitApplicationDTO) (*Application, error) {
	if !applicant.IsApplicant() {
		s.logger.Warn("submit denied: requester is not an applicant", "user_id", userID(applicant))
		return nil, internal.ErrAccessDenied
	}

	dto.Type = strings.TrimSpace(dto.Type)
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	app := &Application{
		ApplicantID:     applicant.ID,
		Type:            dto.Type,
		Description:     dto.Description,
		BusinessName:    dto.BusinessName,
		BusinessAddress: dto.BusinessAddress,
		ContactPhone:    dto.ContactPhone,
		ImageFilename:   dto.ImageFilename,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	model := ToDataModel(app)
	if err := s.repo.Create(ctx, model); err != nil {
		s.logger.Error("failed to create application", "error", err, "user_id", applicant.ID)
		return nil, internal.NewInternalError("failed to create application", err)
	}
	app.ID = model.ID

	s.logger.Info("application submitted",
		"application_id", app.ID,
		"user_id", applicant.ID,
		"type", app.Type)

	return app, nil
}

// Get returns an application with its inspections and NOC. Owners and
// admins may read it.
func (s *Service) Get(ctx context.Context, id int64, requester *user.User) (*Detail, error) {
	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("get application", id, err)
	}

	if !requester.CanView(model.ApplicantID) {
		s.logger.Warn("unauthorized access to application",
			"application_id", id,
			"user_id", userID(requester),
			"owner_id", model.ApplicantID)
		return nil, internal.ErrAccessDenied
	}

	inspections, err := s.repo.FindInspectionsByApplication(ctx, id)
	if err != nil {
		return nil, s.mapError("load inspections", id, err)
	}

	noc, err := s.repo.FindNOCByApplication(ctx, id)
	if err != nil {
		return nil, s.mapError("load noc", id, err)
	}

	if inspections == nil {
		inspections = []InspectionSummary{}
	}

	return &Detail{
		Application: *FromDataModel(model),
		Inspections: inspections,
		NOC:         noc,
	}, nil
}

// ListForUser returns the applications owned by u, newest first.
func (s *Service) ListForUser(ctx context.Context, u *user.User, opts ListOptions) ([]*Application, error) {
	if u == nil {
		return nil, internal.ErrAccessDenied
	}

	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	models, err := s.repo.ListByApplicant(ctx, u.ID, opts)
	if err != nil {
		s.logger.Error("failed to list user applications", "error", err, "user_id", u.ID)
		return nil, internal.NewInternalError("failed to list applications", err)
	}
	return FromDataModels(models), nil
}

// ListAll returns every application, newest first. Admin only.
func (s *Service) ListAll(ctx context.Context, requester *user.User, opts ListOptions) ([]*Application, error) {
	if !requester.IsAdmin() {
		s.logger.Warn("list all applications denied", "user_id", userID(requester))
		return nil, internal.ErrAccessDenied
	}

	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	models, err := s.repo.ListAll(ctx, opts)
	if err != nil {
		s.logger.Error("failed to list applications", "error", err)
		return nil, internal.NewInternalError("failed to list applications", err)
	}
	return FromDataModels(models), nil
}

// ListByTypes returns applications whose type is one of types. Admin only.
func (s *Service) ListByTypes(ctx context.Context, requester *user.User, types []string, opts ListOptions) ([]*Application, error) {
	if !requester.IsAdmin() {
		s.logger.Warn("list applications by type denied", "user_id", userID(requester))
		return nil, internal.ErrAccessDenied
	}
	if len(types) == 0 {
		return s.ListAll(ctx, requester, opts)
	}

	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	models, err := s.repo.ListByTypes(ctx, types, opts)
	if err != nil {
		s.logger.Error("failed to list applications by type", "error", err, "types", types)
		return nil, internal.NewInternalError("failed to list applications", err)
	}
	return FromDataModels(models), nil
}

// UpdateStatus sets an application's status. Only the known statuses are
// accepted.
func (s *Service) UpdateStatus(ctx context.Context, id int64, dto UpdateStatusDTO, requester *user.User) (*Application, error) {
	if !requester.IsAdmin() {
		s.logger.Warn("update status denied", "application_id", id, "user_id", userID(requester))
		return nil, internal.ErrAccessDenied
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	status, err := ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	if err := s.repo.UpdateStatus(ctx, id, status, time.Now()); err != nil {
		return nil, s.mapError("update application status", id, err)
	}

	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("reload application", id, err)
	}

	s.logger.Info("application status updated",
		"application_id", id,
		"status", status,
		"admin_id", requester.ID)

	return FromDataModel(model), nil
}

func (s *Service) mapError(op string, id int64, err error) error {
	if errors.Is(err, ErrNotFound) {
		return internal.ErrApplicationNotFound
	}
	s.logger.Error("failed to "+op, "error", err, "application_id", id)
	return internal.NewInternalError("failed to "+op, err)
}

func userID(u *user.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
