package dashboard

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/firedept-portal/internal"
	"github.com/frahmantamala/firedept-portal/internal/application"
	"github.com/frahmantamala/firedept-portal/internal/user"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Summary(ctx context.Context, requester *user.User) (*Summary, error) {
	if !requester.IsAdmin() {
		return nil, internal.ErrAccessDenied
	}

	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	counts, err := s.repo.ApplicationStatusCounts(ctx)
	if err != nil {
		s.logger.Error("failed to count applications", "error", err)
		return nil, internal.NewInternalError("failed to build dashboard", err)
	}

	summary := &Summary{ApplicationsByStatus: make(map[string]int64, len(application.Statuses))}
	for _, st := range application.Statuses {
		summary.ApplicationsByStatus[string(st)] = 0
	}
	for _, c := range counts {
		summary.ApplicationsByStatus[c.Status] = c.Count
		summary.TotalApplications += c.Count
	}

	summary.TotalInspections, summary.ScheduledInspections, err = s.repo.InspectionCounts(ctx)
	if err != nil {
		s.logger.Error("failed to count inspections", "error", err)
		return nil, internal.NewInternalError("failed to build dashboard", err)
	}

	summary.NOCsIssued, err = s.repo.CountNOCsByStatus(ctx, "issued")
	if err != nil {
		s.logger.Error("failed to count nocs", "error", err)
		return nil, internal.NewInternalError("failed to build dashboard", err)
	}

	return summary, nil
}
