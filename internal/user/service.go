package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/firedept-portal/internal"
	userDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	Create(ctx context.Context, u *userDatamodel.User) error
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// Service is the account store used by authentication and the profile endpoint.
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

func (s *Service) Create(ctx context.Context, u *User) error {
	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	model := ToDataModel(u)
	if err := s.repo.Create(ctx, model); err != nil {
		return err
	}
	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	s.logger.Info("user created", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("failed to get user by id", "user_id", id, "error", err)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return FromDataModel(u), nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return FromDataModel(u), nil
}

func (s *Service) UsernameTaken(ctx context.Context, username string) (bool, error) {
	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	return s.repo.ExistsByUsername(ctx, username)
}

func (s *Service) EmailTaken(ctx context.Context, email string) (bool, error) {
	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	return s.repo.ExistsByEmail(ctx, email)
}
