package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/frahmantamala/firedept-portal/internal"
	"github.com/frahmantamala/firedept-portal/internal/user"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service is the main auth service with dependencies
type Service struct {
	accounts       AccountStore
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger

	// compared against when the username is unknown so login time does
	// not reveal which accounts exist
	dummyOnce sync.Once
	dummyHash []byte
}

// NewService creates a new auth service
func NewService(accounts AccountStore, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		accounts:       accounts,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// NewJWTTokenGenerator creates a session token generator signing with secret.
func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret: []byte(secret),
		TTL:    ttl,
	}
}

// Register creates a new account. The role defaults to applicant.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*user.User, error) {
	dto.Username = strings.TrimSpace(dto.Username)
	dto.Email = strings.TrimSpace(dto.Email)

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	taken, err := s.accounts.UsernameTaken(ctx, dto.Username)
	if err != nil {
		return nil, internal.NewInternalError("failed to check username", err)
	}
	if taken {
		return nil, internal.ErrDuplicateUsername
	}

	taken, err = s.accounts.EmailTaken(ctx, dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to check email", err)
	}
	if taken {
		return nil, internal.ErrDuplicateEmail
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	u := &user.User{
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.accounts.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			// lost a race with a concurrent registration
			taken, err := s.accounts.UsernameTaken(ctx, dto.Username)
			if err != nil {
				return nil, internal.NewInternalError("failed to check username", err)
			}
			if taken {
				return nil, internal.ErrDuplicateUsername
			}
			return nil, internal.ErrDuplicateEmail
		}
		return nil, internal.NewInternalError("failed to create user", err)
	}

	return u, nil
}

// Authenticate validates credentials and returns a signed session
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*Session, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.accounts.GetByUsername(ctx, strings.TrimSpace(dto.Username))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.unknownUserHash(), []byte(dto.Password))
			return nil, internal.ErrInvalidCredentials
		}
		return nil, internal.NewInternalError("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenGenerator.GenerateSessionToken(u)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue session", err)
	}

	s.logger.Info("user logged in", "user_id", u.ID, "role", u.Role)

	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      u,
	}, nil
}

func (s *Service) unknownUserHash() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.bcryptCost)
		if err != nil {
			s.logger.Error("failed to build placeholder hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// ResolveSession maps a session token back to the account it was issued
// for. The role is always read from the store, never from the token.
func (s *Service) ResolveSession(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, internal.ErrSessionNotFound
	}

	claims, err := s.tokenGenerator.ValidateToken(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, internal.ErrSessionExpired
		}
		return nil, internal.ErrSessionNotFound
	}

	u, err := s.accounts.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, internal.ErrSessionNotFound
		}
		return nil, internal.NewInternalError("failed to resolve session", err)
	}

	return u, nil
}

// GenerateSessionToken creates a signed token bound to the user's id.
func (j *JWTTokenGenerator) GenerateSessionToken(u *user.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.TTL)

	claims := &Claims{
		UserID: u.ID,
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(u.ID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.UserID > 0 {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
