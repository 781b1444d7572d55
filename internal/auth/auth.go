package auth

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/firedept-portal/internal/user"
	"github.com/golang-jwt/jwt/v5"
)

const SessionCookieName = "session"

// AccountStore is the subset of the user service that authentication needs.
type AccountStore interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// TokenGenerator issues and verifies session tokens.
type TokenGenerator interface {
	GenerateSessionToken(u *user.User) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type ServiceAPI interface {
	Register(ctx context.Context, dto RegisterDTO) (*user.User, error)
	Authenticate(ctx context.Context, dto LoginDTO) (*Session, error)
	ResolveSession(ctx context.Context, token string) (*user.User, error)
}

// Session is the result of a successful login.
type Session struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      *user.User `json:"user"`
}

// Claims represents session token claims
type Claims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	Secret []byte
	TTL    time.Duration
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
