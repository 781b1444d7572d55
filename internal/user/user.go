package user

import (
	"errors"
	"strings"
	"time"

	"github.com/frahmantamala/firedept-portal/internal"
	userDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/user"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleAdmin     Role = "admin"
)

// ParseRole maps user input to a Role. An empty value means applicant.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RoleApplicant:
		return RoleApplicant, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", internal.ErrInvalidRole
	}
}

func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleApplicant:
		return false
	default:
		return false
	}
}

func (r Role) IsApplicant() bool {
	switch r {
	case RoleApplicant:
		return true
	case RoleAdmin:
		return false
	default:
		return false
	}
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role.IsAdmin()
}

func (u *User) IsApplicant() bool {
	return u != nil && u.Role.IsApplicant()
}

// CanView reports whether u may read a record owned by ownerID.
func (u *User) CanView(ownerID int64) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin() || u.ID == ownerID
}

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("user already exists")
)

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         Role(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}
