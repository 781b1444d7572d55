package auth

import (
	"github.com/frahmantamala/firedept-portal/internal"
	"github.com/frahmantamala/firedept-portal/internal/core/common/validation"
	"github.com/frahmantamala/firedept-portal/internal/user"
)

// RegisterDTO is the transport shape for account registration.
type RegisterDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d RegisterDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MaxLength(80)
	v.Field("email", d.Email).Required().MaxLength(120).Email()
	v.Field("password", d.Password).Required().MaxLength(72)
	v.Field("role", d.Role).OneOf(internal.ErrCodeInvalidRole, string(user.RoleApplicant), string(user.RoleAdmin))

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required()
	v.Field("password", d.Password).Required()

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
