// Package identity describes who is calling a use case. Accounts themselves are managed
// by the identity service; this service only receives the caller's account id, e-mail
// address and role from a verified bearer token.
package identity

import (
	"errors"
	"fmt"
	"strings"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// Role is the authorisation level of an account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

var ErrCallerIsNotConstructed = errors.New("Caller must be created via NewCaller constructor")

// ParseRole accepts the role names used in token claims, case-insensitively.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleCustomer:
		return RoleCustomer, nil
	case "":
		return "", errs.NewValueIsRequiredError("role")
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("unknown role %q", raw))
	}
}

func (r Role) String() string {
	return string(r)
}

// Caller is an authenticated account acting on the service.
type Caller struct {
	accountID string
	email     string
	role      Role

	guard guard.ConstructorGuard
}

func NewCaller(accountID, email string, role Role) (Caller, error) {
	c := Caller{
		accountID: strings.TrimSpace(accountID),
		email:     strings.TrimSpace(email),
		role:      role,
		guard:     guard.NewConstructorGuard(),
	}

	var err error
	if c.accountID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("accountID"))
	}
	if c.email == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("email"))
	}
	if role != RoleAdmin && role != RoleCustomer {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("unknown role %q", role)))
	}
	if err != nil {
		return Caller{}, err
	}

	return c, nil
}

func (c Caller) Validate() error {
	return c.guard.Validate(ErrCallerIsNotConstructed)
}

func (c Caller) AccountID() string { return c.accountID }
func (c Caller) Email() string     { return c.email }
func (c Caller) Role() Role        { return c.role }

func (c Caller) IsAdmin() bool {
	return c.Validate() == nil && c.role == RoleAdmin
}

// RequireAdmin returns an access denied error naming action unless the caller is an
// administrator. A zero-value Caller is never an administrator.
func (c Caller) RequireAdmin(action string) error {
	if err := c.Validate(); err != nil {
		return errs.NewAccessDeniedErrorWithCause("anonymous caller", action, err)
	}
	if c.role != RoleAdmin {
		return errs.NewAccessDeniedError(c.String(), action)
	}
	return nil
}

func (c Caller) String() string {
	if c.Validate() != nil {
		return "anonymous"
	}
	return fmt.Sprintf("%s %s", c.role, c.accountID)
}
