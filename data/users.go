package data

import (
	"strings"
	"time"

	"github.com/emzola/kritika/internal/validator"
)

// Role is the closed set of access tiers a user can hold. The stored value is
// always one of the three constants below; anything else is rejected at the
// boundary by ParseRole rather than silently treated as a role-less user.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ParseRole converts a raw string into a Role, reporting whether the value is
// one of the three canonical roles.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleModerator, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

var AnonymousUser = &User{}

// User defines a user model.
type User struct {
	ID        int64     `json:"-"`
	CreatedAt time.Time `json:"-"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Bio       string    `json:"bio"`
	Role      Role      `json:"role"`
	Superuser bool      `json:"-"`
	Version   int32     `json:"-"`
}

// Check if a user instance is the anonymous user.
func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

// IsAdmin reports whether the user holds the admin role. The superuser flag is
// deliberately not folded in here; predicates that grant superusers access do
// so explicitly.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsModerator reports whether the user holds the moderator role.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

// IsUser reports whether the user holds the least-privileged role.
func (u *User) IsUser() bool {
	return u.Role == RoleUser
}

func ValidateUsername(v *validator.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(len(username) <= 150, "username", "must not be more than 150 bytes long")
	v.Check(validator.Matches(username, validator.UsernameRX), "username", "must contain only word characters, '.', '@', '+' or '-'")
	v.Check(!strings.EqualFold(username, "me"), "username", "'me' is a reserved username")
}

func ValidateEmail(v *validator.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(validator.Matches(email, validator.EmailRX), "email", "must be a valid email address")
}

func ValidateRole(v *validator.Validator, role string) {
	_, ok := ParseRole(role)
	v.Check(ok, "role", "must be one of 'user', 'moderator' or 'admin'")
}

func ValidateUser(v *validator.Validator, user *User) {
	ValidateUsername(v, user.Username)
	ValidateEmail(v, user.Email)
	v.Check(len(user.FirstName) <= 150, "first_name", "must not be more than 150 bytes long")
	v.Check(len(user.LastName) <= 150, "last_name", "must not be more than 150 bytes long")
	ValidateRole(v, string(user.Role))
}
