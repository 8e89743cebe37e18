package data

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base32"
	"time"

	"github.com/emzola/recensio/internal/validator"
)

// User roles, lowest to highest authorization tier.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// AnonymousUser represents an unauthenticated request actor.
var AnonymousUser = &User{}

// User defines a user model.
type User struct {
	ID                   int64     `json:"id"`
	CreatedAt            time.Time `json:"created_at"`
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	Bio                  string    `json:"bio,omitempty"`
	Role                 string    `json:"role"`
	IsSuperuser          bool      `json:"is_superuser"`
	ConfirmationCodeHash []byte    `json:"-"`
	Version              int32     `json:"-"`
}

// IsAnonymous checks if a user instance is the anonymous user.
func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

// IsAdmin reports whether the user has administrator privileges, either
// through the admin role or the superuser flag.
func (u *User) IsAdmin() bool {
	return u.IsSuperuser || u.Role == RoleAdmin
}

// IsModerator reports whether the user holds the moderator role.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

// Normalize applies the superuser invariant before a user record is saved:
// a superuser always carries the admin role, whatever role value was supplied.
func (u *User) Normalize() {
	if u.IsSuperuser {
		u.Role = RoleAdmin
	}
}

// MatchesConfirmationCode checks a plaintext confirmation code against the
// hash stored on the user record.
func (u *User) MatchesConfirmationCode(plaintext string) bool {
	if u.ConfirmationCodeHash == nil {
		return false
	}
	hash := sha256.Sum256([]byte(plaintext))
	return subtle.ConstantTimeCompare(u.ConfirmationCodeHash, hash[:]) == 1
}

// GenerateConfirmationCode returns a fresh random confirmation code in
// plaintext along with its SHA-256 hash. The code carries 128 bits of
// entropy and is encoded as 26 characters of unpadded base32.
func GenerateConfirmationCode() (string, []byte, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", nil, err
	}
	plaintext := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	hash := sha256.Sum256([]byte(plaintext))
	return plaintext, hash[:], nil
}

func ValidateUsername(v *validator.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(len(username) <= 150, "username", "must not be more than 150 bytes long")
	v.Check(username != "me", "username", "must not be a reserved word")
}

func ValidateEmail(v *validator.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(validator.Matches(email, validator.EmailRX), "email", "must be a valid email address")
}

func ValidateRole(v *validator.Validator, role string) {
	v.Check(validator.PermittedValue(role, RoleUser, RoleModerator, RoleAdmin), "role", "must be one of user, moderator or admin")
}

// ValidateConfirmationCodePlaintext checks that a confirmation code is
// well-formed before it is compared against a stored hash.
func ValidateConfirmationCodePlaintext(v *validator.Validator, plaintext string) {
	v.Check(plaintext != "", "confirmation_code", "must be provided")
	v.Check(len(plaintext) == 26, "confirmation_code", "must be 26 bytes long")
}

func ValidateUser(v *validator.Validator, user *User) {
	ValidateUsername(v, user.Username)
	ValidateEmail(v, user.Email)
	ValidateRole(v, user.Role)
	// Normalize runs on every save path, so a superuser carrying a
	// non-admin role at validation time is a bug.
	v.Check(!user.IsSuperuser || user.Role == RoleAdmin, "role", "must be admin for a superuser")
}
