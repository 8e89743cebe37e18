package data

import (
	"testing"

	"github.com/emzola/recensio/internal/validator"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeForcesAdminRoleForSuperuser(t *testing.T) {
	user := &User{Username: "root", IsSuperuser: true, Role: RoleUser}
	user.Normalize()
	assert.Equal(t, RoleAdmin, user.Role)

	// A plain user keeps whatever role it has.
	user = &User{Username: "mod", Role: RoleModerator}
	user.Normalize()
	assert.Equal(t, RoleModerator, user.Role)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.True(t, (&User{Role: RoleUser, IsSuperuser: true}).IsAdmin())
	assert.False(t, (&User{Role: RoleModerator}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
}

func TestConfirmationCodeRoundTrip(t *testing.T) {
	plaintext, hash, err := GenerateConfirmationCode()
	assert.NoError(t, err)
	assert.Len(t, plaintext, 26)

	user := &User{ConfirmationCodeHash: hash}
	assert.True(t, user.MatchesConfirmationCode(plaintext))
	assert.False(t, user.MatchesConfirmationCode("AAAAAAAAAAAAAAAAAAAAAAAAAA"))

	// A user that never signed up has no hash and matches nothing.
	blank := &User{}
	assert.False(t, blank.MatchesConfirmationCode(plaintext))
}

func TestConfirmationCodesAreUnique(t *testing.T) {
	first, _, err := GenerateConfirmationCode()
	assert.NoError(t, err)
	second, _, err := GenerateConfirmationCode()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"plain username", "alice", true},
		{"empty", "", false},
		{"reserved word", "me", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := validator.New()
			ValidateUsername(v, tc.username)
			assert.Equal(t, tc.valid, v.Valid(), "errors: %v", v.Errors)
		})
	}
}

func TestValidateUser(t *testing.T) {
	valid := &User{Username: "alice", Email: "alice@example.com", Role: RoleUser}
	v := validator.New()
	ValidateUser(v, valid)
	assert.True(t, v.Valid(), "errors: %v", v.Errors)

	// A superuser that skipped Normalize fails validation.
	v = validator.New()
	ValidateUser(v, &User{Username: "root", Email: "root@example.com", Role: RoleUser, IsSuperuser: true})
	assert.False(t, v.Valid())

	v = validator.New()
	ValidateUser(v, &User{Username: "bob", Email: "not-an-email", Role: RoleUser})
	assert.False(t, v.Valid())

	v = validator.New()
	ValidateUser(v, &User{Username: "bob", Email: "bob@example.com", Role: "owner"})
	assert.False(t, v.Valid())
}
