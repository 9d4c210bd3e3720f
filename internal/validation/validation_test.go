package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"alice@example.com", " Bob.Smith+swap@mail.co "}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{"", "alice", "alice@", "@example.com", "a@b@c.com", "alice@example", "al ice@example.com"}
	for _, email := range invalid {
		err := ValidateEmail(email)
		assert.True(t, apperror.IsValidation(err), email)
	}
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("alice_01"))
	assert.NoError(t, ValidateUsername("bob.jones"))

	assert.Equal(t, "username_required", apperror.ReasonOf(ValidateUsername("  ")))
	for _, name := range []string{"ab", "1alice", "alice!", strings.Repeat("a", MaxUsernameLength+1)} {
		assert.Equal(t, "invalid_username", apperror.ReasonOf(ValidateUsername(name)), name)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Secret123"))

	for _, pw := range []string{"short1A", "alllower123", "ALLUPPER123", "NoDigitsHere"} {
		assert.Equal(t, "weak_password", apperror.ReasonOf(ValidatePassword(pw)), pw)
	}
}

func TestValidateProfileFields(t *testing.T) {
	long := strings.Repeat("я", MaxBioLength+1)
	assert.Error(t, ValidateBio(&long))
	assert.NoError(t, ValidateBio(nil))

	loc := "Berlin"
	assert.NoError(t, ValidateLocation(&loc))
	assert.Error(t, ValidateName("имя", strings.Repeat("x", MaxNameLength+1)))
}
