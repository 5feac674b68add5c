package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-records-app/internal/models"
)

func TestAuthenticateBuiltInAccounts(t *testing.T) {
	controller := NewAccessController(DefaultCredentials())

	role, err := controller.Authenticate("nurse1", "nurse123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleNurse, role)

	role, err = controller.Authenticate("doctor1", "doctor123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleDoctor, role)
}

func TestAuthenticateRejectsBadPairs(t *testing.T) {
	controller := NewAccessController(DefaultCredentials())

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "mallory", "nurse123"},
		{"wrong password", "nurse1", "wrong"},
		{"swapped accounts", "nurse1", "doctor123"},
		{"case-sensitive username", "Nurse1", "nurse123"},
		{"empty pair", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := controller.Authenticate(tc.username, tc.password)
			// Same sentinel either way: callers cannot tell which part was wrong.
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

// fakeSource proves the controller works against any CredentialSource.
type fakeSource struct {
	calls int
}

func (f *fakeSource) Lookup(username string) (Credential, bool) {
	f.calls++
	if username == "carol" {
		return Credential{PasswordHash: mustHash("s3cret"), Role: models.RoleDoctor}, true
	}
	return Credential{}, false
}

func TestAuthenticateWithInjectedSource(t *testing.T) {
	source := &fakeSource{}
	controller := NewAccessController(source)

	role, err := controller.Authenticate("carol", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleDoctor, role)
	assert.Equal(t, 1, source.calls)
}
