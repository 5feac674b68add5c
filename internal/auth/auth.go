// Package auth answers "who are you". Remembering the answer is the
// session store's job; this package never persists anything.
//
// The built-in credential table is a placeholder trust boundary for a
// single-device app, not real authentication. Swap the CredentialSource
// for an actual identity provider before any production use.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"health-records-app/internal/models"
)

// ErrInvalidCredentials is returned for every failed login. It does not
// reveal whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credential is one entry of the credential table.
type Credential struct {
	PasswordHash string
	Role         models.Role
}

// CredentialSource resolves a username to its stored credential.
// Username matching is case-sensitive.
type CredentialSource interface {
	Lookup(username string) (Credential, bool)
}

// StaticCredentials is a fixed in-memory credential table.
type StaticCredentials map[string]Credential

// Lookup implements CredentialSource.
func (c StaticCredentials) Lookup(username string) (Credential, bool) {
	cred, ok := c[username]
	return cred, ok
}

// DefaultCredentials returns the two built-in accounts.
func DefaultCredentials() StaticCredentials {
	return StaticCredentials{
		"nurse1":  {PasswordHash: mustHash("nurse123"), Role: models.RoleNurse},
		"doctor1": {PasswordHash: mustHash("doctor123"), Role: models.RoleDoctor},
	}
}

// AccessController validates login attempts against a credential source.
type AccessController struct {
	creds CredentialSource
}

// NewAccessController creates an AccessController over the given source.
func NewAccessController(creds CredentialSource) *AccessController {
	return &AccessController{creds: creds}
}

// Authenticate checks the username/password pair and yields the account's
// role. The caller decides whether to persist a session afterwards.
func (a *AccessController) Authenticate(username, password string) (models.Role, error) {
	cred, ok := a.creds.Lookup(username)
	if !ok {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return cred.Role, nil
}

func mustHash(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hashed)
}
