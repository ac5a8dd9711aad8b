// Package password holds the pluggable credential verifier. The scheme is a
// deployment-time choice; the rest of the system is agnostic to which one is
// active.
package password

import "golang.org/x/crypto/bcrypt"

// Hasher turns a plaintext password into a stored credential and checks a
// submitted plaintext against one.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, credential string) bool
}

// Bcrypt is the default scheme: one-way salted hash.
type Bcrypt struct{}

func (Bcrypt) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (Bcrypt) Verify(plain, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(plain)) == nil
}

// Plain stores the password as-is and compares by equality. Used only in
// throughput-tuned deployments.
type Plain struct{}

func (Plain) Hash(plain string) (string, error) { return plain, nil }

func (Plain) Verify(plain, credential string) bool { return plain == credential }

// ForScheme selects the hasher for a configured scheme name. Unknown names
// fall back to bcrypt.
func ForScheme(scheme string) Hasher {
	if scheme == "plain" {
		return Plain{}
	}
	return Bcrypt{}
}
