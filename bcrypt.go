package lockout

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword will generate a password digest
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost())
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}

// VerifyPassword reports whether password matches digest. Malformed digests,
// empty inputs, and any comparison error all degrade to false rather than
// propagating, which is the posture a security primitive needs.
func VerifyPassword(password, digest string) bool {
	if password == "" || digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// IsPasswordDigest recognizes whether a stored value is already a bcrypt
// digest, checked by structural prefix rather than by decoding. The
// provisioning path uses it to avoid double-hashing values migrated from
// legacy plaintext storage.
func IsPasswordDigest(value string) bool {
	if len(value) != 60 {
		return false
	}
	return strings.HasPrefix(value, "$2a$") ||
		strings.HasPrefix(value, "$2b$") ||
		strings.HasPrefix(value, "$2y$")
}

// RandomPasswordHash is a temporary password
func RandomPasswordHash() string {
	pwd := uuid.New()

	h, err := HashPassword(pwd.String())
	if err != nil {
		return RandomPasswordHash()
	}

	return h
}

// compareLegacyPlaintext compares two plaintext values in constant time.
// Only used for records still on the legacy scheme, before their first
// successful login upgrades them to a digest.
func compareLegacyPlaintext(password, stored string) bool {
	if password == "" || stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
}

// BcryptAuthenticator is the default PasswordAuthenticator backed by the
// package-level bcrypt helpers.
type BcryptAuthenticator struct{}

func (BcryptAuthenticator) HashPassword(password string) (string, error) {
	return HashPassword(password)
}

func (BcryptAuthenticator) VerifyPassword(password, digest string) bool {
	return VerifyPassword(password, digest)
}

func (BcryptAuthenticator) IsPasswordDigest(value string) bool {
	return IsPasswordDigest(value)
}

var _ PasswordAuthenticator = BcryptAuthenticator{}
