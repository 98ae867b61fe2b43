package impl

import (
	"collegeconnect/internal/credential"
)

// PasswordServiceImpl hashes with argon2id under credential.Policy and still
// verifies legacy bcrypt hashes, asking for a rehash when it sees one.
type PasswordServiceImpl struct {
	minLength int
}

func NewPasswordServiceArgon2id() *PasswordServiceImpl {
	return &PasswordServiceImpl{minLength: 8}
}

func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) < p.minLength {
		return "", ErrPasswordLength
	}
	return credential.Hash(password)
}

func (p *PasswordServiceImpl) Verify(password, encoded string) (rehashNeeded bool, ok bool) {
	return credential.Verify(password, encoded)
}
