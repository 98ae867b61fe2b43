// Package credential encodes and verifies password hashes.
//
// New hashes are argon2id in PHC string form:
//
//	$argon2id$v=19$m=65536,t=3,p=1$<salt>$<key>
//
// bcrypt hashes imported from the previous system are still accepted by
// Verify and reported as needing a rehash.
package credential

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyPassword = errors.New("empty password")
	ErrMalformedHash = errors.New("malformed password hash")
)

type Params struct {
	Time    uint32 // iterations
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// Policy is applied to every new hash. Verify flags hashes made under a
// different policy for rehashing.
var Policy = Params{
	Time:    3,
	Memory:  64 * 1024,
	Threads: 1,
	KeyLen:  32,
	SaltLen: 16,
}

const argonPrefix = "$argon2id$"

var bcryptPattern = regexp.MustCompile(`^\$2[aby]?\$\d{2}\$`)

// IsEncoded reports whether s already looks like a stored hash rather than
// a plaintext password.
func IsEncoded(s string) bool {
	return strings.HasPrefix(s, argonPrefix) || bcryptPattern.MatchString(s)
}

func Hash(password string) (string, error) {
	return HashWith(password, Policy)
}

func HashWith(password string, p Params) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	b64 := base64.RawStdEncoding
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argonPrefix, argon2.Version, p.Memory, p.Time, p.Threads,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// Verify checks password against encoded. rehashNeeded is only meaningful
// when ok is true.
func Verify(password, encoded string) (rehashNeeded bool, ok bool) {
	if password == "" || encoded == "" {
		return false, false
	}
	if bcryptPattern.MatchString(encoded) {
		if err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)); err != nil {
			return false, false
		}
		return true, true
	}

	stored, salt, key, err := decode(encoded)
	if err != nil {
		return false, false
	}
	calculated := argon2.IDKey([]byte(password), salt, stored.Time, stored.Memory, stored.Threads, uint32(len(key)))
	if subtle.ConstantTimeCompare(calculated, key) != 1 {
		return false, false
	}
	return stored != Policy, true
}

func decode(encoded string) (Params, []byte, []byte, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return Params{}, nil, nil, ErrMalformedHash
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Params{}, nil, nil, ErrMalformedHash
	}
	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return Params{}, nil, nil, ErrMalformedHash
	}
	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, ErrMalformedHash
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return Params{}, nil, nil, ErrMalformedHash
	}
	p.SaltLen = uint32(len(salt))
	p.KeyLen = uint32(len(key))
	return p, salt, key, nil
}
