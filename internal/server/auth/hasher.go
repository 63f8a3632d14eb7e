package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Default Argon2id parameters.
const (
	DefaultArgonTime    = 3
	DefaultArgonMemory  = 64 * 1024 // KiB
	DefaultArgonThreads = 4

	saltLen = 16
	keyLen  = 32
)

// HasherParams are the Argon2id cost parameters used for new hashes.
// Verification always uses the parameters embedded in the stored hash.
type HasherParams struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// Argon2Hasher hashes passwords into PHC strings:
//
//	$argon2id$v=19$m=65536,t=3,p=4$<salt>$<key>
//
// Salt and key are unpadded standard base64. The password is used as-is,
// whatever its length.
type Argon2Hasher struct {
	params HasherParams
	rand   io.Reader
}

// NewArgon2Hasher returns a hasher using p. Zero fields fall back to the defaults.
func NewArgon2Hasher(p HasherParams) *Argon2Hasher {
	if p.Time == 0 {
		p.Time = DefaultArgonTime
	}
	if p.Memory == 0 {
		p.Memory = DefaultArgonMemory
	}
	if p.Threads == 0 {
		p.Threads = DefaultArgonThreads
	}
	return &Argon2Hasher{params: p, rand: rand.Reader}
}

// Hash derives a new salted hash of password. It fails only when the
// random source does.
func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, keyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.Memory, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify reports whether password matches encoded. A malformed hash is a mismatch.
func (h *Argon2Hasher) Verify(password, encoded string) bool {
	return h.Check(password, encoded) == nil
}

// Check is Verify with the reason: nil on match, ErrPasswordMismatch or
// a wrapped ErrMalformedHash otherwise.
func (h *Argon2Hasher) Check(password, encoded string) error {
	p, salt, want, err := decodeHash(encoded)
	if err != nil {
		return err
	}

	got := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, uint32(len(want)))
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

func decodeHash(encoded string) (p HasherParams, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("%w: unexpected layout", ErrMalformedHash)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: unsupported version %q", ErrMalformedHash, parts[2])
	}

	if n, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil || n != 3 {
		return p, nil, nil, fmt.Errorf("%w: bad parameters %q", ErrMalformedHash, parts[3])
	}
	if p.Time == 0 || p.Threads == 0 || p.Memory == 0 {
		return p, nil, nil, fmt.Errorf("%w: zero parameter", ErrMalformedHash)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, fmt.Errorf("%w: bad salt", ErrMalformedHash)
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, fmt.Errorf("%w: bad key", ErrMalformedHash)
	}

	return p, salt, key, nil
}
