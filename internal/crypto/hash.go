package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	// MaxHashMemory is the largest accepted Argon2 memory cost, in KiB (1 GiB).
	MaxHashMemory = 1 << 20
	// MaxHashBytes bounds salt and key lengths.
	MaxHashBytes = 1024
)

var (
	ErrInvalidHashFormat   = errors.New("invalid encoded hash format")
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
	ErrInvalidHashParams   = errors.New("invalid argon2 parameters")
)

// HashParams holds the Argon2id cost and output sizes.
type HashParams struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultHashParams returns 64 MiB, 3 passes, 2 lanes, a 16 byte salt and a 32 byte key.
func DefaultHashParams() HashParams {
	return HashParams{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Validate reports ErrInvalidHashParams for values argon2 refuses or that
// would allocate without bound.
func (p HashParams) Validate() error {
	switch {
	case p.Iterations == 0, p.Parallelism == 0:
		return ErrInvalidHashParams
	case p.Memory > MaxHashMemory:
		return ErrInvalidHashParams
	case p.SaltLength == 0, p.SaltLength > MaxHashBytes:
		return ErrInvalidHashParams
	case p.KeyLength == 0, p.KeyLength > MaxHashBytes:
		return ErrInvalidHashParams
	}
	return nil
}

// Hasher encodes passwords as Argon2id PHC strings. A zero Params means
// DefaultHashParams; salts come from Reader, crypto/rand when nil.
type Hasher struct {
	Params HashParams
	Reader io.Reader
}

// NewHasher returns a Hasher using DefaultHashParams.
func NewHasher() *Hasher {
	return &Hasher{Params: DefaultHashParams()}
}

// HashPassword hashes password with DefaultHashParams.
func HashPassword(password string) (string, error) {
	return NewHasher().Hash(password)
}

// Hash returns the PHC encoding $argon2id$v=19$m=<mem>,t=<iter>,p=<par>$<salt>$<key>.
func (h *Hasher) Hash(password string) (string, error) {
	params := h.Params
	if params == (HashParams{}) {
		params = DefaultHashParams()
	}
	if err := params.Validate(); err != nil {
		return "", err
	}

	r := h.Reader
	if r == nil {
		r = rand.Reader
	}

	salt := make([]byte, params.SaltLength)
	if _, err := io.ReadFull(r, salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := deriveKey(password, salt, params)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		params.Memory,
		params.Iterations,
		params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether password matches encodedHash, comparing in
// constant time.
func VerifyPassword(password, encodedHash string) (bool, error) {
	params, salt, key, err := DecodeHash(encodedHash)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(key, deriveKey(password, salt, params)) == 1, nil
}

// DecodeHash parses a PHC-formatted Argon2id hash string. Parameters that
// fail HashParams.Validate are reported as ErrInvalidHashFormat.
func DecodeHash(encodedHash string) (HashParams, []byte, []byte, error) {
	var params HashParams

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return params, nil, nil, ErrInvalidHashFormat
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, ErrInvalidHashFormat
	}
	if version != argon2.Version {
		return params, nil, nil, ErrIncompatibleVersion
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return params, nil, nil, ErrInvalidHashFormat
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, ErrInvalidHashFormat
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, ErrInvalidHashFormat
	}
	params.SaltLength = uint32(len(salt))
	params.KeyLength = uint32(len(key))

	if err := params.Validate(); err != nil {
		return HashParams{}, nil, nil, ErrInvalidHashFormat
	}

	return params, salt, key, nil
}

func deriveKey(password string, salt []byte, p HashParams) []byte {
	return argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
}
