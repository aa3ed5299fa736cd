package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters used for every stored password.
const (
	PasswordMemoryCost  uint32 = 19456 // KiB
	PasswordTimeCost    uint32 = 2
	PasswordKeyLength   uint32 = 32
	PasswordParallelism uint8  = 1
	passwordSaltLength         = 16
)

// ErrInvalidHash is returned when a stored hash cannot be parsed.
var ErrInvalidHash = errors.New("invalid password hash")

// PasswordParams configures the Argon2id hasher.
type PasswordParams struct {
	Memory      uint32
	Time        uint32
	KeyLength   uint32
	Parallelism uint8
}

// DefaultPasswordParams returns the production cost parameters.
func DefaultPasswordParams() PasswordParams {
	return PasswordParams{
		Memory:      PasswordMemoryCost,
		Time:        PasswordTimeCost,
		KeyLength:   PasswordKeyLength,
		Parallelism: PasswordParallelism,
	}
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(hash, plaintext string) (bool, error)
}

// Argon2Hasher produces PHC strings of the form
// $argon2id$v=19$m=19456,t=2,p=1$<salt>$<key>. It is safe for concurrent use.
type Argon2Hasher struct {
	params PasswordParams
}

var _ PasswordHasher = (*Argon2Hasher)(nil)

// NewArgon2Hasher creates a hasher with the given parameters.
func NewArgon2Hasher(params PasswordParams) *Argon2Hasher {
	return &Argon2Hasher{params: params}
}

// Hash derives a key from plaintext with a fresh random salt.
func (h *Argon2Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, passwordSaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(plaintext), salt, h.params.Time, h.params.Memory, h.params.Parallelism, h.params.KeyLength)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plaintext matches hash. The cost parameters are read
// from the hash itself. A mismatch is (false, nil); a malformed hash is an error.
func (h *Argon2Hasher) Verify(hash, plaintext string) (bool, error) {
	p, err := decodeHash(hash)
	if err != nil {
		return false, err
	}
	computed := argon2.IDKey([]byte(plaintext), p.salt, p.time, p.memory, p.threads, uint32(len(p.key)))
	return subtle.ConstantTimeCompare(computed, p.key) == 1, nil
}

type decodedHash struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func decodeHash(encoded string) (*decodedHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: expected 5 segments", ErrInvalidHash)
	}
	if parts[1] != "argon2id" {
		return nil, fmt.Errorf("%w: unsupported variant %q", ErrInvalidHash, parts[1])
	}
	if parts[2] != "v="+strconv.Itoa(argon2.Version) {
		return nil, fmt.Errorf("%w: unsupported version %q", ErrInvalidHash, parts[2])
	}

	var d decodedHash
	for _, kv := range strings.Split(parts[3], ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("%w: malformed param %q", ErrInvalidHash, kv)
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: param %q: %v", ErrInvalidHash, kv, err)
		}
		switch k {
		case "m":
			d.memory = uint32(n)
		case "t":
			d.time = uint32(n)
		case "p":
			if n > 255 {
				return nil, fmt.Errorf("%w: parallelism %d out of range", ErrInvalidHash, n)
			}
			d.threads = uint8(n)
		default:
			return nil, fmt.Errorf("%w: unknown param %q", ErrInvalidHash, k)
		}
	}
	if d.memory == 0 || d.time == 0 || d.threads == 0 {
		return nil, fmt.Errorf("%w: missing m/t/p", ErrInvalidHash)
	}

	var err error
	if d.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	if d.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("%w: key: %v", ErrInvalidHash, err)
	}
	if len(d.key) == 0 {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidHash)
	}
	return &d, nil
}
