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

const (
	hashAlgorithm = "argon2id"

	minHashMemoryKiB uint32 = 8 * 1024
	maxHashMemoryKiB uint64 = 1024 * 1024
	minHashTime      uint32 = 1
	minHashThreads   uint8  = 1
	minSaltLength    uint32 = 16
	minKeyLength     uint32 = 16
)

// HashParams are the Argon2id cost parameters. Memory is in KiB.
type HashParams struct {
	Memory     uint32
	Time       uint32
	Threads    uint8
	SaltLength uint32
	KeyLength  uint32
}

// DefaultHashParams is 64 MiB, 3 passes, 2 lanes, 16-byte salt, 32-byte digest.
var DefaultHashParams = HashParams{
	Memory:     64 * 1024,
	Time:       3,
	Threads:    2,
	SaltLength: 16,
	KeyLength:  32,
}

// Hasher hashes and verifies passwords. It is immutable and safe for concurrent use.
type Hasher struct {
	params HashParams
	rand   io.Reader
}

// NewHasher validates params and returns a Hasher using crypto/rand for salts.
func NewHasher(params HashParams) (*Hasher, error) {
	switch {
	case params.Memory < minHashMemoryKiB:
		return nil, fmt.Errorf("auth: hash memory must be >= %d KiB", minHashMemoryKiB)
	case params.Time < minHashTime:
		return nil, fmt.Errorf("auth: hash time must be >= %d", minHashTime)
	case params.Threads < minHashThreads:
		return nil, fmt.Errorf("auth: hash threads must be >= %d", minHashThreads)
	case params.SaltLength < minSaltLength:
		return nil, fmt.Errorf("auth: salt length must be >= %d", minSaltLength)
	case params.KeyLength < minKeyLength:
		return nil, fmt.Errorf("auth: key length must be >= %d", minKeyLength)
	}
	return &Hasher{params: params, rand: rand.Reader}, nil
}

// Hash derives an Argon2id digest under a fresh salt and encodes it as
// $argon2id$v=19$m=<KiB>,t=<passes>,p=<lanes>$<salt>$<digest>.
func (h *Hasher) Hash(password []byte) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("auth: read salt: %w", err)
	}
	digest := argon2.IDKey(password, salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLength)
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		hashAlgorithm,
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	), nil
}

// Verify reports whether password matches encoded. The parameters stored in encoded win
// over the Hasher's own, so old hashes keep verifying after a cost change.
// Malformed input never verifies.
func (h *Hasher) Verify(encoded string, password []byte) bool {
	parsed, err := decodeHash(encoded)
	if err != nil {
		return false
	}
	digest := argon2.IDKey(password, parsed.salt, parsed.params.Time, parsed.params.Memory, parsed.params.Threads, parsed.params.KeyLength)
	return subtle.ConstantTimeCompare(digest, parsed.digest) == 1
}

type decodedHash struct {
	params HashParams
	salt   []byte
	digest []byte
}

var errMalformedHash = errors.New("auth: malformed password hash")

func decodeHash(encoded string) (*decodedHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != hashAlgorithm {
		return nil, errMalformedHash
	}
	if parts[2] != "v="+strconv.Itoa(argon2.Version) {
		return nil, errMalformedHash
	}

	var params HashParams
	if err := decodeParams(parts[3], &params); err != nil {
		return nil, err
	}

	salt, err := base64.RawStdEncoding.Strict().DecodeString(parts[4])
	if err != nil || uint32(len(salt)) < minSaltLength {
		return nil, errMalformedHash
	}
	digest, err := base64.RawStdEncoding.Strict().DecodeString(parts[5])
	if err != nil || uint32(len(digest)) < minKeyLength {
		return nil, errMalformedHash
	}
	params.SaltLength = uint32(len(salt))
	params.KeyLength = uint32(len(digest))
	return &decodedHash{params: params, salt: salt, digest: digest}, nil
}

func decodeParams(raw string, params *HashParams) error {
	var seen int
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return errMalformedHash
		}
		switch key {
		case "m":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil || uint32(v) < minHashMemoryKiB || v > maxHashMemoryKiB {
				return errMalformedHash
			}
			params.Memory = uint32(v)
		case "t":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil || uint32(v) < minHashTime {
				return errMalformedHash
			}
			params.Time = uint32(v)
		case "p":
			v, err := strconv.ParseUint(value, 10, 8)
			if err != nil || uint8(v) < minHashThreads {
				return errMalformedHash
			}
			params.Threads = uint8(v)
		default:
			return errMalformedHash
		}
		seen++
	}
	if seen != 3 || params.Memory == 0 || params.Time == 0 || params.Threads == 0 {
		return errMalformedHash
	}
	return nil
}
