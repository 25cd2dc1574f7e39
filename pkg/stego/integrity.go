package stego

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// hashFunc computes a digest of data and returns it.
type hashFunc func(data []byte) []byte

// hashRegistry maps a normalized algorithm name to its digest function. Names
// are matched case-insensitively and with surrounding whitespace trimmed.
var hashRegistry = map[string]hashFunc{
	"sha256": func(data []byte) []byte { sum := sha256.Sum256(data); return sum[:] },
	"sha1":   func(data []byte) []byte { sum := sha1.Sum(data); return sum[:] },
	"md5":    func(data []byte) []byte { sum := md5.Sum(data); return sum[:] },
	"sha512": func(data []byte) []byte { sum := sha512.Sum512(data); return sum[:] },
	"sha3-256": func(data []byte) []byte {
		sum := sha3.Sum256(data)
		return sum[:]
	},
	"blake2b-256": func(data []byte) []byte {
		sum := blake2b.Sum256(data)
		return sum[:]
	},
}

// normalizeHashCheck resolves a raw hash_check value into a registry key, or
// "" if hashing is disabled. It accepts the same "auto"/"all"/"none"/""
// vocabulary the rest of the pattern resolver uses for disabled-like values,
// collapsing them all to disabled except that "auto"/"all" pick the default
// algorithm (sha256, matching the teacher's default digest).
func normalizeHashCheck(raw string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))

	switch trimmed {
	case "", "none", "no", "false":
		return "", nil
	case "auto", "all", "true", "yes":
		return "sha256", nil
	}

	if _, ok := hashRegistry[trimmed]; !ok {
		return "", ErrInvalidHashAlgorithm
	}
	return trimmed, nil
}

// ComputeHash returns the digest of data under the named algorithm. The name
// must already be normalized (as returned by normalizeHashCheck); an empty
// name means hashing was disabled and this should not be called.
func ComputeHash(data []byte, algorithm string) ([]byte, error) {
	if algorithm == "" {
		return nil, ErrShouldNotComputeHash
	}
	fn, ok := hashRegistry[algorithm]
	if !ok {
		return nil, ErrInvalidHashAlgorithm
	}
	return fn(data), nil
}

// HashSize returns the digest length, in bytes, of the named algorithm.
func HashSize(algorithm string) (int, error) {
	digest, err := ComputeHash([]byte(""), algorithm)
	if err != nil {
		return 0, err
	}
	return len(digest), nil
}
