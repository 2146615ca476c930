// Package password provides one-way salted password hashing backed by bcrypt.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when no cost is configured.
// The digest self-describes its cost, so raising this later does not break
// previously stored hashes.
const DefaultCost = 10

var errHashFailed = errors.New("could not create credential")

// Hasher hashes and compares passwords with a fixed bcrypt cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given cost. Out-of-range costs fall
// back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash produces a randomized salted digest of plaintext. The returned error
// never contains the plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", errHashFailed
	}
	return string(digest), nil
}

// Compare reports whether plaintext re-hashes to digest under the digest's
// own parameters. bcrypt's comparison is constant-time.
func (h *Hasher) Compare(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
