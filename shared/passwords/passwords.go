// Package passwords turns plaintext passwords into storable bcrypt secrets.
package passwords

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 10

// ErrHashingFailed is the only error Hash returns. The cause is never
// surfaced because it can echo input.
var ErrHashingFailed = errors.New("hashing failed")

type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, secret string) bool
}

type Bcrypt struct {
	cost int
}

func New(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash salts on every call, so two hashes of the same input differ.
func (b *Bcrypt) Hash(plaintext string) (string, error) {
	secret, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(secret), nil
}

// Verify reports whether plaintext produced secret. bcrypt compares in
// constant time.
func (b *Bcrypt) Verify(plaintext, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(secret), []byte(plaintext)) == nil
}
