package password

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt hashes credentials with a fixed cost. Passwords are digested with
// SHA-256 first, so any length is accepted and every byte counts, past
// bcrypt's 72 byte input limit.
type Bcrypt struct {
	cost int
}

func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(password string) ([]byte, error) {
	const op = "lib.password.Hash"

	hash, err := bcrypt.GenerateFromPassword(digest(password), b.cost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return hash, nil
}

func (b *Bcrypt) Compare(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, digest(password)) == nil
}

// digest is base64 encoded so bcrypt never sees a NUL byte.
func digest(password string) []byte {
	sum := sha256.Sum256([]byte(password))

	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])

	return out
}
