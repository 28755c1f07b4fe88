// Package security provides the one-way password digest used for
// credentials.
package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/fileshelf/fileshelf-server/internal/model"
)

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt hashes passwords with the bcrypt KDF.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a hasher at the library's default cost.
func NewBcrypt() *Bcrypt {
	return &Bcrypt{cost: bcrypt.DefaultCost}
}

// Hash computes the digest of password.
func (b *Bcrypt) Hash(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// Compare checks password against a stored digest. Any mismatch is
// reported as model.ErrUnauthorized.
func (b *Bcrypt) Compare(hash []byte, password string) error {
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return model.ErrUnauthorized
	}
	return nil
}
