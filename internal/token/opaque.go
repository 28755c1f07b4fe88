// Package token generates opaque session tokens. A token is 128 bits of
// randomness rendered as a 36-character UUID string; it carries no
// information about the user it resolves to.
package token

import (
	"github.com/google/uuid"

	"github.com/fileshelf/fileshelf-server/internal/model"
)

var _ model.TokenGenerator = (*Opaque)(nil)

// Opaque generates unguessable random tokens.
type Opaque struct{}

// NewOpaque creates a token generator.
func NewOpaque() *Opaque {
	return &Opaque{}
}

// NewToken returns a fresh random token.
func (o *Opaque) NewToken() string {
	return uuid.NewString()
}
