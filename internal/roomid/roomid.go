// Package roomid generates short shareable room codes. Codes use
// Crockford's base32 alphabet so they survive being read out loud:
// no i, l, o or u, and case does not matter.
package roomid

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in a room code. Eight characters
// give 40 bits of entropy, plenty for the lifetime of a room registry.
const Length = 8

// RandSource is the randomness hook; tests inject a deterministic one.
type RandSource interface {
	Intn(n int) int
}

// Generator produces room codes with configurable randomness.
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a generator. A nil RandSource uses crypto/rand.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate creates a new room code using crypto/rand.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new room code using the generator's RandSource.
func (g *Generator) Generate() string {
	buf := make([]byte, Length)
	if g.randSource != nil {
		for i := range buf {
			buf[i] = byte(g.randSource.Intn(256))
		}
	} else {
		if _, err := rand.Read(buf); err != nil {
			panic("failed to generate random bytes: " + err.Error())
		}
	}
	// 256 is a multiple of 32, so masking introduces no bias.
	for i := range buf {
		buf[i] = alphabet[buf[i]&0x1f]
	}
	return string(buf)
}

// Normalize lowercases a code and maps the easily confused characters
// onto their canonical Crockford equivalents.
func Normalize(id string) string {
	id = strings.ToLower(id)
	r := strings.NewReplacer("i", "1", "l", "1", "o", "0")
	return r.Replace(id)
}

// Validate checks that a (normalized) room code is well formed.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("room code must be exactly %d characters, got %d", Length, len(id))
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
