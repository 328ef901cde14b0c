// Package idgen produces client identifiers.
package idgen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Scheme names an identifier generator.
type Scheme string

const (
	SchemeHash Scheme = "hash"
	SchemeUUID Scheme = "uuid"
)

// Generator returns a fresh identifier for a client with the given contact
// details. Uniqueness is not checked.
type Generator interface {
	Generate(email, mobile string) string
}

// New returns the generator for scheme. An empty scheme selects SchemeHash.
func New(scheme Scheme) (Generator, error) {
	switch scheme {
	case SchemeHash, "":
		return NewHashGenerator(), nil
	case SchemeUUID:
		return UUIDGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q", scheme)
	}
}

// HashGenerator hashes email, mobile, the current time in milliseconds and
// a random number below 1000 with SHA-256.
type HashGenerator struct {
	now  func() time.Time
	rand func() int
}

func NewHashGenerator() *HashGenerator {
	return &HashGenerator{
		now:  time.Now,
		rand: func() int { return rand.IntN(1000) },
	}
}

func (g *HashGenerator) Generate(email, mobile string) string {
	seed := email + mobile +
		strconv.FormatInt(g.now().UnixMilli(), 10) +
		strconv.Itoa(g.rand())
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// UUIDGenerator ignores its inputs and returns a random UUID.
type UUIDGenerator struct{}

func (UUIDGenerator) Generate(string, string) string {
	return uuid.NewString()
}
