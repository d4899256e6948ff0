// Package ticketid mints human-auditable ticket identifiers of the form
// TKT-<unix-millis>-<9 random base36 chars>. The timestamp keeps ids roughly
// time-ordered; the random suffix makes collisions astronomically unlikely.
// Uniqueness is still enforced by the tickets table's unique constraint, with
// the issuer retrying on collision.
package ticketid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const (
	prefix       = "TKT"
	suffixLen    = 9
	base36Digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// New returns a fresh ticket identifier.
func New() (string, error) {
	suffix, err := randomSuffix(suffixLen)
	if err != nil {
		return "", fmt.Errorf("ticketid: %w", err)
	}

	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix), nil
}

func randomSuffix(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(n)
	for _, b := range buf {
		sb.WriteByte(base36Digits[int(b)%len(base36Digits)])
	}

	return sb.String(), nil
}
