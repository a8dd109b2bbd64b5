package session

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	readings "powerplan/internal/readings/domain"
)

// Session owns one uploaded reading set. The set is immutable for the
// session's lifetime; derived intervals and estimates are recomputed from
// it on every request and never cached here.
type Session struct {
	ID        string
	CreatedAt time.Time
	Readings  []readings.Reading
}

// NewSessionID returns a random 128-bit hex identifier.
func NewSessionID() string {
	var buf [16]byte
	_, _ = rand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}
