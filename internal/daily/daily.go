// internal/daily/daily.go
//
// Package daily derives the deterministic board seed for the daily game, so
// every player who asks for today's board gets the same words.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns HMAC(salt, YYYY-MM-DD) folded to a uint64.
func Seed(date time.Time, salt string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}

// Rand returns a generator seeded for the given date.
func Rand(date time.Time, salt string) *rand.Rand {
	s := Seed(date, salt)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}
