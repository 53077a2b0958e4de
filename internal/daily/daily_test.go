package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("east", 10*3600)
	ts := time.Date(2024, 3, 2, 5, 0, 0, 0, loc)
	assert.Equal(t, "2024-03-01", DateKey(ts))
}

func TestSeedDeterministicPerDay(t *testing.T) {
	morning := time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	next := time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, Seed(morning, "s"), Seed(evening, "s"))
	assert.NotEqual(t, Seed(morning, "s"), Seed(next, "s"))
	assert.NotEqual(t, Seed(morning, "s"), Seed(morning, "other"))

	a, b := Rand(morning, "s"), Rand(evening, "s")
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}
