package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCumulativeValue(t *testing.T) {
	var s Scorer
	assert.Equal(t, 0.0, s.Value())

	assert.Equal(t, 0.6, s.Record(3, 5))
	assert.Equal(t, 0.57, s.Record(1, 2))

	c, n := s.Totals()
	assert.Equal(t, 4, c)
	assert.Equal(t, 7, n)
	assert.Equal(t, []float64{0.6, 0.57}, s.Trace())
}

func TestTrendOf(t *testing.T) {
	assert.Equal(t, TrendNone, TrendOf(nil))
	assert.Equal(t, TrendNone, TrendOf([]float64{0.4}))
	assert.Equal(t, TrendImproving, TrendOf([]float64{0.40, 0.57}))
	assert.Equal(t, TrendConsistent, TrendOf([]float64{0.57, 0.57}))
	assert.Equal(t, TrendSlipping, TrendOf([]float64{0.57, 0.40}))
}

func TestBandOfBoundaries(t *testing.T) {
	cases := []struct {
		v    float64
		want Band
	}{
		{0, BandImprove},
		{0.5, BandImprove},
		{0.51, BandFair},
		{0.7, BandFair},
		{0.71, BandGreat},
		{0.85, BandGreat},
		{0.86, BandPro},
		{1, BandPro},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BandOf(c.v), "v=%v", c.v)
	}
}

func TestMessage(t *testing.T) {
	var s Scorer
	s.Record(1, 2)
	assert.Equal(t, "Spybot's review of your skill: 50%.", s.Message(false))

	s.Record(2, 2)
	assert.Equal(t, "Spybot's review of your skill: 75%. You're improving!", s.Message(false))
	assert.Equal(t, "Spybot's review of your skill: 75%. "+BandMessage(BandGreat), s.Message(true))
}
