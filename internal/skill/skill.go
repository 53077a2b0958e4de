// internal/skill/skill.go
//
// Spybot's running review of the player's hinting skill.
//   - Skill value: cumulative correct / cumulative offered guesses, 2 decimals.
//   - Trend: compares the two most recent skill values (from turn 2 onward).
//   - Band: fixed verdict once the board is finished.

package skill

import (
	"fmt"
	"math"
)

// Trend describes how the skill value moved since the previous turn.
type Trend string

const (
	TrendNone       Trend = ""
	TrendImproving  Trend = "improving"
	TrendSlipping   Trend = "slipping"
	TrendConsistent Trend = "consistent"
)

// Band is the end-of-game verdict.
type Band string

const (
	BandImprove Band = "improve"
	BandFair    Band = "fair"
	BandGreat   Band = "great"
	BandPro     Band = "pro"
)

// Scorer accumulates guess counts across turns.
type Scorer struct {
	correct int
	total   int
	trace   []float64
}

// Record adds one turn's counts and returns the new skill value.
func (s *Scorer) Record(correct, total int) float64 {
	s.correct += correct
	s.total += total
	v := s.Value()
	s.trace = append(s.trace, v)
	return v
}

// Value is the cumulative ratio rounded to 2 decimals; 0 before any guess.
func (s *Scorer) Value() float64 {
	if s.total == 0 {
		return 0
	}
	return round2(float64(s.correct) / float64(s.total))
}

// Totals returns cumulative (correct, offered) guesses.
func (s *Scorer) Totals() (correct, total int) { return s.correct, s.total }

// Trace returns a copy of the per-turn skill values.
func (s *Scorer) Trace() []float64 { return append([]float64(nil), s.trace...) }

// Trend compares the last two recorded values.
func (s *Scorer) Trend() Trend {
	return TrendOf(s.trace)
}

// Message is the review shown after a turn. Once the game is complete the
// band verdict replaces the trend remark.
func (s *Scorer) Message(complete bool) string {
	v := s.Value()
	msg := fmt.Sprintf("Spybot's review of your skill: %d%%.", int(math.Round(v*100)))
	if complete {
		return msg + " " + BandMessage(BandOf(v))
	}
	if r := TrendMessage(s.Trend()); r != "" {
		msg += " " + r
	}
	return msg
}

// TrendOf derives the trend of a skill trace.
func TrendOf(trace []float64) Trend {
	if len(trace) < 2 {
		return TrendNone
	}
	prev, cur := trace[len(trace)-2], trace[len(trace)-1]
	switch {
	case cur > prev:
		return TrendImproving
	case cur < prev:
		return TrendSlipping
	default:
		return TrendConsistent
	}
}

// BandOf maps a final skill value to its band:
// ≤0.50, (0.50,0.70], (0.70,0.85], >0.85.
func BandOf(v float64) Band {
	switch {
	case v <= 0.50:
		return BandImprove
	case v <= 0.70:
		return BandFair
	case v <= 0.85:
		return BandGreat
	default:
		return BandPro
	}
}

// TrendMessage is the remark shown after a mid-game turn.
func TrendMessage(t Trend) string {
	switch t {
	case TrendImproving:
		return "You're improving!"
	case TrendSlipping:
		return "You're slipping!"
	case TrendConsistent:
		return "You're consistent!"
	}
	return ""
}

// BandMessage is the final verdict for a finished board.
func BandMessage(b Band) string {
	switch b {
	case BandImprove:
		return "Well done. You've finished the board. Think of ways you can improve for next time."
	case BandFair:
		return "You're doing well enough, but there's still room for improvement."
	case BandGreat:
		return "You're doing great! You're on track to being a pro."
	default:
		return "You're either a professional or a cheater. You should be proud or ashamed!"
	}
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
