// internal/board/factor.go
//
// Board sizing helpers.
//   - FactorPair picks the rows × columns layout closest to a square.
//   - IsNearlySquare / NearlySquareCounts define which card counts are offered.

package board

import "math"

// MaxCards is the largest card count offered to players.
const MaxCards = 100

// DefaultCards is the suggested starting board size.
const DefaultCards = 15

// FactorPair returns (rows, cols) with rows*cols == n and rows the largest
// divisor of n not exceeding sqrt(n). n must be positive.
func FactorPair(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	r := isqrt(n)
	if r*r == n {
		return r, r
	}
	for d := r; d >= 1; d-- {
		if n%d == 0 {
			return d, n / d
		}
	}
	return 1, n
}

// IsNearlySquare reports whether n has a factor pair (j, n/j) whose larger
// side is at most twice the smaller one.
func IsNearlySquare(n int) bool {
	if n <= 0 {
		return false
	}
	for j := 1; j*j <= n; j++ {
		if n%j != 0 {
			continue
		}
		if n/j <= 2*j {
			return true
		}
	}
	return false
}

// NearlySquareCounts lists every nearly-square card count in 1..max.
func NearlySquareCounts(max int) []int {
	var out []int
	for n := 1; n <= max; n++ {
		if IsNearlySquare(n) {
			out = append(out, n)
		}
	}
	return out
}

// isqrt is floor(sqrt(n)) corrected for float rounding.
func isqrt(n int) int {
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
