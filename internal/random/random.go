// Package random draws the sleep interval for each loop iteration.
package random

import "math/rand/v2"

const (
	Min = 2000
	Max = 5000
)

var intN = rand.IntN

// Int returns a uniformly distributed integer in the closed range [Min, Max].
// The min and max arguments are accepted for compatibility but not used:
// callers always get the fixed demo range.
func Int(min, max int) int {
	return intN(Max-Min+1) + Min
}
