package task

import (
	"math"
	"strconv"
	"strings"
)

// DefaultRelTol is the default relative tolerance for answer comparison.
const DefaultRelTol = 1e-9

// Evaluator scores a proposed numeric answer against the ground truth using
// approximate equality: |a-b| <= max(RelTol*max(|a|,|b|), AbsTol).
type Evaluator struct {
	RelTol float64
	AbsTol float64
}

// DefaultEvaluator returns an Evaluator with the default tolerances.
func DefaultEvaluator() Evaluator {
	return Evaluator{RelTol: DefaultRelTol}
}

// Close reports whether a and b are approximately equal under the
// configured tolerances.
func (e Evaluator) Close(a, b float64) bool {
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	diff := math.Abs(a - b)
	return diff <= math.Max(e.RelTol*math.Max(math.Abs(a), math.Abs(b)), e.AbsTol)
}

// Score parses action as a float and compares it to truth. Any parse
// failure scores 0; approximate equality scores 1.
func (e Evaluator) Score(action string, truth float64) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(action), 64)
	if err != nil {
		return 0
	}
	if e.Close(value, truth) {
		return 1
	}
	return 0
}
