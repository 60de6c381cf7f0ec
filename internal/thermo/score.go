// internal/thermo/score.go
package thermo

import "math"

// Score maps a ΔG37 value to [0,1] relative to the desired set-point:
// 1 - |v-desired|/|desired|, floored at 0. A zero set-point uses a scale
// of 1 kcal/mol. NaN stays NaN.
func Score(v, desired float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	scale := math.Abs(desired)
	if scale == 0 {
		scale = 1
	}
	s := 1 - math.Abs(v-desired)/scale
	if s < 0 {
		return 0
	}
	return s
}

// ScoreTransform applies Score element-wise.
func ScoreTransform(values []float64, desired float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = Score(v, desired)
	}
	return out
}
