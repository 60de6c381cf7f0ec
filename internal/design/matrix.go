// internal/design/matrix.go
package design

import (
	"math"

	"oligostan/internal/thermo"
)

// Matrix is the position × length candidate table for one sequence. Both
// planes live in one column-major arena: column k (length MinLen+k) is
// energy[k*Rows : (k+1)*Rows].
type Matrix struct {
	Rows   int
	Cols   int
	MinLen int

	energy []float64
	score  []float64
}

// BuildMatrix fills energies and scores for every start that can host the
// longest probe. steps are the n-1 stacking terms of the sequence.
// Shorter lengths are truncated to the same row count so rows stay
// comparable across columns.
func BuildMatrix(steps []float64, n int, c Config) *Matrix {
	cols := c.MaxLen - c.MinLen + 1
	rows := n - c.MaxLen + 1
	if rows < 0 || cols < 1 {
		rows = 0
	}
	m := &Matrix{Rows: rows, Cols: cols, MinLen: c.MinLen}
	if rows == 0 {
		return m
	}
	arena := make([]float64, 2*rows*cols)
	m.energy, m.score = arena[:rows*cols], arena[rows*cols:]

	for k := 0; k < cols; k++ {
		e := m.energy[k*rows : (k+1)*rows]
		thermo.SumInto(e, steps, c.MinLen+k)
		s := m.score[k*rows : (k+1)*rows]
		for r, v := range e {
			s[r] = thermo.Score(v, c.Desired)
		}
	}
	return m
}

// Energy returns ΔG37 at (row, col), NaN outside the table.
func (m *Matrix) Energy(r, k int) float64 {
	if r < 0 || r >= m.Rows || k < 0 || k >= m.Cols {
		return math.NaN()
	}
	return m.energy[k*m.Rows+r]
}

// Score returns the match score at (row, col), NaN outside the table.
func (m *Matrix) Score(r, k int) float64 {
	if r < 0 || r >= m.Rows || k < 0 || k >= m.Cols {
		return math.NaN()
	}
	return m.score[k*m.Rows+r]
}

// Resolve picks the best length per row. NaN cells are skipped; a row with
// a tied maximum, no defined cell or an all-zero maximum is NoWinner.
func (m *Matrix) Resolve() []RowResult {
	out := make([]RowResult, m.Rows)
	for r := 0; r < m.Rows; r++ {
		best, bestK, ties := 0.0, -1, 0
		for k := 0; k < m.Cols; k++ {
			s := m.score[k*m.Rows+r]
			switch {
			case math.IsNaN(s):
				continue
			case bestK < 0 || s > best:
				best, bestK, ties = s, k, 1
			case s == best:
				ties++
			}
		}
		if bestK < 0 || ties > 1 || best == 0 {
			out[r] = NoWinner
			continue
		}
		out[r] = RowResult{Length: m.MinLen + bestK, Score: best, Winner: true}
	}
	return out
}
