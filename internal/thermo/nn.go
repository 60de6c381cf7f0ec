// internal/thermo/nn.go
// Nearest-neighbor ΔG37 for RNA/DNA hybrid duplexes.
// Units: kcal/mol at 37 °C.
//
// A window's ΔG37 is the plain sum of its length-1 dinucleotide stacking
// terms; no initiation or terminal penalties are added.
//
// This package has no app/output deps; design can import it cleanly.

package thermo

import (
	"fmt"
	"sort"
)

// Table holds one stacking ΔG37 per ordered dinucleotide, indexed by
// code(first)*4 + code(second) with A=0, C=1, G=2, T=3.
type Table [16]float64

var bases = [4]byte{'A', 'C', 'G', 'T'}

var code [256]int8

func init() {
	for i := range code {
		code[i] = -1
	}
	code['A'], code['C'], code['G'], code['T'] = 0, 1, 2, 3
	code['a'], code['c'], code['g'], code['t'] = 0, 1, 2, 3
	code['U'], code['u'] = 3, 3
}

// Reference hybrid stacking values (5'→3' probe dimers).
var defaultDG37 = map[string]float64{
	"AA": -0.2, "AC": -1.5, "AG": -0.9, "AT": -1.0,
	"CA": -1.0, "CC": -2.2, "CG": -1.2, "CT": -1.4,
	"GA": -0.8, "GC": -2.4, "GG": -1.5, "GT": -1.0,
	"TA": -0.3, "TC": -1.4, "TG": -1.0, "TT": -0.4,
}

// DefaultTable returns the reference stacking table.
func DefaultTable() Table {
	t, _ := NewTable(defaultDG37)
	return t
}

// DefaultValues returns a copy of the reference table keyed by dimer.
func DefaultValues() map[string]float64 {
	out := make(map[string]float64, len(defaultDG37))
	for k, v := range defaultDG37 {
		out[k] = v
	}
	return out
}

// NewTable builds a Table from dimer keys ("AC", "gu", ...). All 16 ordered
// pairs must be present exactly once.
func NewTable(values map[string]float64) (Table, error) {
	var t Table
	var seen [16]bool
	for k, v := range values {
		if len(k) != 2 || code[k[0]] < 0 || code[k[1]] < 0 {
			return t, fmt.Errorf("thermo: bad dimer key %q", k)
		}
		i := int(code[k[0]])*4 + int(code[k[1]])
		if seen[i] {
			return t, fmt.Errorf("thermo: duplicate dimer %q", k)
		}
		seen[i] = true
		t[i] = v
	}
	var missing []string
	for i, ok := range seen {
		if !ok {
			missing = append(missing, string([]byte{bases[i/4], bases[i%4]}))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return t, fmt.Errorf("thermo: missing dimers %v", missing)
	}
	return t, nil
}

// Stack returns the stacking term for dimer ab.
func (t *Table) Stack(a, b byte) (float64, bool) {
	ca, cb := code[a], code[b]
	if ca < 0 || cb < 0 {
		return 0, false
	}
	return t[int(ca)*4+int(cb)], true
}

// Steps returns the len(seq)-1 stacking terms of seq in order.
func Steps(seq string, t *Table) ([]float64, error) {
	if len(seq) < 2 {
		return nil, nil
	}
	out := make([]float64, len(seq)-1)
	for i := 0; i < len(seq)-1; i++ {
		v, ok := t.Stack(seq[i], seq[i+1])
		if !ok {
			return nil, fmt.Errorf("thermo: non-ACGT dimer %q at %d", seq[i:i+2], i+1)
		}
		out[i] = v
	}
	return out, nil
}

// WindowSums sums length-1 consecutive steps for every window start.
// steps belongs to a sequence of len(steps)+1 bases; the result has
// n-length+1 entries, or none when length exceeds n.
func WindowSums(steps []float64, length int) []float64 {
	n := len(steps) + 1
	if length < 1 || length > n {
		return nil
	}
	out := make([]float64, n-length+1)
	SumInto(out, steps, length)
	return out
}

// SumInto fills dst[s] with the sum of steps[s:s+length-1]. Each window is
// summed left to right on its own so values do not depend on neighbours.
// len(dst)+length-2 must not exceed len(steps).
func SumInto(dst, steps []float64, length int) {
	for s := range dst {
		var dg float64
		for _, v := range steps[s : s+length-1] {
			dg += v
		}
		dst[s] = dg
	}
}

// EnergyProfile returns ΔG37 for every window of the given length over seq.
func EnergyProfile(seq string, length int, t *Table) ([]float64, error) {
	if length > len(seq) || length < 1 {
		return []float64{}, nil
	}
	steps, err := Steps(seq, t)
	if err != nil {
		return nil, err
	}
	return WindowSums(steps, length), nil
}

// DuplexEnergy is ΔG37 of the whole oligo.
func DuplexEnergy(seq string, t *Table) (float64, error) {
	p, err := EnergyProfile(seq, len(seq), t)
	if err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	return p[0], nil
}
