// internal/filter/dust.go
package filter

import "context"

// DUST is an in-process low-complexity masker using the classic DUST
// triplet score. A window of Window bases (the whole sequence when shorter)
// scores sum(c_t*(c_t-1)/2)/(l-1) over its l triplets; windows scoring
// above Level/10 have every base masked.
type DUST struct {
	Window int
	Level  int
}

// DefaultDUST mirrors dustmasker's defaults (window 64, level 20).
func DefaultDUST() *DUST { return &DUST{Window: 64, Level: 20} }

// Mask implements Masker.
func (d *DUST) Mask(ctx context.Context, seqs []string) ([]float64, error) {
	out := make([]float64, len(seqs))
	for i, s := range seqs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = d.Fraction(s)
	}
	return out, nil
}

// Fraction returns the masked fraction of s.
func (d *DUST) Fraction(s string) float64 {
	n := len(s)
	if n == 0 {
		return 0
	}
	win := d.Window
	if win <= 0 || win > n {
		win = n
	}
	thr := float64(d.Level) / 10
	masked := make([]bool, n)
	for st := 0; st+win <= n; st++ {
		if tripletScore(s[st:st+win]) > thr {
			for i := st; i < st+win; i++ {
				masked[i] = true
			}
		}
	}
	cnt := 0
	for _, m := range masked {
		if m {
			cnt++
		}
	}
	return float64(cnt) / float64(n)
}

func tripletScore(w string) float64 {
	l := len(w) - 2
	if l < 2 {
		return 0
	}
	var counts [64]int
	for i := 0; i < l; i++ {
		t, ok := tripletIndex(w[i : i+3])
		if !ok {
			continue
		}
		counts[t]++
	}
	sum := 0
	for _, c := range counts {
		sum += c * (c - 1) / 2
	}
	return float64(sum) / float64(l-1)
}

func tripletIndex(t string) (int, bool) {
	idx := 0
	for i := 0; i < 3; i++ {
		var v int
		switch t[i] {
		case 'A':
			v = 0
		case 'C':
			v = 1
		case 'G':
			v = 2
		case 'T':
			v = 3
		default:
			return 0, false
		}
		idx = idx*4 + v
	}
	return idx, true
}
