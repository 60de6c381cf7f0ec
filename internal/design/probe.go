// internal/design/probe.go
package design

// Probe is one placed oligo on the working (reverse-complemented) strand.
type Probe struct {
	Length int
	Score  float64
	Start  int    // 0-based on the working strand
	Seq    string // working-strand substring, upper-case
}

// End is the exclusive working-strand end.
func (p Probe) End() int { return p.Start + p.Length }

// RowResult is the best length for one start position. Rows where two or
// more lengths tie at the maximum, or where nothing scores, carry
// Winner=false and never pass a score threshold.
type RowResult struct {
	Length int
	Score  float64
	Winner bool
}

// NoWinner is the tagged tie/empty outcome.
var NoWinner = RowResult{}

// Passes reports whether r is a winner scoring at least min.
func (r RowResult) Passes(min float64) bool {
	return r.Winner && r.Score >= min
}
