// internal/pretty/pretty.go
package pretty

import (
	"fmt"
	"io"
	"strings"

	"oligostan/internal/annotate"
	"oligostan/internal/oligo"
)

// Options control the ASCII rendering.
type Options struct {
	// Glyph under a Watson-Crick pair; Mismatch under anything else.
	ExactGlyph    string
	MismatchGlyph string

	// Append the screen outcomes to the summary line.
	ShowFilters bool
}

// DefaultOptions is the look used by the "pretty" report format.
var DefaultOptions = Options{
	ExactGlyph:    "|",
	MismatchGlyph: " ",
	ShowFilters:   true,
}

const linePrefix = "# "

func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// pairLine marks each column of top (5'→3') and bottom (3'→5') that pairs.
func pairLine(top, bottom string, opt Options) string {
	n := len(top)
	if len(bottom) < n {
		n = len(bottom)
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		c := oligo.RevComp(bottom[i : i+1])
		if c != "N" && c[0] == top[i] {
			b.WriteString(opt.ExactGlyph)
		} else {
			b.WriteString(opt.MismatchGlyph)
		}
	}
	return b.String()
}

func flag(ok bool) string {
	if ok {
		return "+"
	}
	return "-"
}

// RenderRecord draws a probe under the target region it hybridizes to.
// idx numbers probes within a sequence, from 1.
func RenderRecord(r annotate.Record, idx int, masking bool, opt Options) string {
	const (
		prefixPlus  = "5'-"
		suffixPlus  = "-3'"
		prefixMinus = "3'-"
		suffixMinus = "-5'"
	)
	if opt.ExactGlyph == "" {
		opt.ExactGlyph = DefaultOptions.ExactGlyph
	}
	if opt.MismatchGlyph == "" {
		opt.MismatchGlyph = DefaultOptions.MismatchGlyph
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s #%d  %d..%d (%d nt)  dG37 %.2f  score %.3f  PNAS %d/5",
		linePrefix, r.Name, idx, r.Start, r.End, r.Length, r.DG37, r.Score, r.PNASCount)
	if opt.ShowFilters {
		fmt.Fprintf(&b, "  gc%s pnas%s", flag(r.GCPass), flag(r.PNASPass))
		if masking {
			fmt.Fprintf(&b, " mask%s", flag(r.MaskPass))
		}
		if r.Accepted(masking) {
			b.WriteString("  accepted")
		}
	}
	b.WriteByte('\n')

	target := oligo.RevComp(r.Seq)
	probe := reverseString(r.Seq)
	pad := strings.Repeat(" ", len(prefixPlus))
	fmt.Fprintf(&b, "%s%s%s%s  target\n", linePrefix, prefixPlus, target, suffixPlus)
	fmt.Fprintf(&b, "%s%s%s\n", linePrefix, pad, pairLine(target, probe, opt))
	fmt.Fprintf(&b, "%s%s%s%s  probe\n\n", linePrefix, prefixMinus, probe, suffixMinus)
	return b.String()
}

// Write renders every record, numbering probes per sequence.
func Write(w io.Writer, recs []annotate.Record, masking bool, opt Options) error {
	idx := make(map[string]int)
	for _, r := range recs {
		idx[r.Name]++
		if _, err := io.WriteString(w, RenderRecord(r, idx[r.Name], masking, opt)); err != nil {
			return err
		}
	}
	return nil
}
