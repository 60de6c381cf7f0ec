// internal/output/fasta.go
package output

import (
	"fmt"
	"io"

	"oligostan/internal/annotate"
)

// WriteFASTA writes one record per probe, numbered per input sequence in
// the order given.
func WriteFASTA(w io.Writer, recs []annotate.Record) error {
	idx := make(map[string]int)
	for _, r := range recs {
		if r.Seq == "" {
			continue
		}
		idx[r.Name]++
		if _, err := fmt.Fprintf(
			w,
			">%s_%d start=%d end=%d len=%d dg37=%.2f pnas=%d\n%s\n",
			r.Name, idx[r.Name], r.Start, r.End, r.Length, r.DG37, r.PNASCount, r.Seq,
		); err != nil {
			return err
		}
	}
	return nil
}
