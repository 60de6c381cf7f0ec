// internal/design/select.go
package design

import "sort"

// Select places probes left to right. Among rows that pass the score
// threshold it always takes the leftmost start at or after the cursor,
// then moves the cursor past the probe plus the spacing gap. Row index is
// the 0-based start on seq.
func Select(rows []RowResult, seq string, c Config) []Probe {
	starts := make([]int, 0, len(rows))
	for r, rr := range rows {
		if rr.Passes(c.MinScore) {
			starts = append(starts, r)
		}
	}
	if len(starts) == 0 {
		return nil
	}

	var out []Probe
	n := len(seq)
	cursor, lo := 0, 0
	for cursor < n {
		i := lo + sort.SearchInts(starts[lo:], cursor)
		if i == len(starts) {
			break
		}
		start := starts[i]
		rr := rows[start]
		end := start + rr.Length
		if end > n {
			break
		}
		out = append(out, Probe{
			Length: rr.Length,
			Score:  rr.Score,
			Start:  start,
			Seq:    seq[start:end],
		})
		cursor = end + c.Spacing
		lo = i + 1
	}
	return out
}
