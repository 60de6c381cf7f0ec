// internal/pipeline/file.go
package pipeline

import (
	"context"
	"fmt"

	"oligostan/internal/annotate"
	"oligostan/internal/fasta"
)

// FileResult is everything reported for one FASTA input.
type FileResult struct {
	Path      string
	Base      string // output name stem
	DesiredDG float64
	Results   []Result
	Views     annotate.Views
	Dropped   []string // sequences removed from Filtered by MinProbes
	Skipped   []error  // sequences that could not be designed
}

// File reads path and designs every sequence in it at the best of points.
func (r *Runner) File(ctx context.Context, path string, points []float64) (FileResult, error) {
	recs, err := fasta.ReadFile(ctx, path)
	if err != nil {
		return FileResult{}, err
	}
	if len(recs) == 0 {
		return FileResult{}, fmt.Errorf("%s: %w", path, ErrNoSequences)
	}
	sw, err := r.Best(ctx, recs, points)
	if err != nil {
		return FileResult{}, err
	}

	fr := FileResult{
		Path:      path,
		Base:      fasta.BaseName(path),
		DesiredDG: sw.DesiredDG,
		Results:   sw.Results,
	}
	var all []annotate.Record
	for _, res := range sw.Results {
		if res.Err != nil {
			r.log.Warn("skipped sequence", "file", path, "err", res.Err)
			fr.Skipped = append(fr.Skipped, res.Err)
			continue
		}
		all = append(all, res.Records...)
	}
	masking := r.cfg.Annotate.Masking
	fr.Views = annotate.Partition(all, masking)
	if r.cfg.MinProbes > 0 {
		fr.Views.Filtered, fr.Dropped = r.enforceMin(path, sw.Results, fr.Views.Filtered)
	}
	return fr, nil
}

// enforceMin removes the records of sequences with fewer than MinProbes
// accepted probes from filtered.
func (r *Runner) enforceMin(path string, results []Result, filtered []annotate.Record) ([]annotate.Record, []string) {
	masking := r.cfg.Annotate.Masking
	low := make(map[string]bool)
	var dropped []string
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if n := res.Accepted(masking); n < r.cfg.MinProbes {
			if !low[res.ID] {
				dropped = append(dropped, res.ID)
			}
			low[res.ID] = true
			r.log.Warn("too few probes", "file", path, "seq", res.ID, "accepted", n, "min", r.cfg.MinProbes)
		}
	}
	if len(low) == 0 {
		return filtered, nil
	}
	var kept []annotate.Record
	for _, rec := range filtered {
		if !low[rec.Name] {
			kept = append(kept, rec)
		}
	}
	return kept, dropped
}
