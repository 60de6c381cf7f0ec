// internal/pipeline/sweep.go
package pipeline

import (
	"context"
	"errors"

	"oligostan/internal/fasta"
)

// Sweep is the chosen set-point and the results it produced.
type Sweep struct {
	DesiredDG float64
	Accepted  int
	Results   []Result
}

// Best runs recs at each set-point and keeps the one yielding the most
// accepted probes. The first set-point wins ties.
func (r *Runner) Best(ctx context.Context, recs []fasta.Record, points []float64) (Sweep, error) {
	if len(points) == 0 {
		return Sweep{}, errors.New("pipeline: no set-points")
	}
	masking := r.cfg.Annotate.Masking
	best := Sweep{Accepted: -1}
	for _, dg := range points {
		res, err := r.Run(ctx, recs, dg)
		if err != nil {
			return Sweep{}, err
		}
		n := 0
		for _, x := range res {
			n += x.Accepted(masking)
		}
		if len(points) > 1 {
			r.log.Debug("set-point", "dg", dg, "accepted", n)
		}
		if n > best.Accepted {
			best = Sweep{DesiredDG: dg, Accepted: n, Results: res}
		}
	}
	return best, nil
}
