// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"oligostan/internal/annotate"
	"oligostan/internal/design"
	"oligostan/internal/fasta"
	"oligostan/internal/filter"
	"oligostan/internal/oligo"
)

// ErrNoSequences is returned for inputs without a single FASTA record.
var ErrNoSequences = errors.New("no sequences")

// Config controls a Runner.
type Config struct {
	Design    design.Config
	Annotate  annotate.Settings
	Masker    filter.Masker // required when Annotate.Masking is set
	MinProbes int           // drop sequences with fewer accepted probes from FILT
	Workers   int           // concurrent sequences; <1 means GOMAXPROCS
	Logger    *log.Logger   // nil means log.Default()
}

// Runner designs probes for batches of sequences.
type Runner struct {
	cfg      Config
	designer *design.Designer
	log      *log.Logger
}

// New validates cfg and returns a Runner.
func New(cfg Config) (*Runner, error) {
	d, err := design.New(cfg.Design)
	if err != nil {
		return nil, err
	}
	if cfg.Annotate.Masking && cfg.Masker == nil {
		return nil, errors.New("pipeline: masking enabled without a masker")
	}
	if cfg.MinProbes < 0 {
		return nil, fmt.Errorf("pipeline: min probes %d < 0", cfg.MinProbes)
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	lg := cfg.Logger
	if lg == nil {
		lg = log.Default()
	}
	return &Runner{cfg: cfg, designer: d, log: lg}, nil
}

// Result is the outcome for one input sequence. Err is set for sequences
// that could not be designed (bad bases, masker failure); the batch still
// carries on with the rest.
type Result struct {
	ID      string
	Length  int
	Placed  int
	Records []annotate.Record
	Err     error
}

// Accepted counts the records of r that pass every active screen.
func (r Result) Accepted(masking bool) int {
	n := 0
	for _, rec := range r.Records {
		if rec.Accepted(masking) {
			n++
		}
	}
	return n
}

// Run designs every record at set-point dg. Only cancellation aborts the
// batch; per-sequence failures are reported in Result.Err.
func (r *Runner) Run(ctx context.Context, recs []fasta.Record, dg float64) ([]Result, error) {
	out := make([]Result, len(recs))
	d := r.designer.WithDesired(dg)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i := range recs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = r.one(gctx, d, recs[i], dg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Runner) one(ctx context.Context, d *design.Designer, rec fasta.Record, dg float64) Result {
	res := Result{ID: rec.ID}
	seq, err := oligo.Validate(rec.Seq)
	if err != nil {
		res.Err = fmt.Errorf("sequence %q: %w", rec.ID, err)
		return res
	}
	res.Length = len(seq)

	work := oligo.RevComp(seq)
	probes, err := d.Probes(work)
	if err != nil {
		res.Err = fmt.Errorf("sequence %q: %w", rec.ID, err)
		return res
	}
	res.Placed = len(probes)

	recs, err := annotate.Annotate(ctx, rec.ID, len(work), dg, probes, r.cfg.Annotate, r.cfg.Masker)
	if err != nil {
		res.Err = err
		return res
	}
	res.Records = recs
	r.log.Debug("designed", "seq", rec.ID, "len", res.Length, "dg", dg, "placed", res.Placed,
		"accepted", res.Accepted(r.cfg.Annotate.Masking))
	return res
}
