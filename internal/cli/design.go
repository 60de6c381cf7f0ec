// internal/cli/design.go
package cli

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"oligostan/internal/cliutil"
	"oligostan/internal/config"
	"oligostan/internal/filter"
	"oligostan/internal/pipeline"
	"oligostan/internal/writers"
)

// designOptions are the flags that are not design settings.
type designOptions struct {
	outDir  string
	format  string
	workers int
}

func (a *app) designCommand() *cobra.Command {
	var opts designOptions
	cmd := &cobra.Command{
		Use:   "design [flags] FASTA...",
		Short: "Design probes for every sequence in the given FASTA files",
		Long: `Design probes for every sequence in the given FASTA files.

Each sequence is read as the target (mRNA) strand; probes are placed on its
reverse complement. For an input genes.fa the report is written to
<out-dir>/Probes_genes/ as Probes_genes_ALL and Probes_genes_FILT. Use "-"
as input to read stdin, and --out-dir - to stream the accepted probes to
stdout.`,
		Example: `  oligostan design genes.fa
  oligostan design --dg-sweep=-36:-28:1 --min-probes 24 genes.fa.gz
  oligostan design --masking --masker dustmasker --format fasta --out-dir - genes.fa`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("design: at least one FASTA file is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.bindSettings(cmd); err != nil {
				return err
			}
			cfg, err := a.load()
			if err != nil {
				return err
			}
			files, err := cliutil.ExpandInputs(args)
			if err != nil {
				return usageError{err}
			}
			return runDesign(cmd.Context(), cmd, cfg, opts, files)
		},
	}
	fs := cmd.Flags()
	addSettingsFlags(fs)
	fs.StringVarP(&opts.outDir, "out-dir", "o", ".", `report directory ("-" for stdout)`)
	fs.StringVarP(&opts.format, "format", "f", "tsv", "report format: "+strings.Join(writers.Names(), ", "))
	fs.IntVarP(&opts.workers, "workers", "j", runtime.GOMAXPROCS(0), "sequences designed concurrently")
	return cmd
}

func runDesign(ctx context.Context, cmd *cobra.Command, cfg config.Config, opts designOptions, files []string) error {
	lg := loggerFromContext(ctx)

	if _, err := writers.Lookup(opts.format); err != nil {
		return usageError{err}
	}
	if opts.workers < 1 {
		return usagef("workers %d < 1", opts.workers)
	}
	points, err := cfg.SetPoints()
	if err != nil {
		return err
	}
	var masker filter.Masker
	if cfg.Masking {
		if masker, err = cfg.NewMasker(); err != nil {
			return usageError{err}
		}
	}
	runner, err := pipeline.New(pipeline.Config{
		Design:    cfg.Design(cfg.DesiredDG),
		Annotate:  cfg.Annotate(),
		Masker:    masker,
		MinProbes: cfg.MinProbes,
		Workers:   opts.workers,
		Logger:    lg,
	})
	if err != nil {
		return usageError{err}
	}
	lg.Debug("settings", "length", fmt.Sprintf("%d..%d", cfg.MinLength, cfg.MaxLength),
		"min-score", cfg.MinScore, "set-points", len(points), "workers", opts.workers)

	var failed, skipped int
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := designFile(ctx, cmd, lg, runner, cfg.Masking, opts, path, points)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lg.Error("design failed", "file", path, "err", err)
			failed++
			continue
		}
		skipped += n
	}
	switch {
	case failed > 0:
		return fmt.Errorf("%d of %d inputs failed", failed, len(files))
	case skipped > 0:
		return fmt.Errorf("%d sequences skipped", skipped)
	}
	return nil
}

// designFile designs and reports one input. It returns the number of
// sequences that were skipped.
func designFile(ctx context.Context, cmd *cobra.Command, lg *log.Logger, r *pipeline.Runner, masking bool, opts designOptions, path string, points []float64) (int, error) {
	prog := newProgress(lg)
	fr, err := r.File(ctx, path, points)
	if err != nil {
		return 0, err
	}
	if opts.outDir == "-" {
		if err := writers.WriteStream(cmd.OutOrStdout(), opts.format, fr.Views, masking); err != nil {
			return 0, err
		}
	} else {
		paths, err := writers.WriteReport(opts.outDir, fr.Base, opts.format, fr.Views, masking)
		if err != nil {
			return 0, err
		}
		lg.Debug("wrote report", "files", paths)
	}
	prog.done("designed "+path,
		"sequences", len(fr.Results), "probes", len(fr.Views.All),
		"accepted", len(fr.Views.Filtered), "dg", fr.DesiredDG)
	return len(fr.Skipped), nil
}
