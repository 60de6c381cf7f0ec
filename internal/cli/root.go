// internal/cli/root.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"oligostan/internal/config"
	"oligostan/internal/version"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsage     = 2
	ExitCancelled = 130
)

// usageError marks bad flags, arguments or settings.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, a ...any) error {
	return usageError{fmt.Errorf(format, a...)}
}

// app is the state shared by the subcommands of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
	verbose    bool
	quiet      bool
}

// NewRootCommand builds the oligostan command tree. Settings are read
// through a fresh viper instance so runs do not share state.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "oligostan",
		Short: "Design smFISH probe sets from target transcripts",
		Long: `oligostan places non-overlapping single-molecule FISH probes on each
target in a FASTA file. Candidates are scored by how close their duplex
ΔG37 is to a set-point, then screened by GC content, the five PNAS
composition rules and optional low-complexity masking.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			lg := newLogger(cmd.ErrOrStderr(), logLevel(a.verbose, a.quiet))
			cmd.SetContext(withLogger(cmd.Context(), lg))
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("oligostan version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "settings file (YAML, TOML or JSON)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "log errors only")

	root.AddCommand(a.designCommand())
	root.AddCommand(a.configCommand())
	root.AddCommand(versionCommand())
	return root
}

// load merges defaults, the settings file, environment and flags.
func (a *app) load() (config.Config, error) {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return cfg, usageError{err}
	}
	return cfg, nil
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "oligostan version %s\n", version.Version)
		},
	}
}

// Run executes argv and returns the process exit code.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(argv)
	err := root.ExecuteContext(ctx)
	code := ExitCode(ctx, err)
	if err != nil && code != ExitCancelled {
		fmt.Fprintf(stderr, "oligostan: %v\n", err)
		if code == ExitUsage {
			fmt.Fprintln(stderr, "Run 'oligostan --help' for usage.")
		}
	}
	return code
}

// ExitCode maps a command error to an exit status.
func ExitCode(ctx context.Context, err error) int {
	var ue usageError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled) || ctx.Err() != nil:
		return ExitCancelled
	case errors.As(err, &ue), errors.Is(err, config.ErrInvalid):
		return ExitUsage
	default:
		return ExitFailure
	}
}
