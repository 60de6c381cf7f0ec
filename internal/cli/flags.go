// internal/cli/flags.go
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"oligostan/internal/config"
	"oligostan/internal/filter"
)

// settingsFlags are the flags that map one-to-one onto config keys.
var settingsFlags = []string{
	"min-length", "max-length", "min-score", "spacing",
	"desired-dg", "dg-sweep",
	"min-gc", "max-gc", "pnas-rules",
	"masking", "masker", "masker-path", "max-masked",
	"min-probes",
}

// addSettingsFlags registers the design settings on fs, with the built-in
// defaults shown in help.
func addSettingsFlags(fs *pflag.FlagSet) {
	d := config.Default()
	fs.Int("min-length", d.MinLength, "shortest probe (nt)")
	fs.Int("max-length", d.MaxLength, "longest probe (nt)")
	fs.Float64("min-score", d.MinScore, "minimum ΔG37 match score in [0,1]")
	fs.Int("spacing", d.Spacing, "minimum gap between probes (nt)")
	fs.Float64("desired-dg", d.DesiredDG, "ΔG37 set-point (kcal/mol)")
	fs.String("dg-sweep", "", `sweep set-points "min:max:step" and keep the best`)
	fs.Float64("min-gc", d.MinGC, "minimum GC fraction")
	fs.Float64("max-gc", d.MaxGC, "maximum GC fraction")
	fs.IntSlice("pnas-rules", d.PNASRules, "PNAS rules required to pass (1-5)")
	fs.Bool("masking", d.Masking, "reject low-complexity probes")
	fs.String("masker", d.Masker, "masker: "+filter.MaskerDUST+" or "+filter.MaskerDustmasker)
	fs.String("masker-path", "", "dustmasker executable (default: found on PATH)")
	fs.Float64("max-masked", d.MaxMasked, "maximum masked fraction")
	fs.Int("min-probes", d.MinProbes, "drop targets with fewer accepted probes from FILT")
}

// bindSettings binds the settings flags of cmd to the viper keys.
func (a *app) bindSettings(cmd *cobra.Command) error {
	for _, name := range settingsFlags {
		if err := a.v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}
