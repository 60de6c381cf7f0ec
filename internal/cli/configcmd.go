// internal/cli/configcmd.go
package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as YAML",
		Long: `Print the settings a design run would use, after merging the built-in
defaults, the --config file, OLIGOSTAN_* environment variables and flags.
The output is itself a valid --config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.bindSettings(cmd); err != nil {
				return err
			}
			cfg, err := a.load()
			if err != nil {
				return err
			}
			b, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	addSettingsFlags(cmd.Flags())
	return cmd
}
