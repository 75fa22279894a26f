// Package cli provides the command-line interface for corelevels.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rmera/corelevels/internal/config"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var Version = "0.1.0"

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	rootCmd := &cobra.Command{
		Use:   "corelevels",
		Short: "Core-level energies per atom from QM calculations",
		Long: `corelevels reports the core-orbital energies of selected atoms of a
structure, aggregated per atom, from a JSON job produced from the output of
a QM program.

Atoms can be selected by index, by element, or by bond chains such as
Pt-O-H (H atoms bonded to an O bonded to a Pt). Mean energies can be
mapped to a color scale and exported as PyMOL scripts or plots.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			logger := cfg.NewLogger(cmd.ErrOrStderr())
			if f := config.GetConfigFileUsed(); f != "" {
				logger.Debug("using config file", "path", f)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, configKey{}, cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./corelevels.yaml)")
	pf.BoolP("verbose", "v", false, "Verbose output")
	pf.StringP("output", "o", "", "Output format (table|markdown|csv|json)")
	pf.Float64("chain-tolerance", 0, "Tolerance factor for the bonds in chains (default 1.15)")
	pf.Float64("coordination-tolerance", 0, "Tolerance factor for coordination numbers (default 1.21)")
	pf.Float64("neighbour-tolerance", 0, "Tolerance factor for the neighbour lists (default 1.5)")
	pf.StringSlice("columns", nil, "Optional columns, in order (spin,charge,cn)")
	pf.StringSlice("bounds", nil, "Color scale bounds: min,max or min,mid,max (default: from the data)")
	pf.Int("precision", 0, "Decimals for energies in tables (default 4)")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "markdown", "csv", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewLevelsCommand())
	rootCmd.AddCommand(NewSelectCommand())
	rootCmd.AddCommand(NewColorCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
			return c
		}
	}
	// Return default config if none in context
	return config.Default()
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the corelevels version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "corelevels v%s\n", version)
		},
	}
}
