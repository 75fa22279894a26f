package cli

import (
	"github.com/rmera/corelevels/chemjson"
	"github.com/rmera/corelevels/gradient"
	"github.com/rmera/corelevels/internal/config"
	"github.com/rmera/corelevels/internal/report"
	"github.com/spf13/cobra"
)

// NewLevelsCommand creates the levels command.
func NewLevelsCommand() *cobra.Command {
	var color bool
	cmd := &cobra.Command{
		Use:   "levels <job.json>",
		Short: "Report the core-level energies of each atom",
		Long: `Report the mean and standard deviation of the core-orbital energies
of each selected atom. Atoms without energies are not reported.

Optional columns (spin, charge, cn) are added in the order given in the
configuration, followed by those requested with flags.`,
		Example: `  # All atoms
  corelevels levels job.json

  # O atoms bonded to a Pt, with coordination numbers
  corelevels levels job.json --chain Pt-O --cn

  # Selected atoms, with Loewdin charges and colors, as CSV
  corelevels levels job.json.zst --atoms 3,7 --charge --color -o csv`,
		Args: cobra.ExactArgs(1),
	}
	sel := addSelectionFlags(cmd)
	colf := addColumnFlags(cmd)
	cmd.Flags().BoolVar(&color, "color", false, "Add the color of each atom in the scale given by the bounds")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := GetConfig(ctx)
		J, err := loadJob(ctx, args[0])
		if err != nil {
			return err
		}
		cols, err := colf.columns(cfg)
		if err != nil {
			return err
		}
		recs, err := filter(ctx, J, sel, cols, cfg)
		if err != nil {
			return err
		}
		var bounds *gradient.Bounds
		if color && len(recs) > 0 {
			b, err := colorBounds(ctx, cfg, recs)
			if err != nil {
				return err
			}
			bounds = &b
		}
		if cfg.Output != config.OutputJSON {
			return report.Render(cmd.OutOrStdout(), recs, report.Options{
				Format:    cfg.Output,
				Columns:   cols,
				Precision: cfg.Precision,
				Bounds:    bounds,
			})
		}
		var colors [][3]float64
		if bounds != nil {
			colors = make([][3]float64, len(recs))
			for i, r := range recs {
				c, err := gradient.Map(r.Mean, *bounds)
				if err != nil {
					return err
				}
				colors[i] = c.Array()
			}
		}
		info, err := chemjson.NewInfo(J.Title, cols, recs, colors)
		if err != nil {
			return err
		}
		return info.Send(cmd.OutOrStdout())
	}
	return cmd
}
