package cli

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/rmera/corelevels/chemplot"
	"github.com/rmera/corelevels/internal/config"
	"github.com/rmera/corelevels/pymol"
	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var (
		pmlFile, plotFile string
		object, title     string
		labels            bool
	)
	cmd := &cobra.Command{
		Use:   "export <job.json>",
		Short: "Export the mean energies as a PyMOL script or a plot",
		Long: `Color the selected atoms by their mean core-level energy, and write
the colors as a PyMOL script, a plot of the energies against the atom
indexes, or both. The plot format is taken from the file extension
(png, svg, pdf, eps, jpg or tiff).`,
		Example: `  corelevels export job.json --elements O --pymol ocolors.pml --object slab
  corelevels export job.json --chain Pt-O --plot levels.svg --bounds=-530,-520`,
		Args: cobra.ExactArgs(1),
	}
	sel := addSelectionFlags(cmd)
	cmd.Flags().StringVar(&pmlFile, "pymol", "", "Write a PyMOL script to this file")
	cmd.Flags().StringVar(&plotFile, "plot", "", "Write a plot to this file")
	cmd.Flags().StringVar(&object, "object", "", "PyMOL object to color (default: the job file name)")
	cmd.Flags().StringVar(&title, "title", "", "Plot title (default: the job title)")
	cmd.Flags().BoolVar(&labels, "labels", false, "Label the atoms with their energies (PyMOL) or names (plot)")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if pmlFile == "" && plotFile == "" {
			return errors.New("nothing to export: give --pymol, --plot or both")
		}
		ctx := cmd.Context()
		cfg := GetConfig(ctx)
		logger := config.GetLogger(ctx)
		J, err := loadJob(ctx, args[0])
		if err != nil {
			return err
		}
		recs, err := filter(ctx, J, sel, nil, cfg)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			return errors.New("nothing to export: no atom with core-level energies matched the selection")
		}
		bounds, err := colorBounds(ctx, cfg, recs)
		if err != nil {
			return err
		}
		if pmlFile != "" {
			obj := object
			if obj == "" {
				obj = objectFromPath(args[0])
			}
			if err := pymol.WriteFile(pmlFile, recs, bounds, pymol.Options{Object: obj, Labels: labels}); err != nil {
				return err
			}
			logger.Info("wrote PyMOL script", "path", pmlFile, "atoms", len(recs))
		}
		if plotFile != "" {
			t := title
			if t == "" {
				t = J.Title
			}
			p, err := chemplot.LevelsPlot(recs, &bounds, t, labels)
			if err != nil {
				return err
			}
			if err := chemplot.Save(p, plotFile); err != nil {
				return err
			}
			logger.Info("wrote plot", "path", plotFile, "atoms", len(recs))
		}
		return nil
	}
	return cmd
}

// objectFromPath returns the name PyMOL gives to an object loaded from the
// structure with the same name as the job: the base name without extensions.
func objectFromPath(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}
