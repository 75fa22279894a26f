package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rmera/corelevels/chemgraph"
	"github.com/rmera/corelevels/internal/config"
	"github.com/rmera/corelevels/internal/report"
	"github.com/spf13/cobra"
)

type selectResult struct {
	Chains     []string `json:"chains"`
	Atoms      []int    `json:"atoms"`
	Fragments  int      `json:"fragments"`
	Neighbours [][]int  `json:"neighbours,omitempty"`
}

// NewSelectCommand creates the select command.
func NewSelectCommand() *cobra.Command {
	var neighbours bool
	cmd := &cobra.Command{
		Use:   "select <job.json> <chain>...",
		Short: "List the atoms matched by bond chains",
		Long: `List the atoms matching the last element of each bond chain, reached
through bonds to the previous elements of the chain. The result of several
chains is their union.

The number of bonded fragments in the structure is also reported. With
--neighbours, the closest atoms to each selected atom, up to the neighbour
tolerance, are listed, closest first.`,
		Example: `  # H atoms of hydroxyls on Pt
  corelevels select job.json Pt-O-H

  # O atoms bonded to Pt or to Ce
  corelevels select job.json Pt-O Ce-O --neighbours`,
		Args: cobra.MinimumNArgs(2),
	}
	cmd.Flags().BoolVar(&neighbours, "neighbours", false, "List the closest neighbours of each selected atom")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := GetConfig(ctx)
		logger := config.GetLogger(ctx)
		J, err := loadJob(ctx, args[0])
		if err != nil {
			return err
		}
		chains := args[1:]
		sel, err := chemgraph.SelectByChain(J.Mol, chains, cfg.ChainTolerance)
		if err != nil {
			return err
		}
		frags, err := chemgraph.Fragments(J.Mol, cfg.ChainTolerance)
		if err != nil {
			return err
		}
		logger.Info("chain selection", "chains", chains, "atoms", len(sel), "fragments", len(frags))
		var neigh [][]int
		if neighbours {
			neigh = J.Mol.ClosestNeighbours(cfg.NeighbourTolerance)
		}
		out := cmd.OutOrStdout()
		switch cfg.Output {
		case config.OutputJSON:
			res := selectResult{Chains: chains, Atoms: sel, Fragments: len(frags)}
			if neigh != nil {
				res.Neighbours = make([][]int, len(sel))
				for i, v := range sel {
					res.Neighbours[i] = neigh[v]
				}
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		default:
			var nf func(int) []int
			if neigh != nil {
				nf = func(i int) []int { return neigh[i] }
			}
			if err := report.RenderIndices(out, sel, J.Mol.Symbol, nf, cfg.Output); err != nil {
				return err
			}
			if cfg.Output == config.OutputTable {
				_, _ = fmt.Fprintf(out, "(%d fragments in the structure)\n", len(frags))
			}
			return nil
		}
	}
	return cmd
}
