package cli

import (
	"context"
	"errors"
	"fmt"

	chem "github.com/rmera/corelevels"
	"github.com/rmera/corelevels/chemgraph"
	"github.com/rmera/corelevels/chemjson"
	"github.com/rmera/corelevels/corelevel"
	"github.com/rmera/corelevels/gradient"
	"github.com/rmera/corelevels/internal/config"
	"github.com/spf13/cobra"
)

// boundsMargin is the fraction of the range of the data added at each side
// when the color bounds are taken from the data.
const boundsMargin = 0.05

// job is a loaded analysis job.
type job struct {
	Title string
	Mol   *chem.Geometry
	Table corelevel.Table
	Pops  corelevel.Populations
}

func loadJob(ctx context.Context, path string) (*job, error) {
	logger := config.GetLogger(ctx)
	J, err := chemjson.Open(path)
	if err != nil {
		return nil, err
	}
	G, T, P, err := J.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid job %s: %w", path, err)
	}
	logger.Info("loaded job", "path", path, "atoms", G.Len(), "corelevels", len(T), "populations", len(P))
	return &job{Title: J.Title, Mol: G, Table: T, Pops: P}, nil
}

// selection holds the flags that choose the atoms to report. Only one of them can be used.
type selection struct {
	atoms    []int
	elements []string
	chains   []string
}

func addSelectionFlags(cmd *cobra.Command) *selection {
	s := new(selection)
	cmd.Flags().IntSliceVar(&s.atoms, "atoms", nil, "Report only these atoms (zero-based indexes)")
	cmd.Flags().StringSliceVar(&s.elements, "elements", nil, "Report only atoms of these elements")
	cmd.Flags().StringSliceVar(&s.chains, "chain", nil, "Report only the last atom of these bond chains (e.g. Pt-O-H)")
	cmd.MarkFlagsMutuallyExclusive("atoms", "elements", "chain")
	return s
}

var errManyCriteria = errors.New("only one of --atoms, --elements and --chain can be given")

// criterion builds the filtering criterion from the flags.
func (s *selection) criterion(ctx context.Context, mol chem.Connectivity, cfg *config.Config) (corelevel.Criterion, error) {
	n := 0
	for _, set := range []bool{len(s.atoms) > 0, len(s.elements) > 0, len(s.chains) > 0} {
		if set {
			n++
		}
	}
	switch {
	case n > 1:
		return nil, errManyCriteria
	case len(s.atoms) > 0:
		return corelevel.Indices(s.atoms), nil
	case len(s.elements) > 0:
		return corelevel.Elements(s.elements), nil
	case len(s.chains) > 0:
		sel, err := chemgraph.SelectByChain(mol, s.chains, cfg.ChainTolerance)
		if err != nil {
			return nil, err
		}
		config.GetLogger(ctx).Debug("chain selection", "chains", s.chains, "tolerance", cfg.ChainTolerance, "atoms", sel)
		return corelevel.ChainMatch(sel), nil
	default:
		return corelevel.All{}, nil
	}
}

// columnFlags are the shortcuts to add optional columns.
type columnFlags struct {
	spin, charge, cn bool
}

func addColumnFlags(cmd *cobra.Command) *columnFlags {
	c := new(columnFlags)
	cmd.Flags().BoolVar(&c.spin, "spin", false, "Add the Loewdin spin population of each atom")
	cmd.Flags().BoolVar(&c.charge, "charge", false, "Add the Loewdin charge of each atom")
	cmd.Flags().BoolVar(&c.cn, "cn", false, "Add the coordination number of each atom")
	return c
}

// columns returns the configured columns followed by those requested with
// flags, without repetitions.
func (c *columnFlags) columns(cfg *config.Config) ([]corelevel.Column, error) {
	cols, err := cfg.ParsedColumns()
	if err != nil {
		return nil, err
	}
	for _, extra := range []struct {
		set bool
		col corelevel.Column
	}{{c.spin, corelevel.Spin}, {c.charge, corelevel.Charge}, {c.cn, corelevel.Coordination}} {
		if !extra.set || hasColumn(cols, extra.col) {
			continue
		}
		cols = append(cols, extra.col)
	}
	return cols, nil
}

func hasColumn(cols []corelevel.Column, c corelevel.Column) bool {
	for _, v := range cols {
		if v == c {
			return true
		}
	}
	return false
}

// filter selects the records of the job.
func filter(ctx context.Context, J *job, s *selection, cols []corelevel.Column, cfg *config.Config) ([]corelevel.Record, error) {
	crit, err := s.criterion(ctx, J.Mol, cfg)
	if err != nil {
		return nil, err
	}
	recs, err := corelevel.Filter(J.Mol, J.Table, crit, corelevel.Options{
		Columns:     cols,
		Populations: J.Pops,
		Tolerance:   cfg.CoordinationTolerance,
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		config.GetLogger(ctx).Warn("no atom with core-level energies matched the selection")
	}
	return recs, nil
}

// colorBounds returns the configured bounds or, if none, bounds that
// contain the means of all records.
func colorBounds(ctx context.Context, cfg *config.Config, recs []corelevel.Record) (gradient.Bounds, error) {
	if b, ok := cfg.ColorBounds(); ok {
		return b, nil
	}
	lo, hi, ok := corelevel.MeanRange(recs)
	if !ok {
		return gradient.Bounds{}, errors.New("no records to take the color bounds from")
	}
	b, err := gradient.Widen(lo, hi, boundsMargin)
	if err != nil {
		return gradient.Bounds{}, err
	}
	config.GetLogger(ctx).Debug("color bounds from data", "min", b.Min, "mid", b.Mid, "max", b.Max)
	return b, nil
}
