package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rmera/corelevels/gradient"
	"github.com/rmera/corelevels/internal/config"
	"github.com/spf13/cobra"
)

// NewColorCommand creates the color command.
func NewColorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "color <value> <min> [mid] <max>",
		Short: "Map a value to the color scale",
		Long: `Print the RGB components, between 0 and 1, of the color for value in
the scale with the given bounds. Values between min and mid go from blue to
grey, values between mid and max from grey to orange. If mid is not given,
it is halfway between min and max. The bounds can be given in any order.
The value must be strictly between min and max.`,
		Example: `  corelevels color 5 0 10
  # Negative numbers need -- before them
  corelevels color -- -524.1 -526 -520`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())
			vals := make([]float64, len(args))
			for i, a := range args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("invalid number %q: %w", a, err)
				}
				vals[i] = v
			}
			b, err := gradient.NewBounds(vals[1:]...)
			if err != nil {
				return err
			}
			c, err := gradient.Map(vals[0], b)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.Output == config.OutputJSON {
				return json.NewEncoder(out).Encode(struct {
					Value  float64         `json:"value"`
					Bounds gradient.Bounds `json:"bounds"`
					Color  [3]float64      `json:"color"`
				}{vals[0], b, c.Array()})
			}
			p := cfg.Precision
			_, err = fmt.Fprintf(out, "%.*f %.*f %.*f\n", p, c.R, p, c.G, p, c.B)
			return err
		},
	}
}
