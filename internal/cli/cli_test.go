package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/rmera/corelevels"
	"github.com/rmera/corelevels/chemjson"
	"github.com/rmera/corelevels/corelevel"
	"github.com/rmera/corelevels/gradient"
	"github.com/rmera/corelevels/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two hydroxyls on a Pt (0-4) and a water molecule far away (5-7).
const surfaceJob = `{
 "title": "Pt(OH)2 + H2O",
 "atoms": [
  {"symbol": "Pt", "coords": [0, 0, 0]},
  {"symbol": "O", "coords": [2.0, 0, 0]},
  {"symbol": "H", "coords": [2.3, 0.92, 0]},
  {"symbol": "O", "coords": [-2.0, 0, 0]},
  {"symbol": "H", "coords": [-2.3, 0.92, 0]},
  {"symbol": "O", "coords": [10, 10, 10]},
  {"symbol": "H", "coords": [10.96, 10, 10]},
  {"symbol": "H", "coords": [9.76, 10.93, 10]}
 ],
 "corelevels": {"0": [-70.0], "1": [-525.0, -525.2], "2": [], "3": [-524.0], "5": [-530.0, -529.0]},
 "populations": {
  "0": {"symbol": "Pt", "charge": 0.5, "spin": 0.0},
  "1": {"symbol": "O", "charge": -0.6, "spin": 0.1},
  "3": {"symbol": "O", "charge": -0.5, "spin": 0.0},
  "5": {"symbol": "O", "charge": -0.8, "spin": 0.0}
 }
}`

func writeJob(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "surface.json")
	require.NoError(t, os.WriteFile(path, []byte(surfaceJob), 0600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestNewRootCmd_Structure(t *testing.T) {
	cmd := NewRootCmd()
	assert.Equal(t, "corelevels", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, name := range []string{"levels", "select", "color", "export", "version"} {
		assert.True(t, names[name], "expected subcommand %q", name)
	}
	for _, flag := range []string{"config", "verbose", "output", "chain-tolerance", "columns", "bounds"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "expected flag %q", flag)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "corelevels v0.1.0\n", out)
}

func TestLevels(t *testing.T) {
	job := writeJob(t)
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "all atoms",
			args: []string{"levels", job, "--cn", "-o", "csv", "--precision", "2"},
			want: []string{
				"atom,element,mean,std,cn",
				"0,Pt,-70.00,0.00,2",
				"1,O,-525.10,0.10,2",
				"3,O,-524.00,0.00,2",
				"5,O,-529.50,0.50,2",
			},
		},
		{
			name: "chain",
			args: []string{"levels", job, "--chain", "Pt-O", "-o", "csv", "--precision", "1"},
			want: []string{"atom,element,mean,std", "1,O,-525.1,0.1", "3,O,-524.0,0.0"},
		},
		{
			name: "atoms with columns in config order",
			args: []string{"levels", job, "--atoms", "5,2", "--columns", "charge", "--spin", "--charge", "-o", "csv", "--precision", "1"},
			want: []string{"atom,element,mean,std,charge,spin", "5,O,-529.5,0.5,-0.8,0.0"},
		},
		{
			name: "elements",
			args: []string{"levels", job, "--elements", "pt", "-o", "csv", "--precision", "0"},
			want: []string{"atom,element,mean,std", "0,Pt,-70,0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lines(out))
		})
	}
}

func TestLevels_JSON(t *testing.T) {
	job := writeJob(t)
	out, err := run(t, "levels", job, "--elements", "O", "--charge", "--color", "-o", "json")
	require.NoError(t, err)
	var info chemjson.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "Pt(OH)2 + H2O", info.Title)
	require.Len(t, info.Records, 3)
	assert.Equal(t, []string{"atom", "element", "mean", "std", "charge"}, info.Header)
	for _, r := range info.Records {
		require.NotNil(t, r.Charge)
		assert.Len(t, r.Color, 3)
	}
	assert.Equal(t, 5, info.Records[2].Atom)
}

func TestLevels_Table(t *testing.T) {
	job := writeJob(t)
	out, err := run(t, "levels", job, "--chain", "Pt-O-H")
	require.NoError(t, err)
	//The H atoms have no energies.
	assert.Equal(t, "(0 atoms)\n", out)

	out, err = run(t, "levels", job, "--color", "--bounds=-531,-520,-500", "--elements", "O")
	require.NoError(t, err)
	assert.Contains(t, out, "COLOR")
	assert.Contains(t, out, "(3 atoms)")
}

func TestLevels_Errors(t *testing.T) {
	job := writeJob(t)
	tests := []struct {
		name string
		args []string
	}{
		{"missing job", []string{"levels", filepath.Join(t.TempDir(), "none.json")}},
		{"two criteria", []string{"levels", job, "--atoms", "1", "--elements", "O"}},
		{"unknown atom", []string{"levels", job, "--atoms", "8"}},
		{"bad chain", []string{"levels", job, "--chain", "Pt"}},
		{"bad tolerance", []string{"levels", job, "--cn", "--coordination-tolerance", "-1"}},
		{"no job", []string{"levels"}},
		{"bad output", []string{"levels", job, "-o", "yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestLevels_Env(t *testing.T) {
	job := writeJob(t)
	t.Setenv("CORELEVELS_OUTPUT", "markdown")
	t.Setenv("CORELEVELS_COLUMNS", "cn")
	out, err := run(t, "levels", job, "--atoms", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "| atom | element | mean | std | cn |")
	assert.Contains(t, out, "| 1 | O | -525.1000 | 0.1000 | 2 |")
}

func TestSelect(t *testing.T) {
	job := writeJob(t)
	out, err := run(t, "select", job, "Pt-O-H", "-o", "csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"atom,element", "2,H", "4,H"}, lines(out))

	out, err = run(t, "select", job, "Pt-O-H", "O-H")
	require.NoError(t, err)
	assert.Contains(t, out, "(4 atoms)")
	assert.Contains(t, out, "(2 fragments in the structure)")

	out, err = run(t, "select", job, "Pt-O-H", "--neighbours", "-o", "json")
	require.NoError(t, err)
	var res selectResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []int{2, 4}, res.Atoms)
	assert.Equal(t, 2, res.Fragments)
	assert.Equal(t, [][]int{{1, 0}, {3, 0}}, res.Neighbours)

	_, err = run(t, "select", job, "PtO")
	assert.Error(t, err)
	_, err = run(t, "select", job)
	assert.Error(t, err)
}

func TestColor(t *testing.T) {
	out, err := run(t, "color", "5", "0", "10")
	require.NoError(t, err)
	assert.Equal(t, "0.7686 0.7686 0.7686\n", out)

	out, err = run(t, "color", "--precision", "2", "--", "-1", "0", "-2", "10")
	require.NoError(t, err)
	assert.Equal(t, "0.41 0.62 0.88\n", out)

	out, err = run(t, "color", "7.5", "10", "0", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"value":7.5`)

	_, err = run(t, "color", "10", "0", "10")
	assert.ErrorIs(t, err, gradient.ErrOutOfRange)
	_, err = run(t, "color", "1", "2", "2")
	assert.ErrorIs(t, err, gradient.ErrInvalidBounds)
	_, err = run(t, "color", "x", "0", "10")
	assert.Error(t, err)
	_, err = run(t, "color", "1", "0")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	job := writeJob(t)
	dir := t.TempDir()
	pml := filepath.Join(dir, "o.pml")
	png := filepath.Join(dir, "o.png")
	_, err := run(t, "export", job, "--elements", "O", "--pymol", pml, "--plot", png, "--labels")
	require.NoError(t, err)
	data, err := os.ReadFile(pml)
	require.NoError(t, err)
	script := string(data)
	for _, s := range []string{"set_color cl_1,", "color cl_1, surface and index 2", "color cl_5, surface and index 6", `label surface and index 4, "-524.00"`} {
		assert.Contains(t, script, s)
	}
	assert.NotContains(t, script, "cl_0")
	info, err := os.Stat(png)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	_, err = run(t, "export", job, "--chain", "Pt-O", "--pymol", pml, "--object", "slab", "--bounds=-530,-520")
	require.NoError(t, err)
	data, err = os.ReadFile(pml)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# core-level colors: min -530, mid -525, max -520")
	assert.Contains(t, string(data), "color cl_3, slab and index 4")

	_, err = run(t, "export", job, "--elements", "O", "--pymol", pml, "--bounds=-526,-520")
	assert.ErrorIs(t, err, gradient.ErrOutOfRange)
	_, err = run(t, "export", job)
	assert.Error(t, err)
	_, err = run(t, "export", job, "--elements", "H", "--pymol", pml)
	assert.Error(t, err)
}

func TestObjectFromPath(t *testing.T) {
	assert.Equal(t, "slab", objectFromPath("/tmp/x/slab.json.zst"))
	assert.Equal(t, "slab", objectFromPath("slab"))
	assert.Equal(t, ".hidden", objectFromPath(".hidden"))
}

func TestGetConfig_Default(t *testing.T) {
	// Outside a command the environment is not read.
	t.Setenv("CORELEVELS_OUTPUT", "html")
	var cfg *config.Config
	require.NotPanics(t, func() { cfg = GetConfig(context.Background()) })
	assert.Equal(t, config.DefaultOutput, cfg.Output)
	assert.Equal(t, chem.DefaultChainTolerance, cfg.ChainTolerance)
	assert.NoError(t, cfg.Validate())
}

func TestColorBounds(t *testing.T) {
	ctx := context.Background()
	recs := []corelevel.Record{{Index: 1, Mean: -525.1}, {Index: 3, Mean: -524}, {Index: 5, Mean: -529.5}}
	b, err := colorBounds(ctx, config.Default(), recs)
	require.NoError(t, err)
	assert.InDelta(t, -529.775, b.Min, 1e-9)
	assert.InDelta(t, -526.75, b.Mid, 1e-9)
	assert.InDelta(t, -523.725, b.Max, 1e-9)

	_, err = colorBounds(ctx, config.Default(), nil)
	assert.Error(t, err)

	cfg := config.Default()
	cfg.Bounds = []float64{-520, -530}
	b, err = colorBounds(ctx, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, gradient.Bounds{Min: -530, Mid: -525, Max: -520}, b)
}
