package chemjson

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/rmera/corelevels"
	"github.com/rmera/corelevels/corelevel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ptoh = `{
 "title": "PtOH",
 "atoms": [
  {"symbol": "Pt", "coords": [0, 0, 0]},
  {"symbol": "o", "coords": [2.0, 0, 0]},
  {"symbol": "H", "coords": [2.3, 0.92, 0]}
 ],
 "corelevels": {"0": [1.0, 1.2], "1": []},
 "populations": {"0": {"symbol": "Pt", "charge": 0.35, "spin": 0.01}, "1": {"charge": -0.6, "spin": 0.2}}
}`

func TestDecode(Te *testing.T) {
	J, err := Decode(strings.NewReader(ptoh))
	require.NoError(Te, err)
	assert.Equal(Te, "PtOH", J.Title)
	G, T, P, err := J.Load()
	require.NoError(Te, err)
	assert.Equal(Te, 3, G.Len())
	assert.Equal(Te, "O", G.Symbol(1))
	assert.Equal(Te, []int{0, 1}, T.Indices())
	assert.Equal(Te, corelevel.Population{Symbol: "Pt", Charge: 0.35, Spin: 0.01}, P[0])
	assert.Equal(Te, -0.6, P[1].Charge)

	recs, err := corelevel.Filter(G, T, corelevel.All{})
	require.NoError(Te, err)
	require.Len(Te, recs, 1)
	assert.InDelta(Te, 1.1, recs[0].Mean, 1e-9)

	_, err = Decode(strings.NewReader(`{"atoms": [`))
	assert.Error(Te, err)
}

func TestLoadErrors(Te *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind error
	}{
		{"no atoms", `{"atoms": []}`, chem.ErrMismatch},
		{"bad coords", `{"atoms": [{"symbol": "O", "coords": [0, 0]}]}`, chem.ErrMismatch},
		{"unknown element", `{"atoms": [{"symbol": "Xx", "coords": [0, 0, 0]}]}`, chem.ErrUnknownElement},
		{"table index", `{"atoms": [{"symbol": "O", "coords": [0, 0, 0]}], "corelevels": {"1": [2.0]}}`, chem.ErrUnknownIndex},
		{"population index", `{"atoms": [{"symbol": "O", "coords": [0, 0, 0]}], "populations": {"3": {"charge": 1}}}`, chem.ErrUnknownIndex},
		{"population element", `{"atoms": [{"symbol": "O", "coords": [0, 0, 0]}], "populations": {"0": {"symbol": "N"}}}`, chem.ErrMismatch},
	}
	for _, tt := range tests {
		Te.Run(tt.name, func(Te *testing.T) {
			J, err := Decode(strings.NewReader(tt.doc))
			require.NoError(Te, err)
			_, _, _, err = J.Load()
			assert.True(Te, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestSaveOpen(Te *testing.T) {
	J, err := Decode(strings.NewReader(ptoh))
	require.NoError(Te, err)
	dir := Te.TempDir()
	for _, name := range []string{"job.json", "job.json.zst", "job.json.gz"} {
		path := filepath.Join(dir, name)
		require.NoError(Te, J.Save(path))
		J2, err := Open(path)
		require.NoError(Te, err, name)
		assert.Equal(Te, J, J2, name)
	}
	_, err = Open(filepath.Join(dir, "nope.json"))
	assert.Error(Te, err)

	//NaN can't be written as JSON.
	bad := &Job{Atoms: []Atom{{Symbol: "O", Coords: []float64{math.NaN(), 0, 0}}}}
	for _, name := range []string{"bad.json", "bad.json.zst", "bad.json.gz"} {
		assert.Error(Te, bad.Save(filepath.Join(dir, name)), name)
	}
	assert.Error(Te, J.Save(filepath.Join(dir, "missing", "job.json")))
	require.NoError(Te, J.Save(filepath.Join(dir, "bad.json")))
	J2, err := Open(filepath.Join(dir, "bad.json"))
	require.NoError(Te, err)
	assert.Equal(Te, J, J2)
}

func TestInfo(Te *testing.T) {
	J, err := Decode(strings.NewReader(ptoh))
	require.NoError(Te, err)
	G, T, P, err := J.Load()
	require.NoError(Te, err)
	T[1] = []float64{-525.0}
	cols := []corelevel.Column{corelevel.Coordination, corelevel.Charge}
	recs, err := corelevel.Filter(G, T, corelevel.All{}, corelevel.Options{Columns: cols, Populations: P})
	require.NoError(Te, err)

	_, err = NewInfo("x", cols, recs, make([][3]float64, 1))
	assert.True(Te, errors.Is(err, chem.ErrMismatch))

	info, err := NewInfo("PtOH", cols, recs, [][3]float64{{0, 0, 1}, {1, 0, 0}})
	require.NoError(Te, err)
	assert.Equal(Te, []string{"atom", "element", "mean", "std", "cn", "charge"}, info.Header)
	require.Len(Te, info.Records, 2)
	assert.Nil(Te, info.Records[0].Spin)
	require.NotNil(Te, info.Records[1].CN)
	assert.Equal(Te, 2, *info.Records[1].CN)
	assert.Equal(Te, -0.6, *info.Records[1].Charge)

	var buf bytes.Buffer
	require.NoError(Te, info.Send(&buf))
	out := buf.String()
	assert.Contains(Te, out, `"cn":1`)
	assert.Contains(Te, out, `"color":[1,0,0]`)
	assert.NotContains(Te, out, `"spin"`)
}
