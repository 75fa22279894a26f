package pymol

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/corelevels/corelevel"
	"github.com/rmera/corelevels/gradient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var records = []corelevel.Record{
	{Index: 0, Symbol: "O", Mean: 5},
	{Index: 4, Symbol: "O", Mean: 2.5},
}

func TestWrite(Te *testing.T) {
	var buf bytes.Buffer
	b := gradient.Bounds{Min: 0, Mid: 5, Max: 10}
	err := Write(&buf, records, b, Options{Object: "slab", Base: "grey50", Labels: true})
	require.NoError(Te, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(Te, []string{
		"# core-level colors: min 0, mid 5, max 10",
		"color grey50, slab",
		"set_color cl_0, [0.7686, 0.7686, 0.7686]",
		"color cl_0, slab and index 1",
		`label slab and index 1, "5.00"`,
		"set_color cl_4, [0.4118, 0.6157, 0.8843]",
		"color cl_4, slab and index 5",
		`label slab and index 5, "2.50"`,
	}, lines)
}

func TestWriteErrors(Te *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, records, gradient.Bounds{Min: 3, Mid: 5, Max: 10}, Options{})
	assert.True(Te, errors.Is(err, gradient.ErrOutOfRange))
	err = Write(&buf, records, gradient.Bounds{Min: 0, Mid: 5, Max: 10}, Options{Object: "a b; delete all"})
	assert.Error(Te, err)
	assert.Zero(Te, buf.Len())
}

func TestWriteFile(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "colors.pml")
	require.NoError(Te, WriteFile(name, records[:1], gradient.Bounds{Min: 0, Mid: 5, Max: 10}, Options{}))
	data, err := os.ReadFile(name)
	require.NoError(Te, err)
	assert.Contains(Te, string(data), "color cl_0, all and index 1\n")
	assert.NotContains(Te, string(data), "label")
}
