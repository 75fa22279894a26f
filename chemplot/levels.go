/*
 * levels.go, part of corelevels
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package chemplot

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/rmera/corelevels/corelevel"
	"github.com/rmera/corelevels/gradient"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNoData is returned when asked to plot no records.
var ErrNoData = errors.New("no records to plot")

// Default size of the saved plots.
const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

// levels puts a set of records in the form gonum/plot wants. The position
// of a point is the atom index and its mean energy, the error is the standard deviation.
type levels []corelevel.Record

func (L levels) Len() int { return len(L) }

func (L levels) XY(i int) (float64, float64) {
	return float64(L[i].Index), L[i].Mean
}

func (L levels) YError(i int) (float64, float64) {
	return L[i].StdDev, L[i].StdDev
}

// LevelsPlot returns a plot of the mean core-level energy of each record
// against the atom index, with the standard deviations as error bars.
// If bounds is not nil, each point is colored by its mean with gradient.Map,
// otherwise all are black. Every point is labeled with the element of its atom if labels is true.
func LevelsPlot(records []corelevel.Record, bounds *gradient.Bounds, title string, labels bool) (*plot.Plot, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	L := levels(records)
	var colors []gradient.RGB
	if bounds != nil {
		means := make([]float64, len(records))
		for i, r := range records {
			means[i] = r.Mean
		}
		var err error
		colors, err = gradient.MapAll(means, *bounds)
		if err != nil {
			return nil, fmt.Errorf("LevelsPlot: %w", err)
		}
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Atom"
	p.Y.Label.Text = "Energy"
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewYErrorBars(L)
	if err != nil {
		return nil, fmt.Errorf("LevelsPlot: %w", err)
	}
	s, err := plotter.NewScatter(L)
	if err != nil {
		return nil, fmt.Errorf("LevelsPlot: %w", err)
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(3)
	s.GlyphStyle.Color = color.Black
	if colors != nil {
		base := s.GlyphStyle
		s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			g := base
			g.Color = colors[i]
			return g
		}
	}
	p.Add(bars, s)
	if labels {
		xl := plotter.XYLabels{XYs: make(plotter.XYs, len(records)), Labels: make([]string, len(records))}
		for i, r := range records {
			xl.XYs[i].X, xl.XYs[i].Y = L.XY(i)
			xl.Labels[i] = fmt.Sprintf("%s%d", r.Symbol, r.Index)
		}
		l, err := plotter.NewLabels(xl)
		if err != nil {
			return nil, fmt.Errorf("LevelsPlot: %w", err)
		}
		l.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(4)}
		p.Add(l)
	}
	return p, nil
}

// Write renders p to w in the given format (png, svg, pdf, eps, jpg or tiff).
func Write(p *plot.Plot, w io.Writer, format string) error {
	wt, err := p.WriterTo(Width, Height, strings.ToLower(format))
	if err != nil {
		return fmt.Errorf("chemplot.Write: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("chemplot.Write: %w", err)
	}
	return nil
}

// Save saves p to the file name, in the format given by its extension.
func Save(p *plot.Plot, name string) error {
	if filepath.Ext(name) == "" {
		return fmt.Errorf("chemplot.Save: no extension in %q to choose the format", name)
	}
	if err := p.Save(Width, Height, name); err != nil {
		return fmt.Errorf("chemplot.Save: %w", err)
	}
	return nil
}
