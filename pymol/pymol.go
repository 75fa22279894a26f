/*
 * pymol.go, part of corelevels.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package pymol writes PyMOL scripts that color the atoms of a structure
// according to their mean core-level energies.
package pymol

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/rmera/corelevels/corelevel"
	"github.com/rmera/corelevels/gradient"
)

// Options for a script. Object is the name of the PyMOL object with the
// structure, usually the name of the file loaded, without extension.
type Options struct {
	Object string
	//Color for the atoms without a record. Empty leaves them as they are.
	Base string
	//Label each colored atom with its mean energy.
	Labels bool
	//Format for the labels. Default "%.2f".
	LabelFormat string
}

var objectName = regexp.MustCompile(`^[A-Za-z0-9_.+-]+$`)

// Write writes to w a PyMOL script that defines one color per record, mapped from the
// mean energy of the record with bounds, and applies it to the atom of the record.
// PyMOL atom indexes start at 1. Every mean must be strictly inside bounds.
func Write(w io.Writer, records []corelevel.Record, bounds gradient.Bounds, o Options) error {
	obj := o.Object
	if obj == "" {
		obj = "all"
	}
	if !objectName.MatchString(obj) {
		return fmt.Errorf("pymol.Write: invalid object name %q", obj)
	}
	means := make([]float64, len(records))
	for i, r := range records {
		means[i] = r.Mean
	}
	colors, err := gradient.MapAll(means, bounds)
	if err != nil {
		return fmt.Errorf("pymol.Write: %w", err)
	}
	lf := o.LabelFormat
	if lf == "" {
		lf = "%.2f"
	}
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "# core-level colors: min %g, mid %g, max %g\n", bounds.Min, bounds.Mid, bounds.Max)
	if o.Base != "" {
		fmt.Fprintf(out, "color %s, %s\n", o.Base, obj)
	}
	for i, r := range records {
		c := colors[i]
		name := fmt.Sprintf("cl_%d", r.Index)
		sel := fmt.Sprintf("%s and index %d", obj, r.Index+1)
		fmt.Fprintf(out, "set_color %s, [%.4f, %.4f, %.4f]\n", name, c.R, c.G, c.B)
		fmt.Fprintf(out, "color %s, %s\n", name, sel)
		if o.Labels {
			fmt.Fprintf(out, "label %s, \"%s\"\n", sel, fmt.Sprintf(lf, r.Mean))
		}
	}
	return out.Flush()
}

// WriteFile writes the script to the file name.
func WriteFile(name string, records []corelevel.Record, bounds gradient.Bounds, o Options) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("pymol.WriteFile: %w", err)
	}
	if err := Write(f, records, bounds, o); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
