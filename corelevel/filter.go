/*
 * filter.go, part of corelevels.
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

package corelevel

import (
	"errors"
	"fmt"
	"math"
	"strings"

	chem "github.com/rmera/corelevels"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Column is an optional property reported for each atom, after the
// mean and standard deviation of the core-level energies.
type Column int

const (
	Spin Column = iota
	Charge
	Coordination
)

// ErrUnknownColumn is the kind of the errors for names or values that are not a Column.
var ErrUnknownColumn = errors.New("unknown column")

var columnNames = map[Column]string{
	Spin:         "spin",
	Charge:       "charge",
	Coordination: "cn",
}

func (c Column) String() string {
	if s, ok := columnNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Column(%d)", int(c))
}

// ParseColumn returns the Column with the given name ("spin", "charge" or "cn").
func ParseColumn(name string) (Column, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "coordination" {
		n = "cn"
	}
	for c, s := range columnNames {
		if s == n {
			return c, nil
		}
	}
	return 0, chem.NewError(ErrUnknownColumn, "ParseColumn", "%q", name)
}

// Header returns the names of the fields of the records produced with the given columns, in order.
func Header(columns []Column) []string {
	ret := []string{"atom", "element", "mean", "std"}
	for _, c := range columns {
		ret = append(ret, c.String())
	}
	return ret
}

// Options for Filter. The zero value adds no optional columns.
type Options struct {
	//Optional fields for each record, in the order they will appear.
	Columns []Column

	//Needed if Spin or Charge are requested.
	Populations Populations

	//Tolerance factor for the coordination numbers. If 0, chem.DefaultCoordinationTolerance is used.
	Tolerance float64
}

// Record is the aggregated core-level information for one atom.
type Record struct {
	Index   int
	Symbol  string
	Mean    float64
	StdDev  float64  //population standard deviation
	Columns []Column //the optional fields in Extra.
	Extra   []float64
}

// Value returns the value of the optional column c, and false if the
// record doesn't have it.
func (R Record) Value(c Column) (float64, bool) {
	for i, v := range R.Columns {
		if v == c {
			return R.Extra[i], true
		}
	}
	return 0, false
}

// Filter returns a record for each atom in table that is admitted by crit and has at least one
// core-level energy, in ascending order of atom index. Atoms without energies, or whose
// mean or standard deviation is not defined (NaN or infinite energies), are left out. A
// mean or standard deviation of exactly 0 is a valid value: an atom with a single energy
// has a standard deviation of 0 and is reported. The records contain the mean and population
// standard deviation of the energies of the atom, and the optional fields requested in
// opts (only the first Options given is used).
func Filter(mol chem.Connectivity, table Table, crit Criterion, opts ...Options) ([]Record, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if err := table.Check(mol.Len()); err != nil {
		return nil, chem.ErrDecorate(err, "Filter")
	}
	admit, err := admitter(mol, crit)
	if err != nil {
		return nil, err
	}
	tol := o.Tolerance
	if tol == 0 {
		tol = chem.DefaultCoordinationTolerance
	}
	for _, c := range o.Columns {
		if c == Coordination {
			if err := chem.CheckTolerance(tol); err != nil {
				return nil, chem.ErrDecorate(err, "Filter")
			}
		}
	}
	ret := make([]Record, 0, len(table))
	for _, i := range table.Indices() {
		energies := table[i]
		if len(energies) == 0 || !admit(i) {
			continue
		}
		mean, std := stat.PopMeanStdDev(energies, nil)
		if !defined(mean) || !defined(std) {
			continue
		}
		r := Record{Index: i, Symbol: mol.Symbol(i), Mean: mean, StdDev: std}
		if len(o.Columns) > 0 {
			r.Columns = o.Columns
			r.Extra = make([]float64, 0, len(o.Columns))
		}
		for _, c := range o.Columns {
			v, err := columnValue(mol, i, c, &o, tol)
			if err != nil {
				return nil, chem.ErrDecorate(err, "Filter")
			}
			r.Extra = append(r.Extra, v)
		}
		ret = append(ret, r)
	}
	return ret, nil
}

func defined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func columnValue(mol chem.Connectivity, i int, c Column, o *Options, tol float64) (float64, error) {
	switch c {
	case Spin, Charge:
		p, ok := o.Populations[i]
		if !ok {
			return 0, chem.NewError(chem.ErrMissingPopulation, "columnValue", "no %s for atom %d", c, i)
		}
		if c == Spin {
			return p.Spin, nil
		}
		return p.Charge, nil
	case Coordination:
		cn, err := chem.CoordinationNumber(mol, i, tol)
		return float64(cn), err
	default:
		return 0, chem.NewError(ErrUnknownColumn, "columnValue", "%d", int(c))
	}
}

// MeanRange returns the smallest and largest mean energies in records.
// ok is false if records is empty.
func MeanRange(records []Record) (min, max float64, ok bool) {
	if len(records) == 0 {
		return 0, 0, false
	}
	means := make([]float64, len(records))
	for i, r := range records {
		means[i] = r.Mean
	}
	return floats.Min(means), floats.Max(means), true
}
