/*
 * tables.go, part of corelevels.
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

// Package corelevel aggregates the core-orbital energies assigned to each
// atom of a geometry, optionally annotated with Loewdin populations and
// coordination numbers.
package corelevel

import (
	"sort"

	chem "github.com/rmera/corelevels"
)

// Table maps atom indexes to the energies of the core orbitals found for
// each atom. An atom can be absent, or have an empty slice, if no matching
// orbital was found for it. Tables are read-only inputs.
type Table map[int][]float64

// Indices returns the atom indexes in the table, in ascending order.
func (T Table) Indices() []int {
	ret := make([]int, 0, len(T))
	for k := range T {
		ret = append(ret, k)
	}
	sort.Ints(ret)
	return ret
}

// Check returns an error if the table references an atom index not present
// in a geometry with natoms atoms.
func (T Table) Check(natoms int) error {
	for _, k := range T.Indices() {
		if k < 0 || k >= natoms {
			return chem.NewError(chem.ErrUnknownIndex, "Table.Check", "core-level table has atom %d, geometry has %d atoms", k, natoms)
		}
	}
	return nil
}

// Population is the Loewdin population analysis result for one atom.
type Population struct {
	Symbol string
	Charge float64
	Spin   float64
}

// Populations maps atom indexes to their population analysis results.
type Populations map[int]Population

// Check returns an error if the table references an atom index not present
// in a geometry with natoms atoms.
func (P Populations) Check(natoms int) error {
	keys := make([]int, 0, len(P))
	for k := range P {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if k < 0 || k >= natoms {
			return chem.NewError(chem.ErrUnknownIndex, "Populations.Check", "population table has atom %d, geometry has %d atoms", k, natoms)
		}
	}
	return nil
}
