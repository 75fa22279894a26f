/*
 * chem.go, part of corelevels.
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

package chem

import (
	v3 "github.com/rmera/corelevels/v3"
)

/**Note: A few functions here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong here, the program is most likely wrong and should
 * crash. Those panics are related to trying to access out-of-bounds atoms.**/

// Atom contains the information of an atom, except for its coordinates, which
// are kept in the Geometry.
type Atom struct {
	Index  int //position in the geometry, 0-based.
	Symbol string
	Mass   float64
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	ret := *A
	return &ret
}

/*****Geometry type***/

// Geometry is an ordered set of atoms and their cartesian coordinates (in A).
// The index of an atom is its position in the set and never changes.
// A Geometry is not modified after creation, so it can be shared freely.
type Geometry struct {
	atoms  []*Atom
	coords *v3.Matrix
	maxrad float64 //the largest covalent radius among the atoms
}

// NewGeometry returns a Geometry with atoms of the given element symbols, and
// coordinates coords, one vector per atom, in the same order. The
// coordinates are copied. It returns an error if the number of symbols
// and vectors differ, or if any element has no known covalent radius.
func NewGeometry(symbols []string, coords *v3.Matrix) (*Geometry, error) {
	if coords == nil || len(symbols) != coords.NVecs() {
		n := 0
		if coords != nil {
			n = coords.NVecs()
		}
		return nil, NewError(ErrMismatch, "NewGeometry", "%d atoms, %d coordinates", len(symbols), n)
	}
	G := new(Geometry)
	G.atoms = make([]*Atom, len(symbols))
	for i, s := range symbols {
		s = NormalizeSymbol(s)
		r, ok := symbolCovrad[s]
		if !ok {
			return nil, NewError(ErrUnknownElement, "NewGeometry", "couldn't find the covalent radius for %q (atom %d)", s, i)
		}
		if r > G.maxrad {
			G.maxrad = r
		}
		G.atoms[i] = &Atom{Index: i, Symbol: s, Mass: symbolMass[s]}
	}
	G.coords = coords.Clone()
	return G, nil
}

// Len returns the number of atoms in the geometry.
func (G *Geometry) Len() int {
	return len(G.atoms)
}

// Atom returns a copy of the ith atom. Panics if out of range.
func (G *Geometry) Atom(i int) *Atom {
	return G.atom(i).Copy()
}

func (G *Geometry) atom(i int) *Atom {
	if i < 0 || i >= len(G.atoms) {
		panic("Geometry: Requested Atom out of bounds")
	}
	return G.atoms[i]
}

// Symbol returns the element symbol of the ith atom. Panics if out of range.
func (G *Geometry) Symbol(i int) string {
	return G.atom(i).Symbol
}

// Coords returns a copy of the coordinates of the geometry.
func (G *Geometry) Coords() *v3.Matrix {
	return G.coords.Clone()
}

// Distance returns the distance, in A, between atoms i and j.
func (G *Geometry) Distance(i, j int) float64 {
	return G.coords.Distance(i, j)
}

// Has returns true if i is a valid atom index for the geometry.
func (G *Geometry) Has(i int) bool {
	return i >= 0 && i < len(G.atoms)
}

// Element returns the indexes, in ascending order, of all the atoms of the
// given element.
func (G *Geometry) Element(symbol string) []int {
	return ElementIndexes(G, symbol)
}

// Substitute returns a copy of the geometry where the ith atom has the
// given mass (an isotope change). The index, symbol and position of the
// atom are not changed.
func (G *Geometry) Substitute(i int, mass float64) (*Geometry, error) {
	if !G.Has(i) {
		return nil, NewError(ErrUnknownIndex, "Substitute", "atom %d requested, geometry has %d", i, G.Len())
	}
	N := &Geometry{atoms: make([]*Atom, len(G.atoms)), coords: G.coords, maxrad: G.maxrad}
	for k, v := range G.atoms {
		N.atoms[k] = v
	}
	at := G.atoms[i].Copy()
	at.Mass = mass
	N.atoms[i] = at
	return N, nil
}

// ElementIndexes returns the indexes, in ascending order, of all the
// atoms in mol with the given element symbol.
func ElementIndexes(mol Connectivity, symbol string) []int {
	symbol = NormalizeSymbol(symbol)
	ret := make([]int, 0, 4)
	for i := 0; i < mol.Len(); i++ {
		if NormalizeSymbol(mol.Symbol(i)) == symbol {
			ret = append(ret, i)
		}
	}
	return ret
}
