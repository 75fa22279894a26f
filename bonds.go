/*
 * bonds.go, part of corelevels.
 *
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
 *
 */

package chem

import (
	"math"
	"sort"
)

// Default tolerance factors. Two atoms are bonded if their distance is not larger than
// the tolerance factor times the sum of their covalent radii.
const (
	DefaultChainTolerance        = 1.15
	DefaultCoordinationTolerance = 1.21
)

// CheckTolerance returns an error if tol can't be used as a tolerance factor.
func CheckTolerance(tol float64) error {
	if tol <= 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		return NewError(ErrInvalidTolerance, "CheckTolerance", "%g", tol)
	}
	return nil
}

// BondCutoff is the largest distance at which atoms with symbols s1 and s2
// are considered bonded, given the tolerance factor tol. It returns 0 if
// one of the elements is not known.
func BondCutoff(s1, s2 string, tol float64) float64 {
	r1, ok1 := CovalentRadius(s1)
	r2, ok2 := CovalentRadius(s2)
	if !ok1 || !ok2 {
		return 0
	}
	return tol * (r1 + r2)
}

// Bound returns true if the atoms i and j are bonded, i.e. their distance is not larger
// than tolerance times the sum of their covalent radii. An atom is not bonded to itself.
// Panics if i or j are out of range.
func (G *Geometry) Bound(i, j int, tolerance float64) bool {
	if i == j {
		return false
	}
	a1 := G.atom(i)
	a2 := G.atom(j)
	return G.coords.Distance(i, j) <= tolerance*(symbolCovrad[a1.Symbol]+symbolCovrad[a2.Symbol])
}

// ClosestNeighbours returns, for each atom, the indexes of the other atoms closer
// than the largest possible bond distance for that atom under maxTolerance,
// sorted by distance (ties by index). Every atom bonded to atom i under any tolerance
// not larger than maxTolerance is in the ith slice.
func (G *Geometry) ClosestNeighbours(maxTolerance float64) [][]int {
	ret := make([][]int, G.Len())
	if maxTolerance <= 0 {
		for i := range ret {
			ret[i] = []int{}
		}
		return ret
	}
	dists := make([]float64, G.Len())
	for i, at := range G.atoms {
		cutoff := maxTolerance * (symbolCovrad[at.Symbol] + G.maxrad)
		ret[i] = make([]int, 0, 6)
		for j := range G.atoms {
			if j == i {
				continue
			}
			dists[j] = G.coords.Distance(i, j)
			if dists[j] <= cutoff {
				ret[i] = append(ret[i], j)
			}
		}
		n := ret[i]
		sort.SliceStable(n, func(a, b int) bool { return dists[n[a]] < dists[n[b]] })
	}
	return ret
}

// CoordinationNumber returns the number of atoms in mol bonded to the atom
// with index i under the tolerance factor tol. Nothing is cached, the bonds are
// checked in each call.
func CoordinationNumber(mol Connectivity, i int, tol float64) (int, error) {
	if i < 0 || i >= mol.Len() {
		return 0, NewError(ErrUnknownIndex, "CoordinationNumber", "atom %d requested, geometry has %d", i, mol.Len())
	}
	if err := CheckTolerance(tol); err != nil {
		return 0, ErrDecorate(err, "CoordinationNumber")
	}
	cn := 0
	for j := 0; j < mol.Len(); j++ {
		if mol.Bound(i, j, tol) {
			cn++
		}
	}
	return cn, nil
}
