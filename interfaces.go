/*
 * interfaces.go, part of corelevels.
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

// Connectivity is what the selection and annotation functions need
// from a geometry: element symbols and a bond predicate.
type Connectivity interface {

	//Len returns the number of atoms.
	Len() int

	//Symbol returns the element symbol of the ith atom.
	Symbol(i int) string

	//Bound returns true if atoms i and j are bonded under the given
	//tolerance factor. An atom is never bonded to itself.
	Bound(i, j int, tolerance float64) bool

	//ClosestNeighbours returns, for each atom, the indexes of the other atoms
	//that could be bonded to it at any tolerance up to maxTolerance,
	//closest first. It is meant to bound the search space before calling Bound.
	ClosestNeighbours(maxTolerance float64) [][]int
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it just returns the current value.
	Critical() bool
}
