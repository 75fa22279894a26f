/*
 * criterion.go, part of corelevels.
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
	chem "github.com/rmera/corelevels"
)

// Criterion decides which atoms are reported by Filter. It is one of
// All, Indices, Elements or ChainMatch; no other implementations are possible.
type Criterion interface {
	criterion()
}

// All admits every atom. A nil Criterion is equivalent.
type All struct{}

// Indices admits the atoms with the given indexes.
type Indices []int

// Elements admits the atoms of the given elements.
type Elements []string

// ChainMatch admits the atoms selected by a bond chain (i.e. the result of
// chemgraph.SelectByChain).
type ChainMatch []int

func (All) criterion()        {}
func (Indices) criterion()    {}
func (Elements) criterion()   {}
func (ChainMatch) criterion() {}

// admitter returns a function that tells whether an atom is admitted by crit, or an error
// if crit references atoms not in mol.
func admitter(mol chem.Connectivity, crit Criterion) (func(int) bool, error) {
	switch c := crit.(type) {
	case nil, All:
		return func(int) bool { return true }, nil
	case Indices:
		set, err := indexSet(mol, []int(c), "Indices")
		if err != nil {
			return nil, err
		}
		return func(i int) bool { return set[i] }, nil
	case ChainMatch:
		set, err := indexSet(mol, []int(c), "ChainMatch")
		if err != nil {
			return nil, err
		}
		return func(i int) bool { return set[i] }, nil
	case Elements:
		set := make(map[string]bool, len(c))
		for _, v := range c {
			set[chem.NormalizeSymbol(v)] = true
		}
		return func(i int) bool { return set[chem.NormalizeSymbol(mol.Symbol(i))] }, nil
	default:
		panic("corelevel: unknown Criterion type") //can't happen, the interface is sealed.
	}
}

func indexSet(mol chem.Connectivity, indexes []int, kind string) (map[int]bool, error) {
	set := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		if i < 0 || i >= mol.Len() {
			return nil, chem.NewError(chem.ErrUnknownIndex, "Filter", "%s criterion has atom %d, geometry has %d atoms", kind, i, mol.Len())
		}
		set[i] = true
	}
	return set, nil
}
