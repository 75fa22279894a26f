/*
 * chem_test.go, part of corelevels.
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
	"errors"
	"testing"

	v3 "github.com/rmera/corelevels/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// water returns a water molecule with a hydrogen-bonded water 2.0 A away
// from its first hydrogen.
func water(Te *testing.T) *Geometry {
	coords, err := v3.NewMatrix([]float64{
		0, 0, 0, //O 0
		0.96, 0, 0, //H 1
		-0.24, 0.93, 0, //H 2
		2.96, 0, 0, //O 3
		3.2, 0.93, 0, //H 4
		3.2, -0.93, 0, //H 5
	})
	require.NoError(Te, err)
	G, err := NewGeometry([]string{"O", "H", "h", "O", "H", "H"}, coords)
	require.NoError(Te, err)
	return G
}

func TestNewGeometry(Te *testing.T) {
	G := water(Te)
	assert.Equal(Te, 6, G.Len())
	assert.Equal(Te, "H", G.Symbol(2))
	assert.Equal(Te, []int{0, 3}, G.Element("O"))
	assert.InDelta(Te, 15.999, G.Atom(0).Mass, 1e-9)
	assert.Panics(Te, func() { G.Symbol(6) })

	coords, err := v3.NewMatrix([]float64{0, 0, 0, 1, 0, 0})
	require.NoError(Te, err)
	_, err = NewGeometry([]string{"O"}, coords)
	assert.True(Te, errors.Is(err, ErrMismatch))
	_, err = NewGeometry([]string{"O", "Xx"}, coords)
	assert.True(Te, errors.Is(err, ErrUnknownElement))
	_, err = NewGeometry(nil, nil)
	assert.Error(Te, err)
}

func TestGeometryIsImmutable(Te *testing.T) {
	G := water(Te)
	at := G.Atom(1)
	at.Symbol = "C"
	assert.Equal(Te, "H", G.Symbol(1))
	c := G.Coords()
	c.Set(1, 0, 100)
	assert.InDelta(Te, 0.96, G.Distance(0, 1), 1e-12)
}

func TestSubstitute(Te *testing.T) {
	G := water(Te)
	D, err := G.Substitute(1, 2.014)
	require.NoError(Te, err)
	assert.InDelta(Te, 2.014, D.Atom(1).Mass, 1e-12)
	assert.InDelta(Te, 1.008, G.Atom(1).Mass, 1e-12)
	assert.Equal(Te, "H", D.Symbol(1))
	assert.Equal(Te, 1, D.Atom(1).Index)
	assert.Equal(Te, G.Distance(0, 1), D.Distance(0, 1))
	_, err = G.Substitute(-1, 2)
	assert.True(Te, errors.Is(err, ErrUnknownIndex))
}

func TestBound(Te *testing.T) {
	G := water(Te)
	assert.True(Te, G.Bound(0, 1, DefaultChainTolerance))
	assert.True(Te, G.Bound(1, 0, DefaultChainTolerance))
	assert.False(Te, G.Bound(0, 0, DefaultChainTolerance))
	assert.False(Te, G.Bound(1, 2, DefaultChainTolerance))
	//the hydrogen bond is only a bond with a very generous tolerance.
	assert.False(Te, G.Bound(1, 3, DefaultCoordinationTolerance))
	assert.True(Te, G.Bound(1, 3, 2.1))
}

func TestBoundIsMonotonic(Te *testing.T) {
	G := water(Te)
	tols := []float64{0.5, 0.9, 1.0, 1.15, 1.21, 1.5, 2.1, 3}
	for i := 0; i < G.Len(); i++ {
		for j := 0; j < G.Len(); j++ {
			for k := 0; k < len(tols)-1; k++ {
				if G.Bound(i, j, tols[k]) {
					assert.True(Te, G.Bound(i, j, tols[k+1]), "atoms %d %d tolerances %g %g", i, j, tols[k], tols[k+1])
				}
			}
		}
	}
}

func TestClosestNeighbours(Te *testing.T) {
	G := water(Te)
	for _, tol := range []float64{1.0, 1.15, 1.5, 2.5} {
		neigh := G.ClosestNeighbours(tol)
		require.Len(Te, neigh, G.Len())
		for i := 0; i < G.Len(); i++ {
			assert.NotContains(Te, neigh[i], i)
			for k := 1; k < len(neigh[i]); k++ {
				assert.LessOrEqual(Te, G.Distance(i, neigh[i][k-1]), G.Distance(i, neigh[i][k]))
			}
			//every bonded atom must be a candidate
			for j := 0; j < G.Len(); j++ {
				if G.Bound(i, j, tol) {
					assert.Contains(Te, neigh[i], j)
				}
			}
		}
	}
	assert.Equal(Te, []int{1, 2}, G.ClosestNeighbours(1.0)[0])
	assert.Empty(Te, G.ClosestNeighbours(0)[0])
}

func TestCoordinationNumber(Te *testing.T) {
	G := water(Te)
	for _, tol := range []float64{1.0, 1.15, 1.21, 2.1, 3} {
		for i := 0; i < G.Len(); i++ {
			cn, err := CoordinationNumber(G, i, tol)
			require.NoError(Te, err)
			//brute-force reference straight from the radii.
			ref := 0
			for j := 0; j < G.Len(); j++ {
				if j != i && G.Distance(i, j) <= BondCutoff(G.Symbol(i), G.Symbol(j), tol) {
					ref++
				}
			}
			assert.Equal(Te, ref, cn, "atom %d tol %g", i, tol)
		}
	}
	cn, err := CoordinationNumber(G, 0, DefaultCoordinationTolerance)
	require.NoError(Te, err)
	assert.Equal(Te, 2, cn)

	_, err = CoordinationNumber(G, 6, 1.2)
	assert.True(Te, errors.Is(err, ErrUnknownIndex))
	_, err = CoordinationNumber(G, 0, 0)
	assert.True(Te, errors.Is(err, ErrInvalidTolerance))
}

func TestErrorDecoration(Te *testing.T) {
	err := NewError(ErrUnknownIndex, "inner", "atom %d", 3)
	assert.Equal(Te, "unknown atom index: atom 3", err.Error())
	derr := ErrDecorate(err, "outer")
	var cerr *CError
	require.True(Te, errors.As(derr, &cerr))
	assert.Equal(Te, []string{"inner", "outer"}, cerr.Decorate(""))
	assert.Equal(Te, "inner <- outer", cerr.Trace())
	assert.True(Te, cerr.Critical())
	assert.Nil(Te, ErrDecorate(nil, "x"))
	plain := ErrDecorate(errors.New("boom"), "f")
	assert.Equal(Te, "f: boom", plain.Error())
}
