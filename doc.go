/*
 * doc.go, part of corelevels.
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

/*
Package chem is the main package of corelevels. It provides the atom and geometry
structures and the distance-based connectivity on which the rest of the library
builds.

	**corelevels Capabilities**

	Geometries built from element symbols and cartesian coordinates, with
	covalent radii (Cordero et al., 2008) and masses for most of the periodic table.

	Bond predicate with a tolerance factor: two atoms are bonded if their distance
	is not larger than the tolerance factor times the sum of their covalent radii.

	Coordination numbers for any tolerance factor.

	Selection of atoms by bond chains, such as "Pt-O-H" (package chemgraph).

	Filtering and aggregation of per-atom core-level energies, Loewdin charges
	and spins (package corelevel).

	Blue-grey-orange color gradients for those properties (package gradient), and
	export to PyMOL scripts (package pymol) and plots (package chemplot).

Nothing here computes anything quantum-mechanical. The energies and populations
are read from documents produced elsewhere (package chemjson).
*/
package chem
