package chemgraph

import (
	"sort"

	chem "github.com/rmera/corelevels"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// BondGraph is the undirected graph of the bonds in a geometry under a given tolerance
// factor. Node IDs are atom indexes. It implements gonum's graph.Undirected.
// A BondGraph is a snapshot: build a new one for each tolerance.
type BondGraph struct {
	*simple.UndirectedGraph
	mol chem.Connectivity
	tol float64
}

// NewBondGraph builds the bond graph of mol under the tolerance factor tol.
// Only the candidates given by mol.ClosestNeighbours are checked for bonds.
func NewBondGraph(mol chem.Connectivity, tol float64) (*BondGraph, error) {
	if err := chem.CheckTolerance(tol); err != nil {
		return nil, chem.ErrDecorate(err, "NewBondGraph")
	}
	g := simple.NewUndirectedGraph()
	for i := 0; i < mol.Len(); i++ {
		g.AddNode(simple.Node(i))
	}
	for i, neigh := range mol.ClosestNeighbours(tol) {
		for _, j := range neigh {
			//each bond is found from both ends, we only set it from the lower index.
			if j > i && mol.Bound(i, j, tol) {
				g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
			}
		}
	}
	return &BondGraph{UndirectedGraph: g, mol: mol, tol: tol}, nil
}

// Tolerance returns the tolerance factor used to build the graph.
func (B *BondGraph) Tolerance() float64 {
	return B.tol
}

// Neighbours returns the indexes, in ascending order, of the atoms bonded
// to the atom with index i.
func (B *BondGraph) Neighbours(i int) []int {
	if B.Node(int64(i)) == nil {
		return nil
	}
	return nodeIndexes(B.From(int64(i)))
}

// Degree returns the number of atoms bonded to the atom with index i.
func (B *BondGraph) Degree(i int) int {
	if B.Node(int64(i)) == nil {
		return 0
	}
	return B.From(int64(i)).Len()
}

// Fragments returns the connected components of the graph (the separate molecules
// in the geometry). Each fragment is given in ascending order, and the fragments are
// sorted by their first index.
func (B *BondGraph) Fragments() [][]int {
	cc := topo.ConnectedComponents(B.UndirectedGraph)
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		ret = append(ret, sortedIDs(c))
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

// Fragments returns the connected components of the bond graph of mol under
// the tolerance factor tol. See BondGraph.Fragments.
func Fragments(mol chem.Connectivity, tol float64) ([][]int, error) {
	B, err := NewBondGraph(mol, tol)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Fragments")
	}
	return B.Fragments(), nil
}

func nodeIndexes(it graph.Nodes) []int {
	return sortedIDs(graph.NodesOf(it))
}

func sortedIDs(nodes []graph.Node) []int {
	ret := make([]int, 0, len(nodes))
	for _, n := range nodes {
		ret = append(ret, int(n.ID()))
	}
	sort.Ints(ret)
	return ret
}
