package chemgraph

import (
	"sort"
	"strings"

	chem "github.com/rmera/corelevels"
)

// ChainSeparator separates the element symbols in a bond-chain specification.
const ChainSeparator = "-"

// ParseChain splits a bond-chain specification such as "Pt-O-H" (a Pt bonded
// to an O, bonded to an H) into its element symbols. A specification needs at
// least one separator, and no empty elements.
func ParseChain(spec string) ([]string, error) {
	if !strings.Contains(spec, ChainSeparator) {
		return nil, chem.NewError(chem.ErrInvalidChainSpec, "ParseChain", "%q has no %q separator", spec, ChainSeparator)
	}
	fields := strings.Split(spec, ChainSeparator)
	ret := make([]string, 0, len(fields))
	for i, f := range fields {
		s := chem.NormalizeSymbol(f)
		if s == "" {
			return nil, chem.NewError(chem.ErrInvalidChainSpec, "ParseChain", "%q: element %d is empty", spec, i)
		}
		ret = append(ret, s)
	}
	return ret, nil
}

// ResolveChain returns, in ascending order, the atoms of the last element of chain
// that can be reached from an atom of the first element by following bonds
// through atoms of the elements in between, in order.
// A chain with a single element returns all the atoms of that element.
// An empty result is not an error.
func (B *BondGraph) ResolveChain(chain []string) []int {
	if len(chain) == 0 {
		return []int{}
	}
	cand := make(map[int]bool)
	for _, i := range chem.ElementIndexes(B.mol, chain[0]) {
		cand[i] = true
	}
	//Each step replaces the candidates with the atoms of the next element
	//bonded to at least one of them. Nothing is accumulated from earlier steps, so
	//an atom can be reached again through a ring or by stepping back (O-H-O).
	for _, element := range chain[1:] {
		if len(cand) == 0 {
			break
		}
		next := make(map[int]bool)
		for _, i := range chem.ElementIndexes(B.mol, element) {
			for _, n := range B.Neighbours(i) {
				if cand[n] {
					next[i] = true
					break
				}
			}
		}
		cand = next
	}
	return setToSorted(cand)
}

// ResolveChain builds the bond graph of mol under the tolerance factor tol and
// resolves chain on it. See BondGraph.ResolveChain.
func ResolveChain(mol chem.Connectivity, chain []string, tol float64) ([]int, error) {
	for i, v := range chain {
		if chem.NormalizeSymbol(v) == "" {
			return nil, chem.NewError(chem.ErrInvalidChainSpec, "ResolveChain", "element %d is empty", i)
		}
	}
	B, err := NewBondGraph(mol, tol)
	if err != nil {
		return nil, chem.ErrDecorate(err, "ResolveChain")
	}
	return B.ResolveChain(chain), nil
}

// SelectByChain parses each of the bond-chain specifications specs, resolves
// each of them independently on mol with the tolerance factor tol (use
// chem.DefaultChainTolerance if unsure) and returns the union of the results, in ascending order.
func SelectByChain(mol chem.Connectivity, specs []string, tol float64) ([]int, error) {
	chains := make([][]string, 0, len(specs))
	for _, s := range specs {
		c, err := ParseChain(s)
		if err != nil {
			return nil, chem.ErrDecorate(err, "SelectByChain")
		}
		chains = append(chains, c)
	}
	B, err := NewBondGraph(mol, tol)
	if err != nil {
		return nil, chem.ErrDecorate(err, "SelectByChain")
	}
	union := make(map[int]bool)
	for _, c := range chains {
		for _, i := range B.ResolveChain(c) {
			union[i] = true
		}
	}
	return setToSorted(union), nil
}

func setToSorted(set map[int]bool) []int {
	ret := make([]int, 0, len(set))
	for k := range set {
		ret = append(ret, k)
	}
	sort.Ints(ret)
	return ret
}
