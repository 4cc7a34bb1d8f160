// Package transposition enumerates, for a sequence length up to 9, the
// swap walk used to realize the pattern "A ~ B" transposition operator:
// every permutation of the sequence positions, ordered so each consecutive
// pair differs by exactly one transposition (an exchange of two positions).
package transposition

import (
	"fmt"
	"slices"
	"sync"
)

// MaxSize is the largest sequence length a transposition may be applied to.
const MaxSize = 9

// Swap is one transposition step: applying it exchanges the
// elements currently at positions P and Q (P < Q) of the sequence being
// permuted.
type Swap struct {
	P, Q int
}

// Apply exchanges s[sw.P] and s[sw.Q] in place.
func (sw Swap) Apply(s []int) {
	s[sw.P], s[sw.Q] = s[sw.Q], s[sw.P]
}

var (
	mu    sync.Mutex
	cache = make(map[int][]Swap)
)

// Swaps returns the cached swap list for size n, computing and caching it
// on first use. The returned list has n! - 1 entries: applying them in
// order to the identity permutation visits every permutation of [0, n)
// exactly once.
func Swaps(n int) ([]Swap, error) {
	if n < 1 || n > MaxSize {
		return nil, fmt.Errorf("transposition: size %d out of range [1, %d]", n, MaxSize)
	}
	mu.Lock()
	defer mu.Unlock()
	if swaps, ok := cache[n]; ok {
		return swaps, nil
	}
	swaps := fillSwaps(n)
	cache[n] = swaps
	return swaps, nil
}

// fillSwaps generates every permutation of [0, n), then greedily walks them
// connecting each to the next reachable permutation by exactly one
// transposition.
func fillSwaps(n int) []Swap {
	identity := make([]int, n)
	for i := range identity {
		identity[i] = i
	}

	all := generate(identity)
	// Lexicographic order puts the identity first, so all[1:] is every
	// other permutation.
	slices.SortFunc(all, slices.Compare)
	remaining := make([][]int, len(all)-1)
	copy(remaining, all[1:])

	current := identity
	swaps := make([]Swap, 0, len(remaining))
	for len(remaining) > 0 {
		idx := -1
		var found Swap
		for i, candidate := range remaining {
			if sw, ok := connect(current, candidate); ok {
				idx, found = i, sw
				break
			}
		}
		if idx < 0 {
			// The permutation graph under adjacent transpositions is
			// connected for every n, so every remaining permutation is
			// reachable eventually; this is unreachable in practice.
			panic("transposition: no connected permutation found")
		}
		swaps = append(swaps, found)
		current = remaining[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return swaps
}

// generate returns every permutation of base, built by recursively
// inserting the last element of base into every position of the
// permutations of base[:len(base)-1].
func generate(base []int) [][]int {
	if len(base) == 1 {
		return [][]int{{base[0]}}
	}
	head := base[len(base)-1]
	subPerms := generate(base[:len(base)-1])

	out := make([][]int, 0, len(subPerms)*len(base))
	for _, perm := range subPerms {
		for pos := 0; pos <= len(perm); pos++ {
			next := make([]int, 0, len(perm)+1)
			next = append(next, perm[:pos]...)
			next = append(next, head)
			next = append(next, perm[pos:]...)
			out = append(out, next)
		}
	}
	return out
}

// connect reports whether second is reachable from first by exactly one
// transposition: there are exactly two differing positions p < q,
// and first[p] == second[q] while first[q] == second[p].
func connect(first, second []int) (Swap, bool) {
	p, q := -1, -1
	for i := range first {
		if first[i] != second[i] {
			if p < 0 {
				p = i
			} else if q < 0 {
				q = i
			} else {
				return Swap{}, false // more than two differing positions
			}
		}
	}
	if p < 0 || q < 0 {
		return Swap{}, false
	}
	if first[p] == second[q] && first[q] == second[p] {
		return Swap{P: p, Q: q}, true
	}
	return Swap{}, false
}
