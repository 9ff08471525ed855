package automaton

import (
	"strconv"

	"github.com/bits-and-blooms/bitset"
)

// Minimize returns the minimal DFA equivalent to d, using Moore's partition
// refinement. States unreachable from the initial state are dropped first.
// States of the result are numbered in breadth-first order, so the initial
// state is 0. d is not modified.
// Worst case complexity: quadratic in the number of states.
func Minimize(d *DFA) *DFA {
	order := d.breadthFirst()
	n := d.alphabet.Len()

	// class[s] is the block of state s; only reachable states are assigned.
	class := make([]int, d.numStates)
	first := map[bool]int{}
	for _, s := range order {
		accept := d.IsAccept(s)
		c, ok := first[accept]
		if !ok {
			c = len(first)
			first[accept] = c
		}
		class[s] = c
	}
	numClasses := len(first)

	next := make([]int, d.numStates)
	buf := make([]byte, 0, 8*(n+1))
	for {
		blocks := make(map[string]int, numClasses)
		for _, s := range order {
			buf = strconv.AppendInt(buf[:0], int64(class[s]), 10)
			for _, dest := range d.transitions[s*n : (s+1)*n] {
				buf = append(buf, ',')
				buf = strconv.AppendInt(buf, int64(class[dest]), 10)
			}
			c, ok := blocks[string(buf)]
			if !ok {
				c = len(blocks)
				blocks[string(buf)] = c
			}
			next[s] = c
		}
		class, next = next, class
		if len(blocks) == numClasses {
			break
		}
		numClasses = len(blocks)
	}

	m := &DFA{
		alphabet:    d.alphabet,
		initial:     class[d.initial],
		transitions: make([]int, numClasses*n),
		numStates:   numClasses,
		isAccept:    bitset.New(uint(numClasses)),
	}
	for _, s := range order {
		c := class[s]
		m.isAccept.SetTo(uint(c), d.IsAccept(s))
		for i, dest := range d.transitions[s*n : (s+1)*n] {
			m.transitions[m.transitionIndex(c, i)] = class[dest]
		}
	}
	return m
}

// Equivalent reports whether d and other accept the same language. Both
// automata must share one alphabet.
func Equivalent(d, other *DFA) (bool, error) {
	if !d.alphabet.Equal(other.alphabet) {
		return false, invalidf(-1, Epsilon, "alphabets differ: %s and %s", d.alphabet, other.alphabet)
	}

	n := d.alphabet.Len()
	type pair struct{ a, b int }
	seen := map[pair]bool{{d.initial, other.initial}: true}
	workList := []pair{{d.initial, other.initial}}
	for len(workList) > 0 {
		p := workList[len(workList)-1]
		workList = workList[:len(workList)-1]
		if d.IsAccept(p.a) != other.IsAccept(p.b) {
			return false, nil
		}
		for i := 0; i < n; i++ {
			q := pair{d.transitions[d.transitionIndex(p.a, i)], other.transitions[other.transitionIndex(p.b, i)]}
			if !seen[q] {
				seen[q] = true
				workList = append(workList, q)
			}
		}
	}
	return true, nil
}
