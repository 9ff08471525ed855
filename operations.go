package automaton

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Determinize resolves a into an equivalent total DFA over alphabet (plus any
// WithSymbols) by subset construction. Only sets of states reachable from
// the initial configuration are built. Each step gathers its set in a
// reusable StateSet and looks it up in the memo table; only sets not seen
// before are frozen into a FrozenIntSet, so a set reached twice maps to one
// DFA state.
// The empty set becomes the dead state. State 0 is the initial state.
//
// Determinize fails with ErrTooComplex when more than the work limit (see
// WithWorkLimit) of states would be needed, and with any error returned by a
// while advancing on an alphabet symbol.
// Worst case complexity: exponential in the number of states of a.
func Determinize[S Ordered[S]](a Lazy[S], alphabet Alphabet, options ...CompileOption) (*DFA, error) {
	opts := newCompileOptions(options...)
	alphabet = opts.alphabet(alphabet)
	symbols := alphabet.Symbols()

	// States of a are interned to ints so that sets of them hash cheaply.
	ids := make(map[S]int)
	var interned []S
	scratch := NewStateSet(16)
	gather := func(states []S) *StateSet {
		scratch.Reset()
		for _, s := range states {
			id, ok := ids[s]
			if !ok {
				id = len(interned)
				ids[s] = id
				interned = append(interned, s)
			}
			scratch.Add(id)
		}
		return scratch
	}

	newState := NewHashMap[int](WithCapacity(16))
	var worklist []*FrozenIntSet
	isAccept := bitset.New(16)

	lookup := func(live *StateSet) (int, error) {
		if state, ok := newState.Get(live); ok {
			return state, nil
		}
		state := len(worklist)
		if state >= opts.workLimit {
			return 0, fmt.Errorf("%w: more than %d states", ErrTooComplex, opts.workLimit)
		}
		set := live.Freeze()
		newState.Set(set, state)
		worklist = append(worklist, set)
		for _, id := range set.values {
			if a.Accepted(interned[id]) {
				isAccept.Set(uint(state))
				break
			}
		}
		return state, nil
	}

	if _, err := lookup(gather(a.InitialStates())); err != nil {
		return nil, err
	}

	var transitions []int
	for upto := 0; upto < len(worklist); upto++ {
		set := worklist[upto]
		transitions = grow(transitions, (upto+1)*len(symbols))

		for i, c := range symbols {
			var next []S
			for _, id := range set.values {
				states, err := a.Advance(interned[id], c)
				if err != nil {
					return nil, err
				}
				next = append(next, states...)
			}
			dest, err := lookup(gather(next))
			if err != nil {
				return nil, err
			}
			transitions[upto*len(symbols)+i] = dest
		}
	}

	return &DFA{
		alphabet:    alphabet,
		initial:     0,
		transitions: transitions,
		numStates:   len(worklist),
		isAccept:    isAccept,
	}, nil
}

// Compile builds the lazy automaton of p and determinizes it over the
// alphabet of p plus any WithSymbols.
func Compile(p Pattern, options ...CompileOption) (*DFA, error) {
	return Determinize(FromPattern(p, options...), p.Alphabet(), options...)
}

// NFAFromPattern builds an explicit NFA for p by Thompson's construction:
// every subpattern gets its own entry and exit state joined by epsilon
// transitions. The alphabet is that of p plus any WithSymbols.
func NFAFromPattern(p Pattern, options ...CompileOption) (*NFA, error) {
	opts := newCompileOptions(options...)
	b := NewNFABuilder(opts.alphabet(p.Alphabet()))
	start, end := thompson(b, p)
	b.SetInitial(start, true)
	b.SetAccept(end, true)
	return b.Build()
}

func thompson(b *NFABuilder, p Pattern) (start, end int) {
	start, end = b.AddState(), b.AddState()
	switch p.kind {
	case KindEmpty:
		// no path from start to end
	case KindUnit:
		b.AddEpsilon(start, end)
	case KindLiteral:
		b.AddTransition(start, end, p.c)
	case KindConcat:
		prev := start
		for _, sub := range p.subs {
			s, e := thompson(b, sub)
			b.AddEpsilon(prev, s)
			prev = e
		}
		b.AddEpsilon(prev, end)
	case KindUnion:
		for _, sub := range p.subs {
			s, e := thompson(b, sub)
			b.AddEpsilon(start, s)
			b.AddEpsilon(e, end)
		}
	case KindStar:
		s, e := thompson(b, p.subs[0])
		b.AddEpsilon(start, s)
		b.AddEpsilon(start, end)
		b.AddEpsilon(e, s)
		b.AddEpsilon(e, end)
	}
	return start, end
}

// breadthFirst returns the states reachable from the initial state in
// breadth-first order, the initial state first.
func (d *DFA) breadthFirst() []int {
	seen := bitset.New(uint(d.numStates))
	seen.Set(uint(d.initial))
	order := []int{d.initial}

	n := d.alphabet.Len()
	for upto := 0; upto < len(order); upto++ {
		state := order[upto]
		for _, dest := range d.transitions[state*n : (state+1)*n] {
			if !seen.Test(uint(dest)) {
				seen.Set(uint(dest))
				order = append(order, dest)
			}
		}
	}
	return order
}

// reachable returns the states reachable from the initial state.
func (d *DFA) reachable() *bitset.BitSet {
	seen := bitset.New(uint(d.numStates))
	for _, s := range d.breadthFirst() {
		seen.Set(uint(s))
	}
	return seen
}

// IsEmpty returns true if the automaton accepts no strings.
func (d *DFA) IsEmpty() bool {
	if d.IsAccept(d.initial) {
		return false
	}
	return d.reachable().IntersectionCardinality(d.isAccept) == 0
}

// IsTotal returns true if the automaton accepts every string over its
// alphabet, that is, every reachable state accepts.
func (d *DFA) IsTotal() bool {
	live := d.reachable()
	return live.IntersectionCardinality(d.isAccept) == live.Count()
}

// Accepts returns the accepted strings of length at most maxLen over the
// alphabet, shortest first and in alphabet order within one length.
func (d *DFA) Accepts(maxLen int) []string {
	symbols := d.alphabet.Symbols()
	type item struct {
		state int
		s     []rune
	}
	var out []string
	level := []item{{state: d.initial}}
	for length := 0; length <= maxLen && len(level) > 0; length++ {
		var next []item
		for _, it := range level {
			if d.IsAccept(it.state) {
				out = append(out, string(it.s))
			}
			if length == maxLen {
				continue
			}
			for i, c := range symbols {
				next = append(next, item{
					state: d.transitions[d.transitionIndex(it.state, i)],
					s:     append(slices.Clip(it.s), c),
				})
			}
		}
		level = next
	}
	return out
}
