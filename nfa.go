package automaton

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bits-and-blooms/bitset"
	"github.com/dekarrin/rosed"
)

// NFAState describes one state of an NFA given to NewNFA. Transitions maps a
// symbol, or Epsilon, to the set of destination states.
type NFAState struct {
	Initial     bool
	Accepted    bool
	Transitions map[Symbol][]int
}

// NFA is a nondeterministic finite automaton with epsilon transitions over
// an Alphabet. It may have several initial and accepting states. It is
// validated once by NewNFA and never changes afterwards.
type NFA struct {
	alphabet    Alphabet
	isInitial   *bitset.BitSet
	isAccept    *bitset.BitSet
	transitions []map[Symbol][]int
	hasEpsilon  bool
}

// NewNFA validates states and returns the automaton. Every problem found is
// reported as a *ValidationError naming the offending state and symbol: a
// symbol outside the alphabet or a destination out of range.
func NewNFA(alphabet Alphabet, states []NFAState) (*NFA, error) {
	n := &NFA{
		alphabet:    alphabet,
		isInitial:   bitset.New(uint(len(states))),
		isAccept:    bitset.New(uint(len(states))),
		transitions: make([]map[Symbol][]int, len(states)),
	}

	var errs []error
	for s, st := range states {
		n.isInitial.SetTo(uint(s), st.Initial)
		n.isAccept.SetTo(uint(s), st.Accepted)
		n.transitions[s] = make(map[Symbol][]int, len(st.Transitions))

		for _, sym := range slices.Sorted(maps.Keys(st.Transitions)) {
			if sym != Epsilon && !alphabet.Contains(rune(sym)) {
				errs = append(errs, invalidf(s, sym, "symbol not in alphabet %s", alphabet))
			}
			dests := slices.Clone(st.Transitions[sym])
			for _, dest := range dests {
				if dest < 0 || dest >= len(states) {
					errs = append(errs, invalidf(s, sym, "destination %d out of range [0, %d)", dest, len(states)))
				}
			}
			slices.Sort(dests)
			n.transitions[s][sym] = slices.Compact(dests)
			if sym == Epsilon && len(dests) > 0 {
				n.hasEpsilon = true
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return n, nil
}

// Size returns the number of states.
func (n *NFA) Size() int {
	return len(n.transitions)
}

// Alphabet returns the input alphabet.
func (n *NFA) Alphabet() Alphabet {
	return n.alphabet
}

// IsInitial reports whether state is flagged initial.
func (n *NFA) IsInitial(state int) bool {
	return n.isInitial.Test(uint(state))
}

// IsAccept reports whether state is an accept state.
func (n *NFA) IsAccept(state int) bool {
	return n.isAccept.Test(uint(state))
}

// InitialStates returns the states flagged initial, in ascending order.
func (n *NFA) InitialStates() []int {
	return members(n.isInitial)
}

// Successors returns the destinations of state on sym, in ascending order.
func (n *NFA) Successors(state int, sym Symbol) []int {
	return slices.Clone(n.transitions[state][sym])
}

// HasEpsilon reports whether any transition is labeled Epsilon.
func (n *NFA) HasEpsilon() bool {
	return n.hasEpsilon
}

// EpsilonClosure returns the set of states reachable from some state in set
// using zero or more epsilon transitions. set is not modified.
func (n *NFA) EpsilonClosure(set *bitset.BitSet) *bitset.BitSet {
	closure := set.Clone()
	if !n.HasEpsilon() {
		return closure
	}
	stack := members(set)

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, dest := range n.transitions[s][Epsilon] {
			if closure.Test(uint(dest)) {
				continue
			}
			closure.Set(uint(dest))
			stack = append(stack, dest)
		}
	}
	return closure
}

// move returns the states reachable from some state in set by one
// transition on c, without closure.
func (n *NFA) move(set *bitset.BitSet, c rune) *bitset.BitSet {
	next := bitset.New(uint(n.Size()))
	for s, ok := set.NextSet(0); ok; s, ok = set.NextSet(s + 1) {
		for _, dest := range n.transitions[s][Symbol(c)] {
			next.Set(uint(dest))
		}
	}
	return next
}

// Run reports whether the automaton accepts input. Each symbol computes the
// active set afresh from the previous one, resolving epsilon transitions
// before and after the step. A symbol outside the alphabet fails the run
// with an *UnknownSymbolError carrying its position.
func (n *NFA) Run(input string) (bool, error) {
	active := n.EpsilonClosure(n.isInitial)
	pos := 0
	for _, c := range input {
		if !n.alphabet.Contains(c) {
			return false, &UnknownSymbolError{Symbol: c, Pos: pos}
		}
		active = n.EpsilonClosure(n.move(active, c))
		pos++
	}
	return active.IntersectionCardinality(n.isAccept) > 0, nil
}

func members(set *bitset.BitSet) []int {
	out := make([]int, 0, set.Count())
	for s, ok := set.NextSet(0); ok; s, ok = set.NextSet(s + 1) {
		out = append(out, int(s))
	}
	return out
}

func indices(set *bitset.BitSet) []Index {
	out := make([]Index, 0, set.Count())
	for s, ok := set.NextSet(0); ok; s, ok = set.NextSet(s + 1) {
		out = append(out, Index(s))
	}
	return out
}

// Lazy exposes the NFA through the Lazy capability. Its states are the NFA
// states reachable after epsilon closure.
func (n *NFA) Lazy() Lazy[Index] {
	return nfaLazy{n: n}
}

type nfaLazy struct {
	n *NFA
}

func (a nfaLazy) InitialStates() []Index {
	return indices(a.n.EpsilonClosure(a.n.isInitial))
}

func (a nfaLazy) Accepted(s Index) bool {
	return a.n.IsAccept(int(s))
}

func (a nfaLazy) Recognizes(c rune) bool {
	return a.n.alphabet.Contains(c)
}

func (a nfaLazy) Advance(s Index, c rune) ([]Index, error) {
	if !a.n.alphabet.Contains(c) {
		return nil, unknownSymbol(c)
	}
	if int(s) < 0 || int(s) >= a.n.Size() {
		return nil, invalidf(int(s), Symbol(c), "state out of range [0, %d)", a.n.Size())
	}
	next := bitset.New(uint(a.n.Size()))
	for _, dest := range a.n.transitions[s][Symbol(c)] {
		next.Set(uint(dest))
	}
	return indices(a.n.EpsilonClosure(next)), nil
}

// String renders the transition table. Initial states are marked with "->"
// and accept states with "*".
func (n *NFA) String() string {
	symbols := n.alphabet.Symbols()

	header := []string{"", "S"}
	for _, c := range symbols {
		header = append(header, string(c))
	}
	header = append(header, "ε")
	data := [][]string{header}

	cell := func(dests []int) string {
		parts := make([]string, len(dests))
		for i, d := range dests {
			parts[i] = strconv.Itoa(d)
		}
		return "{" + strings.Join(parts, ",") + "}"
	}

	for s := range n.transitions {
		row := []string{stateMarker(n.IsInitial(s), n.IsAccept(s)), strconv.Itoa(s)}
		for _, c := range symbols {
			row = append(row, cell(n.transitions[s][Symbol(c)]))
		}
		row = append(row, cell(n.transitions[s][Epsilon]))
		data = append(data, row)
	}

	table := rosed.
		Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
	return fmt.Sprintf("NFA (%d states)\n%s", n.Size(), table)
}

// NFABuilder assembles an NFA state by state. Problems are collected and
// reported by Build.
type NFABuilder struct {
	alphabet Alphabet
	states   []NFAState
	errs     []error
}

// NewNFABuilder returns a builder for an NFA over alphabet.
func NewNFABuilder(alphabet Alphabet) *NFABuilder {
	return &NFABuilder{alphabet: alphabet}
}

// AddState creates a new state and returns its index.
func (b *NFABuilder) AddState() int {
	b.states = append(b.states, NFAState{Transitions: map[Symbol][]int{}})
	return len(b.states) - 1
}

func (b *NFABuilder) checkState(state int) bool {
	if state < 0 || state >= len(b.states) {
		b.errs = append(b.errs, invalidf(state, Epsilon, "no such state"))
		return false
	}
	return true
}

// SetInitial sets or clears the initial flag of state.
func (b *NFABuilder) SetInitial(state int, initial bool) {
	if b.checkState(state) {
		b.states[state].Initial = initial
	}
}

// SetAccept sets or clears the accept flag of state.
func (b *NFABuilder) SetAccept(state int, accept bool) {
	if b.checkState(state) {
		b.states[state].Accepted = accept
	}
}

// AddTransition adds a transition from source to dest on c. c must be a
// valid Unicode scalar value; use AddEpsilon for epsilon transitions.
func (b *NFABuilder) AddTransition(source, dest int, c rune) {
	if !utf8.ValidRune(c) {
		b.errs = append(b.errs, invalidf(source, Epsilon, "invalid input rune %U", c))
		return
	}
	b.addTransition(source, dest, Symbol(c))
}

// AddEpsilon adds an epsilon transition from source to dest.
func (b *NFABuilder) AddEpsilon(source, dest int) {
	b.addTransition(source, dest, Epsilon)
}

func (b *NFABuilder) addTransition(source, dest int, sym Symbol) {
	if !b.checkState(source) {
		return
	}
	t := b.states[source].Transitions
	t[sym] = append(t[sym], dest)
}

// Build validates the collected states and returns the NFA.
func (b *NFABuilder) Build() (*NFA, error) {
	n, err := NewNFA(b.alphabet, b.states)
	if len(b.errs) > 0 {
		return nil, errors.Join(append(slices.Clone(b.errs), err)...)
	}
	return n, err
}
