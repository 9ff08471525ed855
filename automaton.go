package automaton

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bits-and-blooms/bitset"
	"github.com/dekarrin/rosed"
)

// DFAState describes one state of a DFA given to NewDFA. Transitions must
// hold exactly one destination for every symbol of the alphabet.
type DFAState struct {
	Accepted    bool
	Transitions map[rune]int
}

// DFA is a total deterministic finite automaton over an Alphabet. It is
// validated once by NewDFA and never changes afterwards, so it may be shared
// by concurrent callers.
type DFA struct {
	alphabet Alphabet
	initial  int

	// Row-major transition table: the destination of state s on the i-th
	// alphabet symbol is at s*alphabet.Len()+i.
	transitions []int

	numStates int
	isAccept  *bitset.BitSet
}

// NewDFA validates states and returns the automaton. Every problem found is
// reported, each as a *ValidationError: an empty state list, an initial
// index out of range, a symbol outside the alphabet, a destination out of
// range, or a missing transition.
func NewDFA(alphabet Alphabet, states []DFAState, initial int) (*DFA, error) {
	var errs []error
	if len(states) == 0 {
		errs = append(errs, invalidf(-1, Epsilon, "no states"))
	}
	if initial < 0 || initial >= len(states) {
		errs = append(errs, invalidf(-1, Epsilon, "initial state %d out of range [0, %d)", initial, len(states)))
	}

	symbols := alphabet.Symbols()
	d := &DFA{
		alphabet:    alphabet,
		initial:     initial,
		transitions: make([]int, len(states)*len(symbols)),
		numStates:   len(states),
		isAccept:    bitset.New(uint(len(states))),
	}

	for s, st := range states {
		d.isAccept.SetTo(uint(s), st.Accepted)
		for c, dest := range st.Transitions {
			if !alphabet.Contains(c) {
				errs = append(errs, invalidf(s, Symbol(c), "symbol not in alphabet %s", alphabet))
			}
			if dest < 0 || dest >= len(states) {
				errs = append(errs, invalidf(s, Symbol(c), "destination %d out of range [0, %d)", dest, len(states)))
			}
		}
		for i, c := range symbols {
			dest, ok := st.Transitions[c]
			if !ok {
				errs = append(errs, invalidf(s, Symbol(c), "missing transition"))
				continue
			}
			d.transitions[d.transitionIndex(s, i)] = dest
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return d, nil
}

// MustNewDFA is like NewDFA but panics on error.
func MustNewDFA(alphabet Alphabet, states []DFAState, initial int) *DFA {
	d, err := NewDFA(alphabet, states, initial)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *DFA) transitionIndex(state, symbolIndex int) int {
	return state*d.alphabet.Len() + symbolIndex
}

// Size returns the number of states.
func (d *DFA) Size() int {
	return d.numStates
}

// Alphabet returns the input alphabet.
func (d *DFA) Alphabet() Alphabet {
	return d.alphabet
}

// Initial returns the initial state.
func (d *DFA) Initial() int {
	return d.initial
}

// IsAccept returns true if state is an accept state.
func (d *DFA) IsAccept(state int) bool {
	return d.isAccept.Test(uint(state))
}

// Step returns the destination of state on c. It fails with an
// *UnknownSymbolError when c is not in the alphabet and with a
// *ValidationError when state does not exist.
func (d *DFA) Step(state int, c rune) (int, error) {
	i := d.alphabet.Index(c)
	if i < 0 {
		return 0, unknownSymbol(c)
	}
	if state < 0 || state >= d.numStates {
		return 0, invalidf(state, Symbol(c), "state out of range [0, %d)", d.numStates)
	}
	return d.transitions[d.transitionIndex(state, i)], nil
}

// Run reports whether the automaton accepts input. A symbol outside the
// alphabet fails the whole run with an *UnknownSymbolError carrying its
// position.
func (d *DFA) Run(input string) (bool, error) {
	state := d.initial
	pos := 0
	for _, c := range input {
		i := d.alphabet.Index(c)
		if i < 0 {
			return false, &UnknownSymbolError{Symbol: c, Pos: pos}
		}
		state = d.transitions[d.transitionIndex(state, i)]
		pos++
	}
	return d.IsAccept(state), nil
}

// States returns a description of every state that NewDFA accepts back.
func (d *DFA) States() []DFAState {
	symbols := d.alphabet.Symbols()
	states := make([]DFAState, d.numStates)
	for s := range states {
		states[s] = DFAState{
			Accepted:    d.IsAccept(s),
			Transitions: make(map[rune]int, len(symbols)),
		}
		for i, c := range symbols {
			states[s].Transitions[c] = d.transitions[d.transitionIndex(s, i)]
		}
	}
	return states
}

// Lazy exposes the DFA through the Lazy capability.
func (d *DFA) Lazy() Lazy[Index] {
	return dfaLazy{d: d}
}

type dfaLazy struct {
	d *DFA
}

func (a dfaLazy) InitialStates() []Index {
	return []Index{Index(a.d.initial)}
}

func (a dfaLazy) Accepted(s Index) bool {
	return a.d.IsAccept(int(s))
}

func (a dfaLazy) Recognizes(c rune) bool {
	return a.d.alphabet.Contains(c)
}

func (a dfaLazy) Advance(s Index, c rune) ([]Index, error) {
	next, err := a.d.Step(int(s), c)
	if err != nil {
		return nil, err
	}
	return []Index{Index(next)}, nil
}

// String renders the transition table. The initial state is marked with
// "->" and accept states with "*".
func (d *DFA) String() string {
	symbols := d.alphabet.Symbols()

	header := []string{"", "S"}
	for _, c := range symbols {
		header = append(header, string(c))
	}
	data := [][]string{header}

	for s := 0; s < d.numStates; s++ {
		row := []string{stateMarker(s == d.initial, d.IsAccept(s)), strconv.Itoa(s)}
		for i := range symbols {
			row = append(row, strconv.Itoa(d.transitions[d.transitionIndex(s, i)]))
		}
		data = append(data, row)
	}

	table := rosed.
		Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
	return fmt.Sprintf("DFA (%d states)\n%s", d.numStates, table)
}

func stateMarker(initial, accept bool) string {
	switch {
	case initial && accept:
		return "->*"
	case initial:
		return "->"
	case accept:
		return "*"
	}
	return ""
}
