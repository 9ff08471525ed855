package automaton

// Automata makes basic total DFAs over a fixed alphabet.
type Automata struct {
	alphabet Alphabet
}

// NewAutomata returns a factory for automata over alphabet.
func NewAutomata(alphabet Alphabet) *Automata {
	return &Automata{alphabet: alphabet}
}

// sink returns a state looping to dest on every symbol.
func (f *Automata) sink(accept bool, dest int) DFAState {
	st := DFAState{Accepted: accept, Transitions: make(map[rune]int, f.alphabet.Len())}
	for _, c := range f.alphabet.Symbols() {
		st.Transitions[c] = dest
	}
	return st
}

// MakeEmpty
// Returns a new (deterministic) automaton with the empty language.
func (f *Automata) MakeEmpty() *DFA {
	return MustNewDFA(f.alphabet, []DFAState{f.sink(false, 0)}, 0)
}

// MakeEmptyString
// Returns a new (deterministic) automaton that accepts only the empty string.
func (f *Automata) MakeEmptyString() *DFA {
	return MustNewDFA(f.alphabet, []DFAState{f.sink(true, 1), f.sink(false, 1)}, 0)
}

// MakeAnyString
// Returns a new (deterministic) automaton that accepts all strings.
func (f *Automata) MakeAnyString() *DFA {
	return MustNewDFA(f.alphabet, []DFAState{f.sink(true, 0)}, 0)
}

// MakeChar
// Returns a new (deterministic) automaton that accepts a single symbol.
func (f *Automata) MakeChar(c rune) (*DFA, error) {
	return f.MakeString(string(c))
}

// MakeString
// Returns a new (deterministic) automaton that accepts exactly s. Every
// rune of s must be in the alphabet.
func (f *Automata) MakeString(s string) (*DFA, error) {
	runes := []rune(s)
	dead := len(runes) + 1

	states := make([]DFAState, 0, len(runes)+2)
	for i, c := range runes {
		if !f.alphabet.Contains(c) {
			return nil, &UnknownSymbolError{Symbol: c, Pos: i}
		}
		st := f.sink(false, dead)
		st.Transitions[c] = i + 1
		states = append(states, st)
	}
	states = append(states, f.sink(true, dead), f.sink(false, dead))
	return NewDFA(f.alphabet, states, 0)
}
