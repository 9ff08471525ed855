package automaton

import (
	"cmp"
	"slices"
)

// Ordered is satisfied by every automaton state type. States are map keys
// and are totally ordered so that sets of them have one canonical form.
type Ordered[S any] interface {
	comparable
	Compare(other S) int
}

// Lazy is the capability shared by every automaton: enumerate the initial
// configuration, test acceptance and advance on a symbol. Implementations are
// stateless with respect to a run; the states carry everything.
//
// Advance returns an *UnknownSymbolError when c is outside the symbols the
// automaton recognizes, and an empty slice when s has no transition on c.
type Lazy[S Ordered[S]] interface {
	InitialStates() []S
	Accepted(s S) bool
	Advance(s S, c rune) ([]S, error)
}

// Recognizer is implemented by automata that can tell, without a state,
// whether a symbol belongs to what they recognize. Match uses it to report
// unknown symbols after every path has died.
type Recognizer interface {
	Recognizes(c rune) bool
}

// recognizes reports whether a recognizes c. Automata that do not implement
// Recognizer are assumed to recognize every symbol.
func recognizes(a any, c rune) bool {
	if r, ok := a.(Recognizer); ok {
		return r.Recognizes(c)
	}
	return true
}

// Index is the state type of leaf and explicit automata.
type Index int

// Compare implements Ordered.
func (i Index) Compare(o Index) int {
	return cmp.Compare(i, o)
}

// canonical sorts states and drops duplicates in place.
func canonical[S Ordered[S]](states []S) []S {
	slices.SortFunc(states, func(a, b S) int { return a.Compare(b) })
	return slices.Compact(states)
}

// Void is the automaton of the empty language over an alphabet.
type Void struct {
	Alphabet Alphabet
}

var (
	_ Lazy[Index] = Void{}
	_ Recognizer  = Void{}
)

func (Void) InitialStates() []Index { return nil }

func (Void) Accepted(Index) bool { return false }

func (v Void) Recognizes(c rune) bool { return v.Alphabet.Contains(c) }

func (v Void) Advance(_ Index, c rune) ([]Index, error) {
	if !v.Recognizes(c) {
		return nil, unknownSymbol(c)
	}
	return nil, nil
}

// EmptyString is the automaton accepting only the empty string.
type EmptyString struct {
	Alphabet Alphabet
}

var _ Lazy[Index] = EmptyString{}

func (EmptyString) InitialStates() []Index { return []Index{0} }

func (EmptyString) Accepted(s Index) bool { return s == 0 }

func (e EmptyString) Recognizes(c rune) bool { return e.Alphabet.Contains(c) }

func (e EmptyString) Advance(_ Index, c rune) ([]Index, error) {
	if !e.Recognizes(c) {
		return nil, unknownSymbol(c)
	}
	return nil, nil
}

// Char is the automaton accepting the single string c. State 0 is initial
// and state 1 accepting.
type Char struct {
	C        rune
	Alphabet Alphabet
}

var _ Lazy[Index] = Char{}

func (Char) InitialStates() []Index { return []Index{0} }

func (Char) Accepted(s Index) bool { return s == 1 }

func (ch Char) Recognizes(c rune) bool { return c == ch.C || ch.Alphabet.Contains(c) }

func (ch Char) Advance(s Index, c rune) ([]Index, error) {
	if !ch.Recognizes(c) {
		return nil, unknownSymbol(c)
	}
	if s == 0 && c == ch.C {
		return []Index{1}, nil
	}
	return nil, nil
}
