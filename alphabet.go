package automaton

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Symbol is a transition label of an explicit automaton: either an input
// rune or Epsilon.
type Symbol rune

// Epsilon labels a transition that consumes no input.
const Epsilon Symbol = -1

// Alphabet is an immutable, sorted set of runes.
type Alphabet struct {
	symbols []rune
}

// NewAlphabet returns the alphabet holding the given runes. Runes that are
// not valid Unicode scalar values become utf8.RuneError, so Epsilon is never
// an input symbol.
func NewAlphabet(symbols ...rune) Alphabet {
	s := slices.Clone(symbols)
	for i, c := range s {
		if !utf8.ValidRune(c) {
			s[i] = utf8.RuneError
		}
	}
	slices.Sort(s)
	return Alphabet{symbols: slices.Compact(s)}
}

// AlphabetOf returns the alphabet of all runes occurring in s.
func AlphabetOf(s string) Alphabet {
	return NewAlphabet([]rune(s)...)
}

// Contains reports whether c belongs to the alphabet.
func (a Alphabet) Contains(c rune) bool {
	_, ok := slices.BinarySearch(a.symbols, c)
	return ok
}

// Index returns the position of c in the sorted alphabet, or -1.
func (a Alphabet) Index(c rune) int {
	i, ok := slices.BinarySearch(a.symbols, c)
	if !ok {
		return -1
	}
	return i
}

// Len returns the number of symbols.
func (a Alphabet) Len() int {
	return len(a.symbols)
}

// Symbols returns the symbols in ascending order.
func (a Alphabet) Symbols() []rune {
	return slices.Clone(a.symbols)
}

// Union returns an alphabet holding the symbols of both a and b.
func (a Alphabet) Union(b Alphabet) Alphabet {
	if b.Len() == 0 {
		return a
	}
	return NewAlphabet(append(slices.Clone(a.symbols), b.symbols...)...)
}

// Equal reports whether both alphabets hold the same symbols.
func (a Alphabet) Equal(b Alphabet) bool {
	return slices.Equal(a.symbols, b.symbols)
}

func (a Alphabet) String() string {
	var sb strings.Builder
	sb.WriteRune('{')
	for i, c := range a.symbols {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteRune(c)
	}
	sb.WriteRune('}')
	return sb.String()
}
