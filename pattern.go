package automaton

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Kind identifies the variant of a Pattern.
type Kind int

const (
	KindEmpty   = Kind(iota) // Matches nothing
	KindUnit                 // Matches only the empty string
	KindLiteral              // A single symbol
	KindConcat               // A sequence of two or more patterns
	KindUnion                // A choice between two or more patterns
	KindStar                 // Zero or more repetitions of a pattern
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindUnit:
		return "Unit"
	case KindLiteral:
		return "Literal"
	case KindConcat:
		return "Concat"
	case KindUnion:
		return "Union"
	case KindStar:
		return "Star"
	}
	return "Kind(?)"
}

// Pattern is an immutable regular expression tree. The zero value is the
// Empty pattern. Build patterns with Empty, Unit, Literal, Concat, Union and
// Star, or with Parse.
type Pattern struct {
	kind Kind
	c    rune
	subs []Pattern
}

var _ Hashable = Pattern{}

// Empty returns the pattern matching no string at all.
func Empty() Pattern {
	return Pattern{kind: KindEmpty}
}

// Unit returns the pattern matching only the empty string.
func Unit() Pattern {
	return Pattern{kind: KindUnit}
}

// Literal returns the pattern matching exactly c. A rune that is not a valid
// Unicode scalar value, Epsilon included, becomes utf8.RuneError, the rune it
// turns into when converted to a string.
func Literal(c rune) Pattern {
	if !utf8.ValidRune(c) {
		c = utf8.RuneError
	}
	return Pattern{kind: KindLiteral, c: c}
}

// Concat returns the concatenation of ps. No patterns gives Unit, a single
// pattern is returned as is.
func Concat(ps ...Pattern) Pattern {
	switch len(ps) {
	case 0:
		return Unit()
	case 1:
		return ps[0]
	}
	return Pattern{kind: KindConcat, subs: slices.Clone(ps)}
}

// Union returns the alternation of ps. No patterns gives Empty, a single
// pattern is returned as is.
func Union(ps ...Pattern) Pattern {
	switch len(ps) {
	case 0:
		return Empty()
	case 1:
		return ps[0]
	}
	return Pattern{kind: KindUnion, subs: slices.Clone(ps)}
}

// Star returns the Kleene closure of p.
func Star(p Pattern) Pattern {
	return Pattern{kind: KindStar, subs: []Pattern{p}}
}

// Kind returns the variant of p.
func (p Pattern) Kind() Kind {
	return p.kind
}

// Symbol returns the symbol of a Literal pattern and 0 for every other kind.
func (p Pattern) Symbol() rune {
	return p.c
}

// Children returns the operands of a Concat, Union or Star pattern.
func (p Pattern) Children() []Pattern {
	return slices.Clone(p.subs)
}

// Alphabet returns the set of symbols used by literals in p.
func (p Pattern) Alphabet() Alphabet {
	var symbols []rune
	p.walk(func(q Pattern) {
		if q.kind == KindLiteral {
			symbols = append(symbols, q.c)
		}
	})
	return NewAlphabet(symbols...)
}

func (p Pattern) walk(fn func(Pattern)) {
	fn(p)
	for _, sub := range p.subs {
		sub.walk(fn)
	}
}

// Equal reports whether p and o are structurally identical.
func (p Pattern) Equal(o Pattern) bool {
	if p.kind != o.kind || p.c != o.c || len(p.subs) != len(o.subs) {
		return false
	}
	for i := range p.subs {
		if !p.subs[i].Equal(o.subs[i]) {
			return false
		}
	}
	return true
}

// Equals implements Hashable.
func (p Pattern) Equals(other Hashable) bool {
	o, ok := other.(Pattern)
	return ok && p.Equal(o)
}

// Hash implements Hashable. Equal patterns have equal hashes.
func (p Pattern) Hash() uint64 {
	h := uint64(mix32(int(p.kind)))
	h = h*31 + uint64(mix32(int(p.c)))
	for _, sub := range p.subs {
		h = h*31 + sub.Hash()
	}
	return h
}

const metaChars = `()|*#\[]&~.@`

// String renders p in its fully parenthesized canonical form. Parse of the
// result yields a pattern equal to p.
func (p Pattern) String() string {
	var sb strings.Builder
	p.render(&sb)
	return sb.String()
}

func (p Pattern) render(sb *strings.Builder) {
	switch p.kind {
	case KindEmpty:
		sb.WriteByte('#')
	case KindUnit:
		sb.WriteString("()")
	case KindLiteral:
		if strings.ContainsRune(metaChars, p.c) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(p.c)
	case KindConcat:
		for _, sub := range p.subs {
			sb.WriteByte('(')
			sub.render(sb)
			sb.WriteByte(')')
		}
	case KindUnion:
		for i, sub := range p.subs {
			if i > 0 {
				sb.WriteByte('|')
			}
			sb.WriteByte('(')
			sub.render(sb)
			sb.WriteByte(')')
		}
	case KindStar:
		sb.WriteByte('(')
		p.subs[0].render(sb)
		sb.WriteString(")*")
	}
}
