package automaton

import (
	"fmt"
	"strings"
)

// Parse parses a regular expression into a Pattern.
//
// Supported syntax:
//
//	union   := concat ('|' concat)*
//	concat  := repeat+
//	repeat  := simple '*'?
//	simple  := '#' | '()' | '(' union ')' | char
//	char    := '\' any | any rune not in ()|*#\[]&~.@
//
// '#' is the empty language and '()' the empty string. The empty source
// parses to Unit. Intersection, complement, character classes, any-char,
// any-string and counted repetition are rejected with a ParseError wrapping
// ErrUnsupported.
func Parse(s string) (Pattern, error) {
	r := &regExpParser{originalString: []rune(s)}
	if len(r.originalString) == 0 {
		return Unit(), nil
	}

	e, err := r.parseUnionExp()
	if err != nil {
		return Pattern{}, err
	}
	if r.more() {
		return Pattern{}, r.errorf("end-of-string expected")
	}
	return e, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Pattern {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

type regExpParser struct {
	originalString []rune
	pos            int
}

func (r *regExpParser) errorf(format string, a ...any) error {
	return &ParseError{Pos: r.pos, Msg: fmt.Sprintf(format, a...), Err: ErrSyntax}
}

func (r *regExpParser) unsupported(feature string) error {
	return &ParseError{
		Pos: r.pos,
		Msg: fmt.Sprintf("%s is not supported", feature),
		Err: ErrUnsupported,
	}
}

func (r *regExpParser) more() bool {
	return r.pos < len(r.originalString)
}

func (r *regExpParser) peek(s string) bool {
	return r.more() && strings.ContainsRune(s, r.originalString[r.pos])
}

func (r *regExpParser) match(c rune) bool {
	if r.more() && r.originalString[r.pos] == c {
		r.pos++
		return true
	}
	return false
}

func (r *regExpParser) next() (rune, error) {
	if !r.more() {
		return 0, r.errorf("unexpected end of expression")
	}
	ch := r.originalString[r.pos]
	r.pos++
	return ch, nil
}

func (r *regExpParser) parseUnionExp() (Pattern, error) {
	alts := make([]Pattern, 0, 2)
	for {
		e, err := r.parseInterExp()
		if err != nil {
			return Pattern{}, err
		}
		alts = append(alts, e)
		if !r.match('|') {
			return Union(alts...), nil
		}
	}
}

func (r *regExpParser) parseInterExp() (Pattern, error) {
	e, err := r.parseConcatExp()
	if err != nil {
		return Pattern{}, err
	}
	if r.peek("&") {
		return Pattern{}, r.unsupported("intersection")
	}
	return e, nil
}

func (r *regExpParser) parseConcatExp() (Pattern, error) {
	if !r.more() || r.peek(")|&") {
		return Pattern{}, r.errorf("expression expected")
	}
	seq := make([]Pattern, 0, 2)
	for r.more() && !r.peek(")|&") {
		e, err := r.parseRepeatExp()
		if err != nil {
			return Pattern{}, err
		}
		seq = append(seq, e)
	}
	return Concat(seq...), nil
}

func (r *regExpParser) parseRepeatExp() (Pattern, error) {
	e, err := r.parseComplExp()
	if err != nil {
		return Pattern{}, err
	}
	if r.match('*') {
		e = Star(e)
	}
	if r.peek("?+{") {
		return Pattern{}, r.unsupported(fmt.Sprintf("repetition operator %q", r.originalString[r.pos]))
	}
	if r.peek("*") {
		return Pattern{}, r.errorf("repeated '*' must be parenthesized")
	}
	return e, nil
}

func (r *regExpParser) parseComplExp() (Pattern, error) {
	if r.peek("~") {
		return Pattern{}, r.unsupported("complement")
	}
	return r.parseCharClassExp()
}

func (r *regExpParser) parseCharClassExp() (Pattern, error) {
	if r.peek("[") {
		return Pattern{}, r.unsupported("character class")
	}
	return r.parseSimpleExp()
}

func (r *regExpParser) parseSimpleExp() (Pattern, error) {
	if r.peek(".") {
		return Pattern{}, r.unsupported("any-char")
	} else if r.peek("@") {
		return Pattern{}, r.unsupported("any-string")
	} else if r.match('#') {
		return Empty(), nil
	} else if r.match('(') {
		if r.match(')') {
			return Unit(), nil
		}
		e, err := r.parseUnionExp()
		if err != nil {
			return Pattern{}, err
		}
		if !r.match(')') {
			return Pattern{}, r.errorf("expected ')'")
		}
		return e, nil
	}

	c, err := r.parseCharExp()
	if err != nil {
		return Pattern{}, err
	}
	return Literal(c), nil
}

func (r *regExpParser) parseCharExp() (rune, error) {
	if r.match('\\') {
		return r.next()
	}
	if r.peek(metaChars) {
		return 0, r.errorf("unexpected %q", r.originalString[r.pos])
	}
	return r.next()
}
