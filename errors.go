package automaton

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the cause of every error returned while constructing
	// an explicit automaton from inconsistent input.
	ErrValidation = errors.New("invalid automaton")

	// ErrUnknownSymbol is the cause of every error returned when an automaton
	// is advanced on a symbol outside its alphabet.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrUnsupported marks a feature that is deliberately not implemented.
	ErrUnsupported = errors.New("unsupported feature")

	// ErrSyntax is the cause of a ParseError that is not about an
	// unsupported feature.
	ErrSyntax = errors.New("syntax error")

	// ErrTooComplex is returned when determinizing would exceed the work limit.
	ErrTooComplex = errors.New("automaton too complex to determinize")
)

// ValidationError describes one problem found while validating an explicit
// automaton. State is -1 when the problem is not tied to a single state.
type ValidationError struct {
	State  int
	Symbol Symbol
	Detail string
}

func (e *ValidationError) Error() string {
	if e.State < 0 {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Detail)
	}
	if e.Symbol == Epsilon {
		return fmt.Sprintf("%s: state %d: %s", ErrValidation, e.State, e.Detail)
	}
	return fmt.Sprintf("%s: state %d on %q: %s", ErrValidation, e.State, rune(e.Symbol), e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalidf(state int, sym Symbol, format string, a ...any) error {
	return &ValidationError{State: state, Symbol: sym, Detail: fmt.Sprintf(format, a...)}
}

// UnknownSymbolError is returned when an input symbol is not part of the
// alphabet of the automaton consuming it. Pos is the rune offset of the
// symbol in the input, or -1 when the error comes from a single Advance call.
type UnknownSymbolError struct {
	Symbol rune
	Pos    int
}

func (e *UnknownSymbolError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%s %q", ErrUnknownSymbol, e.Symbol)
	}
	return fmt.Sprintf("%s %q at position %d", ErrUnknownSymbol, e.Symbol, e.Pos)
}

func (e *UnknownSymbolError) Unwrap() error {
	return ErrUnknownSymbol
}

func unknownSymbol(c rune) error {
	return &UnknownSymbolError{Symbol: c, Pos: -1}
}

// ParseError is returned by Parse. Pos is the rune offset in the source
// where the problem was detected.
type ParseError struct {
	Pos int
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
