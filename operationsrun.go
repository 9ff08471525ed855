package automaton

import (
	"errors"
	"slices"
)

// Match reports whether a accepts input. It folds Advance over the runes of
// input, carrying the sorted, duplicate-free set of active states, and
// accepts when some state active after the last rune is accepted.
//
// When a state rejects a symbol as unknown, Match fails with an
// *UnknownSymbolError whose Pos is the rune offset of that symbol. Other
// errors from Advance are returned unchanged. Once no state is active the
// remaining runes are only checked against a, which must implement
// Recognizer for them to be reported as unknown.
func Match[S Ordered[S]](a Lazy[S], input string) (bool, error) {
	active := canonical(slices.Clone(a.InitialStates()))
	pos := 0
	for _, c := range input {
		if len(active) == 0 {
			if !recognizes(a, c) {
				return false, &UnknownSymbolError{Symbol: c, Pos: pos}
			}
			pos++
			continue
		}

		var next []S
		for _, s := range active {
			states, err := a.Advance(s, c)
			if err != nil {
				var unknown *UnknownSymbolError
				if errors.As(err, &unknown) {
					return false, &UnknownSymbolError{Symbol: unknown.Symbol, Pos: pos}
				}
				return false, err
			}
			next = append(next, states...)
		}
		active = canonical(next)
		pos++
	}
	return slices.ContainsFunc(active, a.Accepted), nil
}

// MatchPattern builds the lazy automaton of p and matches input against it.
func MatchPattern(p Pattern, input string, options ...CompileOption) (bool, error) {
	return Match(FromPattern(p, options...), input)
}
