package automaton

// DefaultDeterminizeWorkLimit is the default bound on the number of DFA
// states Determinize may create.
const DefaultDeterminizeWorkLimit = 10000

type compileOptions struct {
	symbols   []rune
	workLimit int
}

// CompileOption configures FromPattern, MatchPattern, Determinize and Compile.
type CompileOption func(*compileOptions)

// WithSymbols adds symbols to the alphabet. Input symbols outside the
// alphabet are reported as unknown; adding them makes them plain mismatches.
func WithSymbols(symbols ...rune) CompileOption {
	return func(o *compileOptions) {
		o.symbols = append(o.symbols, symbols...)
	}
}

// WithWorkLimit bounds the number of states Determinize may create.
func WithWorkLimit(limit int) CompileOption {
	return func(o *compileOptions) {
		o.workLimit = limit
	}
}

func newCompileOptions(options ...CompileOption) *compileOptions {
	opts := &compileOptions{
		workLimit: DefaultDeterminizeWorkLimit,
	}
	for _, fn := range options {
		fn(opts)
	}
	return opts
}

func (o *compileOptions) alphabet(base Alphabet) Alphabet {
	return base.Union(NewAlphabet(o.symbols...))
}

// FromPattern builds the lazy automaton of p by composing leaf automata with
// Either, Concatenate and Repeat along the tree. Sequences are folded from
// the right. Every leaf recognizes the alphabet of p plus any WithSymbols.
// Structurally equal subtrees share one automaton.
func FromPattern(p Pattern, options ...CompileOption) Lazy[Erased] {
	opts := newCompileOptions(options...)
	b := &lazyBuilder{
		alphabet: opts.alphabet(p.Alphabet()),
		memo:     NewHashMap[Lazy[Erased]](WithCapacity(16)),
	}
	return b.build(p)
}

type lazyBuilder struct {
	alphabet Alphabet
	memo     *HashMap[Lazy[Erased]]
}

func (b *lazyBuilder) build(p Pattern) Lazy[Erased] {
	if a, ok := b.memo.Get(p); ok {
		return a
	}

	var a Lazy[Erased]
	switch p.kind {
	case KindEmpty:
		a = Erase[Index](Void{Alphabet: b.alphabet})
	case KindUnit:
		a = Erase[Index](EmptyString{Alphabet: b.alphabet})
	case KindLiteral:
		a = Erase[Index](Char{C: p.c, Alphabet: b.alphabet})
	case KindConcat:
		a = b.build(p.subs[len(p.subs)-1])
		for i := len(p.subs) - 2; i >= 0; i-- {
			a = Erase(Concatenate(b.build(p.subs[i]), a))
		}
	case KindUnion:
		a = b.build(p.subs[len(p.subs)-1])
		for i := len(p.subs) - 2; i >= 0; i-- {
			a = Erase(Either(b.build(p.subs[i]), a))
		}
	case KindStar:
		a = Erase(Repeat(b.build(p.subs[0])))
	}

	b.memo.Set(p, a)
	return a
}
