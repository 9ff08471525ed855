package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	d, err := Compile(MustParse("(a|b)*c*"))
	require.NoError(t, err)
	assert.True(t, d.Alphabet().Equal(AlphabetOf("abc")))
	assert.Equal(t, 0, d.Initial())

	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"abab", true},
		{"abcc", true},
		{"cc", true},
		{"ca", false},
		{"acb", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := d.Run(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("total over its alphabet", func(t *testing.T) {
		_, err := NewDFA(d.Alphabet(), d.States(), d.Initial())
		assert.NoError(t, err)
	})

	t.Run("WithSymbols widens the alphabet", func(t *testing.T) {
		d, err := Compile(MustParse("a*"), WithSymbols('b'))
		require.NoError(t, err)
		got, err := d.Run("ab")
		require.NoError(t, err)
		assert.False(t, got)
	})
}

func TestCompileAgainstOracle(t *testing.T) {
	for _, src := range oraclePatterns {
		p := MustParse(src)
		symbols := p.Alphabet().Union(AlphabetOf("abc")).Symbols()

		t.Run(src, func(t *testing.T) {
			d, err := Compile(p, WithSymbols(symbols...))
			require.NoError(t, err)
			m := Minimize(d)
			n, err := NFAFromPattern(p, WithSymbols(symbols...))
			require.NoError(t, err)

			assert.LessOrEqual(t, m.Size(), d.Size())
			eq, err := Equivalent(d, m)
			require.NoError(t, err)
			assert.True(t, eq)

			for _, input := range allStrings(symbols, 5) {
				want := naiveMatch(p, []rune(input))

				got, err := d.Run(input)
				require.NoError(t, err)
				assert.Equalf(t, want, got, "dfa %s on %q", src, input)

				got, err = m.Run(input)
				require.NoError(t, err)
				assert.Equalf(t, want, got, "minimal dfa %s on %q", src, input)

				got, err = n.Run(input)
				require.NoError(t, err)
				assert.Equalf(t, want, got, "nfa %s on %q", src, input)
			}
		})
	}
}

func TestDeterminize(t *testing.T) {
	t.Run("NFA", func(t *testing.T) {
		n := endsWithAB(t)
		d, err := Determinize(n.Lazy(), n.Alphabet())
		require.NoError(t, err)
		assert.Equal(t, 3, d.Size())

		for _, input := range allStrings([]rune("ab"), 5) {
			want, err := n.Run(input)
			require.NoError(t, err)
			got, err := d.Run(input)
			require.NoError(t, err)
			assert.Equalf(t, want, got, "input %q", input)
		}
	})

	t.Run("shared subsets become one state", func(t *testing.T) {
		d, err := Determinize(mod3(t).Lazy(), AlphabetOf("01"))
		require.NoError(t, err)
		assert.Equal(t, 3, d.Size())
	})

	t.Run("empty set is the dead state", func(t *testing.T) {
		d, err := Compile(MustParse("a"), WithSymbols('b'))
		require.NoError(t, err)
		// start, after a, dead
		assert.Equal(t, 3, d.Size())
		dead, err := d.Step(0, 'b')
		require.NoError(t, err)
		next, err := d.Step(dead, 'a')
		require.NoError(t, err)
		assert.Equal(t, dead, next)
	})

	t.Run("work limit", func(t *testing.T) {
		_, err := Compile(MustParse("abc"), WithWorkLimit(2))
		assert.ErrorIs(t, err, ErrTooComplex)

		_, err = Compile(MustParse("abc"), WithWorkLimit(5))
		assert.NoError(t, err)
	})

	t.Run("symbol unknown to the automaton", func(t *testing.T) {
		_, err := Determinize(FromPattern(MustParse("a")), AlphabetOf("ab"))
		assert.ErrorIs(t, err, ErrUnknownSymbol)
	})

	t.Run("empty alphabet", func(t *testing.T) {
		d, err := Compile(MustParse("()*"))
		require.NoError(t, err)
		assert.Equal(t, 1, d.Size())
		got, err := d.Run("")
		require.NoError(t, err)
		assert.True(t, got)
	})
}

func TestNFAFromPattern(t *testing.T) {
	n, err := NFAFromPattern(MustParse("a"))
	require.NoError(t, err)
	assert.Equal(t, 2, n.Size())
	assert.False(t, n.HasEpsilon())

	n, err = NFAFromPattern(MustParse("(ab)*"))
	require.NoError(t, err)
	assert.True(t, n.HasEpsilon())
	assert.Len(t, n.InitialStates(), 1)

	d, err := Determinize(n.Lazy(), n.Alphabet())
	require.NoError(t, err)
	for input, want := range map[string]bool{"": true, "ab": true, "abab": true, "aba": false} {
		got, err := d.Run(input)
		require.NoError(t, err)
		assert.Equalf(t, want, got, "input %q", input)
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"#", true},
		{"a#", true},
		{"(a#)*b#", true},
		{"()", false},
		{"a", false},
		{"(#)*", false},
		{"a#|b", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			d, err := Compile(MustParse(tt.pattern))
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.IsEmpty())
		})
	}
}

func TestIsTotal(t *testing.T) {
	tests := []struct {
		pattern string
		symbols []rune
		want    bool
	}{
		{"(a|b)*", nil, true},
		{"(a|b)*", []rune{'c'}, false},
		{"(a*b*)*", nil, true},
		{"a*", nil, true},
		{"()*", nil, true},
		{"a", nil, false},
		{"#", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			d, err := Compile(MustParse(tt.pattern), WithSymbols(tt.symbols...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.IsTotal())
		})
	}
}

func TestAccepts(t *testing.T) {
	d, err := Compile(MustParse("ab|c|()"))
	require.NoError(t, err)
	assert.Equal(t, []string{"", "c", "ab"}, d.Accepts(3))
	assert.Equal(t, []string{""}, d.Accepts(0))

	d, err = Compile(MustParse("a*"))
	require.NoError(t, err)
	assert.Equal(t, []string{"", "a", "aa", "aaa"}, d.Accepts(3))
}
