package automaton

import "fmt"

// Sum is the state of an automaton built by Either: a state of the left
// operand or a state of the right one. Left states order before right ones.
type Sum[L Ordered[L], R Ordered[R]] struct {
	right bool
	l     L
	r     R
}

// Left tags a state of the left operand.
func Left[L Ordered[L], R Ordered[R]](l L) Sum[L, R] {
	return Sum[L, R]{l: l}
}

// Right tags a state of the right operand.
func Right[L Ordered[L], R Ordered[R]](r R) Sum[L, R] {
	return Sum[L, R]{right: true, r: r}
}

// IsLeft reports whether s is a state of the left operand.
func (s Sum[L, R]) IsLeft() bool { return !s.right }

// LeftState returns the wrapped left state; valid when IsLeft.
func (s Sum[L, R]) LeftState() L { return s.l }

// RightState returns the wrapped right state; valid when !IsLeft.
func (s Sum[L, R]) RightState() R { return s.r }

// Compare implements Ordered.
func (s Sum[L, R]) Compare(o Sum[L, R]) int {
	switch {
	case s.right != o.right:
		if s.right {
			return 1
		}
		return -1
	case s.right:
		return s.r.Compare(o.r)
	default:
		return s.l.Compare(o.l)
	}
}

func (s Sum[L, R]) String() string {
	if s.right {
		return fmt.Sprintf("Right(%v)", s.r)
	}
	return fmt.Sprintf("Left(%v)", s.l)
}

type either[L Ordered[L], R Ordered[R]] struct {
	left  Lazy[L]
	right Lazy[R]
}

// Either returns the union of left and right. It accepts a string when at
// least one operand does. No state of the combined automaton is built until a
// run reaches it.
func Either[L Ordered[L], R Ordered[R]](left Lazy[L], right Lazy[R]) Lazy[Sum[L, R]] {
	return either[L, R]{left: left, right: right}
}

func (u either[L, R]) InitialStates() []Sum[L, R] {
	li, ri := u.left.InitialStates(), u.right.InitialStates()
	states := make([]Sum[L, R], 0, len(li)+len(ri))
	for _, l := range li {
		states = append(states, Left[L, R](l))
	}
	for _, r := range ri {
		states = append(states, Right[L](r))
	}
	return canonical(states)
}

func (u either[L, R]) Recognizes(c rune) bool {
	return recognizes(u.left, c) || recognizes(u.right, c)
}

func (u either[L, R]) Accepted(s Sum[L, R]) bool {
	if s.right {
		return u.right.Accepted(s.r)
	}
	return u.left.Accepted(s.l)
}

func (u either[L, R]) Advance(s Sum[L, R], c rune) ([]Sum[L, R], error) {
	if s.right {
		next, err := u.right.Advance(s.r, c)
		if err != nil {
			return nil, err
		}
		states := make([]Sum[L, R], 0, len(next))
		for _, r := range next {
			states = append(states, Right[L](r))
		}
		return canonical(states), nil
	}

	next, err := u.left.Advance(s.l, c)
	if err != nil {
		return nil, err
	}
	states := make([]Sum[L, R], 0, len(next))
	for _, l := range next {
		states = append(states, Left[L, R](l))
	}
	return canonical(states), nil
}

// Seq is the state of an automaton built by Concatenate: a state of the
// first operand (Before) or of the second one (After). Before states order
// first.
type Seq[L Ordered[L], R Ordered[R]] struct {
	after bool
	l     L
	r     R
}

// Before tags a state of the first operand.
func Before[L Ordered[L], R Ordered[R]](l L) Seq[L, R] {
	return Seq[L, R]{l: l}
}

// After tags a state of the second operand.
func After[L Ordered[L], R Ordered[R]](r R) Seq[L, R] {
	return Seq[L, R]{after: true, r: r}
}

// IsAfter reports whether s is a state of the second operand.
func (s Seq[L, R]) IsAfter() bool { return s.after }

// BeforeState returns the wrapped first-operand state; valid when !IsAfter.
func (s Seq[L, R]) BeforeState() L { return s.l }

// AfterState returns the wrapped second-operand state; valid when IsAfter.
func (s Seq[L, R]) AfterState() R { return s.r }

// Compare implements Ordered.
func (s Seq[L, R]) Compare(o Seq[L, R]) int {
	switch {
	case s.after != o.after:
		if s.after {
			return 1
		}
		return -1
	case s.after:
		return s.r.Compare(o.r)
	default:
		return s.l.Compare(o.l)
	}
}

func (s Seq[L, R]) String() string {
	if s.after {
		return fmt.Sprintf("After(%v)", s.r)
	}
	return fmt.Sprintf("Before(%v)", s.l)
}

type concatenation[L Ordered[L], R Ordered[R]] struct {
	first  Lazy[L]
	second Lazy[R]
}

// Concatenate returns the automaton accepting u·v whenever first accepts u
// and second accepts v. Each time a first-operand state that accepts is
// entered, the initial states of second become active in the same step.
func Concatenate[L Ordered[L], R Ordered[R]](first Lazy[L], second Lazy[R]) Lazy[Seq[L, R]] {
	return concatenation[L, R]{first: first, second: second}
}

func (a concatenation[L, R]) InitialStates() []Seq[L, R] {
	init := a.first.InitialStates()
	states := make([]Seq[L, R], 0, len(init))
	follow := false
	for _, l := range init {
		states = append(states, Before[L, R](l))
		if a.first.Accepted(l) {
			follow = true
		}
	}
	if follow {
		states = a.appendSecond(states)
	}
	return canonical(states)
}

func (a concatenation[L, R]) appendSecond(states []Seq[L, R]) []Seq[L, R] {
	for _, r := range a.second.InitialStates() {
		states = append(states, After[L](r))
	}
	return states
}

func (a concatenation[L, R]) Recognizes(c rune) bool {
	return recognizes(a.first, c) || recognizes(a.second, c)
}

func (a concatenation[L, R]) Accepted(s Seq[L, R]) bool {
	return s.after && a.second.Accepted(s.r)
}

func (a concatenation[L, R]) Advance(s Seq[L, R], c rune) ([]Seq[L, R], error) {
	if s.after {
		next, err := a.second.Advance(s.r, c)
		if err != nil {
			return nil, err
		}
		states := make([]Seq[L, R], 0, len(next))
		for _, r := range next {
			states = append(states, After[L](r))
		}
		return canonical(states), nil
	}

	next, err := a.first.Advance(s.l, c)
	if err != nil {
		return nil, err
	}
	states := make([]Seq[L, R], 0, len(next))
	follow := false
	for _, l := range next {
		states = append(states, Before[L, R](l))
		if a.first.Accepted(l) {
			follow = true
		}
	}
	if follow {
		states = a.appendSecond(states)
	}
	return canonical(states), nil
}

// Iter is the state of an automaton built by Repeat. The entry state stands
// for the empty iteration: nothing consumed yet. Every other Iter wraps a
// state of the repeated automaton.
type Iter[S Ordered[S]] struct {
	started bool
	s       S
}

// Iterating tags a state of the repeated automaton.
func Iterating[S Ordered[S]](s S) Iter[S] {
	return Iter[S]{started: true, s: s}
}

// IsEntry reports whether it is the entry state of the repetition.
func (it Iter[S]) IsEntry() bool { return !it.started }

// State returns the wrapped state; valid when !IsEntry.
func (it Iter[S]) State() S { return it.s }

// Compare implements Ordered. The entry state orders first.
func (it Iter[S]) Compare(o Iter[S]) int {
	switch {
	case it.started != o.started:
		if it.started {
			return 1
		}
		return -1
	case !it.started:
		return 0
	default:
		return it.s.Compare(o.s)
	}
}

func (it Iter[S]) String() string {
	if !it.started {
		return "Entry"
	}
	return fmt.Sprintf("Iterating(%v)", it.s)
}

type repetition[S Ordered[S]] struct {
	inner Lazy[S]
}

// Repeat returns the Kleene closure of inner: it accepts the empty string and
// every concatenation of one or more strings accepted by inner. Whenever an
// iteration can end, both continuing it and starting a new one stay active.
func Repeat[S Ordered[S]](inner Lazy[S]) Lazy[Iter[S]] {
	return repetition[S]{inner: inner}
}

func (a repetition[S]) InitialStates() []Iter[S] {
	return []Iter[S]{{}}
}

func (a repetition[S]) Recognizes(c rune) bool {
	return recognizes(a.inner, c)
}

func (a repetition[S]) Accepted(it Iter[S]) bool {
	return !it.started || a.inner.Accepted(it.s)
}

func (a repetition[S]) Advance(it Iter[S], c rune) ([]Iter[S], error) {
	from := []S{it.s}
	if !it.started {
		from = a.inner.InitialStates()
		if len(from) == 0 && !recognizes(a.inner, c) {
			return nil, unknownSymbol(c)
		}
	}

	var states []Iter[S]
	restart := false
	for _, s := range from {
		next, err := a.inner.Advance(s, c)
		if err != nil {
			return nil, err
		}
		for _, n := range next {
			states = append(states, Iterating(n))
			if a.inner.Accepted(n) {
				restart = true
			}
		}
	}
	if restart {
		for _, s := range a.inner.InitialStates() {
			states = append(states, Iterating(s))
		}
	}
	return canonical(states), nil
}

type erasedState interface {
	compare(o erasedState) int
}

type boxed[S Ordered[S]] struct {
	s S
}

func (b boxed[S]) compare(o erasedState) int {
	return b.s.Compare(o.(boxed[S]).s)
}

func (b boxed[S]) String() string {
	return fmt.Sprint(b.s)
}

// Erased is a state whose concrete type is hidden, so that automata of
// different state types can be composed from a tree only known at run time.
// Erased states coming from the same automaton share one concrete type.
type Erased struct {
	box erasedState
}

// Compare implements Ordered.
func (e Erased) Compare(o Erased) int {
	return e.box.compare(o.box)
}

func (e Erased) String() string {
	return fmt.Sprint(e.box)
}

// Unbox returns the concrete state held by e.
func Unbox[S Ordered[S]](e Erased) (S, bool) {
	b, ok := e.box.(boxed[S])
	return b.s, ok
}

type erased[S Ordered[S]] struct {
	inner Lazy[S]
}

// Erase hides the state type of a.
func Erase[S Ordered[S]](a Lazy[S]) Lazy[Erased] {
	if e, ok := any(a).(Lazy[Erased]); ok {
		return e
	}
	return erased[S]{inner: a}
}

func box[S Ordered[S]](states []S) []Erased {
	out := make([]Erased, len(states))
	for i, s := range states {
		out[i] = Erased{box: boxed[S]{s: s}}
	}
	return out
}

func (a erased[S]) InitialStates() []Erased {
	return box(a.inner.InitialStates())
}

func (a erased[S]) Recognizes(c rune) bool {
	return recognizes(a.inner, c)
}

func (a erased[S]) Accepted(e Erased) bool {
	return a.inner.Accepted(e.box.(boxed[S]).s)
}

func (a erased[S]) Advance(e Erased, c rune) ([]Erased, error) {
	next, err := a.inner.Advance(e.box.(boxed[S]).s, c)
	if err != nil {
		return nil, err
	}
	return box(next), nil
}
