// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package caps

// External-effect adapter.
// An Adapter performs arbitrary external actions and surfaces their
// failures through an Exit handle's channel, so callers see one uniform
// exit mechanism regardless of whether the underlying implementation is
// simulated or real.

// Adapter wraps an [Exit] handle together with a translation from Go
// errors into the exit's domain value. It is itself a handle, anchored
// wherever its exit handle is anchored, and can be widened into compound
// and dynamic records like any other capability.
type Adapter[E any] struct {
	exit Exit[E]
	wrap func(error) E
}

// NewAdapter builds an adapter that raises wrap(err) through exit
// whenever an external action fails.
func NewAdapter[E any](exit Exit[E], wrap func(error) E) Adapter[E] {
	return Adapter[E]{exit: exit, wrap: wrap}
}

// Anchor implements [Handle].
func (a Adapter[E]) Anchor() Token { return a.exit.token }

func (a Adapter[E]) reanchored(to Token) Adapter[E] {
	return Adapter[E]{exit: a.exit.reanchored(to), wrap: a.wrap}
}

// Do performs an external action that produces a value. On failure it
// raises the wrapped error through the exit channel; the signal carries
// the underlying error so [Bracket] can combine it with a release
// failure on the unwind path.
func Do[A, E any](a Adapter[E], op func() (A, error)) A {
	a.exit.token.check("Adapter.Do")
	v, err := op()
	if err != nil {
		panic(exitSignal{amb: a.exit.token.amb, mark: a.exit.mark, value: a.wrap(err), cause: err})
	}
	return v
}

// Act performs an external action with no result value.
func Act[E any](a Adapter[E], op func() error) {
	Do(a, func() (struct{}, error) { return struct{}{}, op() })
}
