// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package caps

// State capability.
// State[S] grants scoped access to one mutable cell of type S.

// State is a handle on a mutable cell owned by its runner. The handle is
// a capability reference: copying or widening it never copies the cell.
type State[S any] struct {
	token Token
	cell  *S
}

// Anchor implements [Handle].
func (h State[S]) Anchor() Token { return h.token }

func (h State[S]) reanchored(to Token) State[S] {
	return State[S]{token: to, cell: h.cell}
}

// Get returns the current state.
func (h State[S]) Get() S {
	h.token.check("State.Get")
	return *h.cell
}

// Put replaces the current state.
func (h State[S]) Put(s S) {
	h.token.check("State.Put")
	*h.cell = s
}

// Modify applies f to the state and returns the new state.
func (h State[S]) Modify(f func(S) S) S {
	h.token.check("State.Modify")
	*h.cell = f(*h.cell)
	return *h.cell
}

// RunState runs body with a fresh State handle and returns both the body
// result and the final state. The cell is owned by this activation; the
// handle (and any widening of it) is valid only until RunState returns.
func RunState[S, A any](amb *Ambient, initial S, body func(State[S]) A) (A, S) {
	cell := initial
	t := amb.mint("state")
	defer amb.retire(t, "state")
	a := body(State[S]{token: t, cell: &cell})
	return a, cell
}

// EvalState runs a stateful body and returns only the result.
func EvalState[S, A any](amb *Ambient, initial S, body func(State[S]) A) A {
	a, _ := RunState(amb, initial, body)
	return a
}

// ExecState runs a stateful body and returns only the final state.
func ExecState[S, A any](amb *Ambient, initial S, body func(State[S]) A) S {
	_, s := RunState(amb, initial, body)
	return s
}
