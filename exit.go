// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package caps

// Exit capability.
// Exit[E] grants scoped early exit carrying a domain value of type E.
//
// Raising unwinds to exactly the runner that issued the handle. Every
// runner entered between the raise point and that runner retires its
// token on the unwind path, in reverse order of entry, before the exit
// value becomes observable as a Left result.

// Exit is a handle on a recovery point owned by its runner. The mark
// identifies the minting activation and is stable across widening, so a
// widened Exit handle still unwinds to its original runner.
type Exit[E any] struct {
	token Token
	mark  uint64
}

// Anchor implements [Handle].
func (h Exit[E]) Anchor() Token { return h.token }

func (h Exit[E]) reanchored(to Token) Exit[E] {
	return Exit[E]{token: to, mark: h.mark}
}

// Raise short-circuits to the runner that issued this handle, carrying e.
// It never returns.
func (h Exit[E]) Raise(e E) {
	h.token.check("Exit.Raise")
	panic(exitSignal{amb: h.token.amb, mark: h.mark, value: e})
}

// ExitWith raises e through h, typed to stand in any value position.
// It lets a closure with a non-void result end in a raise:
//
//	return caps.ExitWith[string](ex, "File not found: "+path)
func ExitWith[A, E any](h Exit[E], e E) A {
	h.Raise(e)
	panic("caps: unreachable")
}

// exitSignal is the unwind payload for Exit.Raise. It is matched by
// ambient identity and mark; anything else observed during recovery is
// re-panicked unchanged.
type exitSignal struct {
	amb   *Ambient
	mark  uint64
	value any
	cause error // underlying failure when raised from an adapter boundary
}

// owns reports whether the signal unwinds to the runner that issued h.
func (h Exit[E]) owns(s exitSignal) bool {
	return s.amb == h.token.amb && s.mark == h.mark
}

// RunExit runs body with a fresh Exit handle. A normal return yields
// Right; a raise through this handle (or any widening of it) yields
// Left. Raises aimed at other runners, and unrelated panics, propagate
// unchanged after this activation's token retires.
func RunExit[E, A any](amb *Ambient, body func(Exit[E]) A) (result Either[E, A]) {
	t := amb.mint("exit")
	defer amb.retire(t, "exit")
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(exitSignal)
			if !ok || sig.amb != amb || sig.mark != t.gen {
				panic(r)
			}
			result = Left[E, A](sig.value.(E))
		}
	}()
	return Right[E, A](body(Exit[E]{token: t, mark: t.gen}))
}
