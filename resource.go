// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package caps

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Resource safety primitives for exit-safe external resources.
// These follow the bracket pattern: acquire → use → release, where
// release is guaranteed to run on every exit path.

// Bracket acquires an external resource through a, runs use, and
// releases the resource on every exit path. Acquire and release
// failures are raised through a's exit channel. When release fails
// while an adapter failure is already unwinding, the two errors are
// combined with multierr and re-raised as one wrapped exit value.
//
// A release failure during a foreign unwind (another runner's exit, or
// a defect) cannot be attached to the in-flight value; it is logged on
// the ambient and the original unwind proceeds unchanged.
func Bracket[R, A, E any](a Adapter[E], acquire func() (R, error), release func(R) error, use func(R) A) A {
	res := Do(a, acquire)
	defer func() {
		rerr := release(res)
		if r := recover(); r != nil {
			if sig, ok := r.(exitSignal); ok && a.exit.owns(sig) && rerr != nil && sig.cause != nil {
				combined := multierr.Append(sig.cause, rerr)
				panic(exitSignal{amb: sig.amb, mark: sig.mark, value: a.wrap(combined), cause: combined})
			}
			if rerr != nil {
				a.exit.token.amb.log.Warn("release failed during unwind", zap.Error(rerr))
			}
			panic(r)
		}
		if rerr != nil {
			a.exit.Raise(a.wrap(rerr))
		}
	}()
	return use(res)
}

// OnExit runs cleanup only when body raises through the runner that
// issued h, then lets the exit continue unwinding. Raises aimed at
// other runners, and unrelated panics, propagate without cleanup.
func OnExit[A, E any](h Exit[E], body func() A, cleanup func(E)) A {
	defer func() {
		if r := recover(); r != nil {
			if sig, ok := r.(exitSignal); ok && h.owns(sig) {
				cleanup(sig.value.(E))
			}
			panic(r)
		}
	}()
	return body()
}
