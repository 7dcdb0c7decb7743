// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package caps

// Combined runners for multi-capability bodies.
// Each runner nests the single-capability runners in a fixed order and
// hands the body every handle at once, so structural composition does
// not have to spell out the nesting for common capability sets. The
// exit runner is always innermost: state and stream results stay
// observable even when the body raises.

// RunStateExit runs body with State and Exit handles.
// Returns (Either[E, A], S) — the final state is available even on exit.
func RunStateExit[S, E, A any](amb *Ambient, initial S, body func(State[S], Exit[E]) A) (Either[E, A], S) {
	return RunState(amb, initial, func(st State[S]) Either[E, A] {
		return RunExit(amb, func(ex Exit[E]) A {
			return body(st, ex)
		})
	})
}

// EvalStateExit runs a State+Exit body and returns only the Either result.
func EvalStateExit[S, E, A any](amb *Ambient, initial S, body func(State[S], Exit[E]) A) Either[E, A] {
	result, _ := RunStateExit(amb, initial, body)
	return result
}

// ExecStateExit runs a State+Exit body and returns only the final state.
func ExecStateExit[S, E, A any](amb *Ambient, initial S, body func(State[S], Exit[E]) A) S {
	_, state := RunStateExit(amb, initial, body)
	return state
}

// RunStateStream runs body with State and Stream handles.
// Returns (A, S, []W).
func RunStateStream[S, W, A any](amb *Ambient, initial S, body func(State[S], Stream[W]) A) (A, S, []W) {
	var out []W
	a, state := RunState(amb, initial, func(st State[S]) A {
		var inner A
		inner, out = RunStream(amb, func(sm Stream[W]) A {
			return body(st, sm)
		})
		return inner
	})
	return a, state, out
}

// RunStateStreamExit runs body with State, Stream, and Exit handles.
// Returns (Either[E, A], S, []W) — both the final state and the emitted
// sequence survive an exit, because the exit runner recovers before the
// state and stream runners unwind.
func RunStateStreamExit[S, W, E, A any](amb *Ambient, initial S, body func(State[S], Stream[W], Exit[E]) A) (Either[E, A], S, []W) {
	var out []W
	result, state := RunState(amb, initial, func(st State[S]) Either[E, A] {
		var r Either[E, A]
		r, out = RunStream(amb, func(sm Stream[W]) Either[E, A] {
			return RunExit(amb, func(ex Exit[E]) A {
				return body(st, sm, ex)
			})
		})
		return r
	})
	return result, state, out
}

// RunEnvStateExit runs body with Env, State, and Exit handles.
// Returns (Either[E, A], S).
func RunEnvStateExit[R, S, E, A any](amb *Ambient, env R, initial S, body func(Env[R], State[S], Exit[E]) A) (Either[E, A], S) {
	return RunState(amb, initial, func(st State[S]) Either[E, A] {
		return RunEnv(amb, env, func(ev Env[R]) Either[E, A] {
			return RunExit(amb, func(ex Exit[E]) A {
				return body(ev, st, ex)
			})
		})
	})
}
