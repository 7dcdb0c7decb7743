// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package caps provides scoped capability handles and composition
// protocols in Go.
//
// A capability handle is a first-class value granting access to one
// side-effectful operation set: mutable state, early exit, output
// streaming, or external I/O. Every handle is anchored to a [Token]
// minted by the runner that created it, and the package guarantees that
// a handle is only ever usable within the dynamic extent of that runner:
// use after the runner returns is detected and fails fast with
// [*ScopeViolation], never silently tolerated.
//
// # Design Philosophy
//
// caps provides:
//   - Generation-stamped scope tokens on a per-thread [Ambient] stack
//   - Runners that pair token lifetime with resource lifetime on every
//     exit path, including early-exit unwinds
//   - Two composition protocols for building new handles out of old ones
//
// The source-of-truth invariant is single: a handle is valid exactly
// while its anchoring token is active, and tokens retire in strict LIFO
// order matching runner nesting.
//
// # Tokens and the Ambient Stack
//
//   - [Token]: unforgeable identity for one runner activation
//   - [Ambient]: the ordered token stack of one logical thread
//   - [New]: create an Ambient (one per goroutine; never shared)
//   - [Scoped]: mint a fresh token for the extent of a body
//
// Each runner mints exactly one token on entry and retires it on exit.
// Retiring is deferred, so it runs on normal return, on early exit, and
// on defect unwinds alike. Out-of-order retirement is fatal.
//
// # Handles and Widening
//
//   - [Handle]: F-bounded interface connecting a handle type to its anchor
//   - [Widen]: re-anchor a handle to a deeper token on the same stack
//
// Widening is a one-way, structure-preserving relabeling: the returned
// handle grants the same operations against the same resource. It is the
// mechanism that lets a compound constructor take N differently anchored
// sub-handles and present them under one externally visible token.
//
// # Primitive Capabilities
//
// State for one mutable cell:
//
//   - [State]: Get, Put, Modify
//   - [RunState], [EvalState], [ExecState]
//
// Env for a read-only environment:
//
//   - [Env]: Ask
//   - [RunEnv]
//
// Stream for an externally observed output sequence:
//
//   - [Stream]: Emit
//   - [RunStream], [ExecStream]
//
// Exit for typed early exit:
//
//   - [Exit]: Raise; [ExitWith] for value positions
//   - [RunExit]: returns [Either] (Left on exit, Right on completion)
//
// An exit unwinds to exactly the runner that issued the handle; every
// runner entered in between retires its token, in reverse order, before
// the exit value becomes observable.
//
// # Combined Runners
//
// Multi-capability runners nest the single-capability runners with the
// exit runner innermost, so state and output stay observable on exit:
//
//   - [RunStateExit], [EvalStateExit], [ExecStateExit]
//   - [RunStateStream]
//   - [RunStateStreamExit]
//   - [RunEnvStateExit]
//
// # Structural Composition
//
// [RunCompound] mints one fresh token, widens each sub-handle to it
// inside the build callback, validates that every anchored field of the
// record shares that token, and hands the continuation a single
// [Compound] handle:
//
//	type counterCaps struct {
//		Count caps.State[int]
//		Log   caps.Stream[string]
//		Limit caps.Exit[string]
//	}
//
//	caps.RunCompound(amb, func(t caps.Token) counterCaps {
//		return counterCaps{
//			Count: caps.Widen(st, t),
//			Log:   caps.Widen(sm, t),
//			Limit: caps.Widen(ex, t),
//		}
//	}, func(c *caps.Compound[counterCaps]) int {
//		// c.Parts().Count, c.Parts().Log, c.Parts().Limit
//	})
//
// # Dynamic Dispatch Composition
//
// [RunDynamic] instead packages pre-bound closures: each operation is a
// closure constructed where all needed sub-capabilities are visible, and
// the continuation sees only the record, via [Dynamic.Use]. Handlers can
// swap a simulated implementation for a real one without changing the
// record shape. Records may mix closures with widened handles; every
// anchored field must share the fresh token, checked at construction.
//
// # External-Effect Adapters
//
//   - [Adapter], [NewAdapter]: wrap an [Exit] with an error translation
//   - [Do], [Act]: perform external actions, raising wrapped failures
//   - [Bracket]: acquire-use-release with release on every exit path
//   - [OnExit]: cleanup only when a specific exit channel unwinds
//
// Adapter failures surface as domain exits of the adapter's declared
// error type, so simulated and real implementations are interchangeable
// behind one record shape.
//
// # Concurrency
//
// The core is purely sequential: tokens and ambients belong to a single
// logical thread, and nesting must be well bracketed within that thread.
// Each goroutine maintains its own [Ambient]; crossing handles between
// ambients is detected. Sharing an underlying resource across threads is
// a property of that resource, not of this package.
//
// # Example
//
//	amb := caps.New()
//	result, final := caps.RunStateExit(amb, 0,
//		func(st caps.State[int], ex caps.Exit[string]) int {
//			if st.Modify(func(n int) int { return n + 1 }) > 3 {
//				ex.Raise("limit")
//			}
//			return st.Get()
//		})
//	// result.IsRight() == true, final == 1
package caps
