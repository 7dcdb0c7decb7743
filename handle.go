// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package caps

import "go.uber.org/zap"

// Handle is the F-bounded interface for capability handles.
// Handle[H Handle[H]] gives the compiler knowledge of the concrete
// handle type, so [Widen] returns the same concrete type it was given.
//
// A handle pairs an anchoring [Token] with the operation surface of one
// capability. It does not own the underlying resource; the runner that
// minted the anchor does. The reanchored method is unexported: all
// re-anchoring goes through Widen, which performs the scope checks.
type Handle[H Handle[H]] interface {
	// Anchor returns the token the handle is currently anchored to.
	Anchor() Token

	// reanchored returns a copy of the handle anchored to the given
	// token, granting the same resource.
	reanchored(to Token) H
}

// Widen re-anchors a handle to a token minted at the same depth or
// deeper on the same ambient stack. The returned handle grants exactly
// the same operations against the same underlying resource; only the
// externally visible anchor changes. Widening is one-way: a handle is
// never narrowed back to a shallower token.
//
// Both the current anchor and the target token must be active, which is
// the runtime form of the proof obligation "from is still visible where
// to was minted". Any other configuration panics with [*ScopeViolation].
func Widen[H Handle[H]](h H, to Token) H {
	from := h.Anchor()
	if !from.Active() {
		scopeViolation("Widen", "source anchor is retired", from)
	}
	if !to.Active() {
		scopeViolation("Widen", "target token is retired", to)
	}
	if from.amb != to.amb {
		scopeViolation("Widen", "target token belongs to a different ambient stack", to)
	}
	if to.depth < from.depth {
		scopeViolation("Widen", "widening must not narrow to a shallower token", to)
	}
	if ce := to.amb.log.Check(zap.DebugLevel, "widen"); ce != nil {
		ce.Write(
			zap.Stringer("ambient", to.amb.id),
			zap.Int("from_depth", from.depth),
			zap.Uint64("from_gen", from.gen),
			zap.Int("to_depth", to.depth),
			zap.Uint64("to_gen", to.gen))
	}
	return h.reanchored(to)
}

// anchored is the minimal structural interface used for construction-time
// validation of compound and dynamic records.
type anchored interface {
	Anchor() Token
}
