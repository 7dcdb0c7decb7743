// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package caps

import (
	"fmt"

	"github.com/google/uuid"
)

// Token is an unforgeable identity for one runner activation.
// A token is represented as a generation-stamped index into its owning
// [Ambient] stack: it is active exactly while the stack slot at its depth
// still holds its generation. Tokens are small values and are freely
// copyable; copying never extends a token's lifetime.
//
// Lifecycle: minted on runner entry, retired on runner exit, in strict
// LIFO order. A retired token never becomes active again.
type Token struct {
	amb   *Ambient
	depth int
	gen   uint64
}

// Active reports whether the token's minting runner is still on the
// ambient stack. Handle operations call this through check and panic
// with [*ScopeViolation] when it returns false.
func (t Token) Active() bool {
	return t.amb != nil && t.depth < len(t.amb.gens) && t.amb.gens[t.depth] == t.gen
}

// check asserts the token is active before a handle operation.
// The panic body is extracted as a noinline function so that check
// itself remains inlineable at every operation site.
func (t Token) check(op string) {
	if !t.Active() {
		scopeViolation(op, "token retired or never minted on this ambient stack", t)
	}
}

// ScopeViolation reports use of a token or handle outside its valid
// lifetime, or a composition defect such as widening across ambient
// stacks. It is panicked, never returned: a scope violation is a defect
// in composition code, not a recoverable condition of user logic.
type ScopeViolation struct {
	Op      string    // operation that detected the violation
	Ambient uuid.UUID // identity of the owning ambient stack, if known
	Depth   int       // stack depth the token was minted at
	Gen     uint64    // generation stamp of the token
	Reason  string
}

// Error implements error with a descriptive, package-prefixed message.
func (v *ScopeViolation) Error() string {
	return fmt.Sprintf("caps: %s: %s (ambient %s, depth %d, gen %d)",
		v.Op, v.Reason, v.Ambient, v.Depth, v.Gen)
}

// scopeViolation panics with a descriptive *ScopeViolation.
// Extracted as a noinline function so that callers remain inlineable.
//
//go:noinline
func scopeViolation(op, reason string, t Token) {
	var id uuid.UUID
	if t.amb != nil {
		id = t.amb.id
	}
	panic(&ScopeViolation{Op: op, Ambient: id, Depth: t.depth, Gen: t.gen, Reason: reason})
}
