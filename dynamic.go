// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package caps

// Dynamic dispatch composition protocol.
// A dynamic handle is a record of named operations, each a closure
// already closed over whatever sub-capabilities it needs at construction
// time. The continuation never sees the sub-capabilities, only the
// closures, so a handler can swap its internal implementation (say, a
// simulated store for a real one) without changing the record shape.

// Dynamic pairs a compound token with a record of pre-bound closures.
// Ops is typically a struct of func fields; fields may also be widened
// handles when the two protocols are mixed in one record.
type Dynamic[Ops any] struct {
	token Token
	ops   Ops
}

// Anchor implements [Handle].
func (d *Dynamic[Ops]) Anchor() Token { return d.token }

func (d *Dynamic[Ops]) reanchored(to Token) *Dynamic[Ops] {
	return &Dynamic[Ops]{token: to, ops: d.ops}
}

// Use returns the operation record after the proof-of-scope check on the
// dynamic handle itself. Call sites select the named closure and apply
// arguments:
//
//	contents := fs.Use().ReadFile("/etc/hosts")
func (d *Dynamic[Ops]) Use() Ops {
	d.token.check("Dynamic.Use")
	return d.ops
}

// RunDynamic mints a fresh token, calls build with it to assemble the
// operation record, and runs body with the dynamic handle. The token
// retires on every exit path.
//
// Closures in the record are opaque and stay valid by LIFO nesting of
// whatever they closed over. Any anchored field mixed into the record
// must be anchored at exactly the fresh token (widened by build);
// anything else is a construction-time [*ScopeViolation].
func RunDynamic[Ops, A any](amb *Ambient, build func(Token) Ops, body func(*Dynamic[Ops]) A) A {
	t := amb.mint("dynamic")
	defer amb.retire(t, "dynamic")
	ops := build(t)
	mustAnchorAt("RunDynamic", ops, t)
	return body(&Dynamic[Ops]{token: t, ops: ops})
}
