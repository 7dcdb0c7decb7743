// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package caps

import (
	"fmt"
	"reflect"
)

// Structural composition protocol.
// A structural compound aggregates K sub-handles, each widened to one
// fresh externally visible token, and exposes them as a single record.
// The continuation sees one capability parameter instead of K.

// Compound pairs a compound token with a record of sub-handles widened
// to that token. Parts is typically a struct whose fields are handle
// types such as [State], [Stream], and [Exit].
type Compound[Parts any] struct {
	token Token
	parts Parts
}

// Anchor implements [Handle].
func (c *Compound[Parts]) Anchor() Token { return c.token }

func (c *Compound[Parts]) reanchored(to Token) *Compound[Parts] {
	return &Compound[Parts]{token: to, parts: c.parts}
}

// Parts returns the record of widened sub-handles.
func (c *Compound[Parts]) Parts() Parts {
	c.token.check("Compound.Parts")
	return c.parts
}

// RunCompound mints a fresh compound token, calls build with it to
// assemble the record of widened sub-handles, and runs body with the
// compound handle. The token retires on every exit path, so the
// compound never outlives the sub-capabilities it aggregates.
//
// Every anchored field of the record must be exported and anchored at
// exactly the compound token; build is expected to [Widen] each
// sub-handle to the token it receives. A field anchored elsewhere, or an
// unexported handle field, is a construction-time [*ScopeViolation],
// not a latent misbehavior.
func RunCompound[Parts, A any](amb *Ambient, build func(Token) Parts, body func(*Compound[Parts]) A) A {
	t := amb.mint("compound")
	defer amb.retire(t, "compound")
	parts := build(t)
	mustAnchorAt("RunCompound", parts, t)
	return body(&Compound[Parts]{token: t, parts: parts})
}

// anchoredType is the interface type checked for record fields.
var anchoredType = reflect.TypeOf((*anchored)(nil)).Elem()

// mustAnchorAt validates that every anchored field of record is anchored
// at exactly t. Records are walked with reflection because their field
// sets are user-defined; validation runs once per construction, never on
// the operation path. Non-struct records that are themselves anchored
// are validated directly; fields that are not handles (closures, plain
// values) are skipped. An unexported handle field is rejected outright:
// reflection cannot read its anchor, so it would escape validation.
func mustAnchorAt(op string, record any, t Token) {
	if h, ok := record.(anchored); ok {
		if h.Anchor() != t {
			scopeViolation(op, "record is anchored to a foreign token", h.Anchor())
		}
		return
	}
	v := reflect.ValueOf(record)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	rt := v.Type()
	for i := range v.NumField() {
		f := v.Field(i)
		if !f.CanInterface() {
			if f.Type().Implements(anchoredType) {
				scopeViolation(op,
					fmt.Sprintf("field %s.%s is an unexported handle and cannot be validated; export it", rt.Name(), rt.Field(i).Name),
					t)
			}
			continue
		}
		h, ok := f.Interface().(anchored)
		if !ok {
			continue
		}
		if h.Anchor() != t {
			scopeViolation(op,
				fmt.Sprintf("field %s.%s is anchored to a foreign token; widen it to the compound token", rt.Name(), rt.Field(i).Name),
				h.Anchor())
		}
	}
}
