// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package caps

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ambient is the ordered set of scope tokens visible to one logical
// thread of control. It owns the token stack: every runner entered on
// this ambient mints exactly one token, and every runner exit retires
// exactly that token, so the stack grows and shrinks symmetrically with
// runner nesting.
//
// An Ambient is not safe for concurrent use. Each goroutine that runs
// capability code must create its own Ambient; sharing tokens or handles
// across ambients is detected as a [*ScopeViolation].
type Ambient struct {
	id   uuid.UUID
	log  *zap.Logger
	gens []uint64
	next uint64
}

// Option configures an Ambient.
type Option func(*Ambient)

// WithLogger installs a logger for token lifecycle events.
// Mint, retire, and widen are logged at debug level with the ambient
// identity, depth, and generation as fields. The default is zap.NewNop.
func WithLogger(log *zap.Logger) Option {
	return func(a *Ambient) { a.log = log }
}

// New creates an empty Ambient for the calling logical thread.
func New(opts ...Option) *Ambient {
	a := &Ambient{id: uuid.New(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Depth returns the number of currently active tokens.
func (a *Ambient) Depth() int { return len(a.gens) }

// ID returns the stable identity of this ambient stack.
func (a *Ambient) ID() uuid.UUID { return a.id }

// mint pushes a fresh generation and returns its token.
func (a *Ambient) mint(kind string) Token {
	a.next++
	gen := a.next
	a.gens = append(a.gens, gen)
	t := Token{amb: a, depth: len(a.gens) - 1, gen: gen}
	if ce := a.log.Check(zap.DebugLevel, "mint"); ce != nil {
		ce.Write(
			zap.Stringer("ambient", a.id),
			zap.String("kind", kind),
			zap.Int("depth", t.depth),
			zap.Uint64("gen", gen))
	}
	return t
}

// retire pops the token, fatally asserting LIFO order. Runners call
// retire through defer, so it executes on every exit path, including
// unwinds triggered by [Exit.Raise].
func (a *Ambient) retire(t Token, kind string) {
	top := len(a.gens) - 1
	if t.amb != a || top < 0 || t.depth != top || a.gens[top] != t.gen {
		scopeViolation("retire", "retire out of LIFO order", t)
	}
	a.gens = a.gens[:top]
	if ce := a.log.Check(zap.DebugLevel, "retire"); ce != nil {
		ce.Write(
			zap.Stringer("ambient", a.id),
			zap.String("kind", kind),
			zap.Int("depth", t.depth),
			zap.Uint64("gen", t.gen))
	}
}

// Scoped mints a fresh token for the dynamic extent of body and retires
// it on every exit path. It is the primitive runner underlying
// [RunCompound] and [RunDynamic]; use it directly when a compound needs
// an externally visible token but no record validation.
func Scoped[A any](amb *Ambient, body func(Token) A) A {
	t := amb.mint("scoped")
	defer amb.retire(t, "scoped")
	return body(t)
}
