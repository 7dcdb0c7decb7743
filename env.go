// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package caps

// Env capability.
// Env[E] grants scoped read-only access to an environment of type E.

// Env is a handle on a read-only environment owned by its runner.
type Env[E any] struct {
	token Token
	env   *E
}

// Anchor implements [Handle].
func (h Env[E]) Anchor() Token { return h.token }

func (h Env[E]) reanchored(to Token) Env[E] {
	return Env[E]{token: to, env: h.env}
}

// Ask returns the environment.
func (h Env[E]) Ask() E {
	h.token.check("Env.Ask")
	return *h.env
}

// MapEnv fuses Ask with a projection: it reads the environment through h
// and applies f, so call sites that need one field never hold the whole
// environment value:
//
//	port := caps.MapEnv(ev, func(c config) int { return c.port })
func MapEnv[E, A any](h Env[E], f func(E) A) A {
	return f(h.Ask())
}

// RunEnv runs body with a fresh Env handle over env.
func RunEnv[E, A any](amb *Ambient, env E, body func(Env[E]) A) A {
	e := env
	t := amb.mint("env")
	defer amb.retire(t, "env")
	return body(Env[E]{token: t, env: &e})
}
