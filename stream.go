// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package caps

// Stream capability.
// Stream[W] grants scoped append access to an externally observed sequence.

// Stream is a handle on an output sequence owned by its runner. Emitted
// values are observable only through the runner's return value, after the
// handle's extent has ended.
type Stream[W any] struct {
	token Token
	out   *[]W
}

// Anchor implements [Handle].
func (h Stream[W]) Anchor() Token { return h.token }

func (h Stream[W]) reanchored(to Token) Stream[W] {
	return Stream[W]{token: to, out: h.out}
}

// Emit appends w to the stream.
func (h Stream[W]) Emit(w W) {
	h.token.check("Stream.Emit")
	*h.out = append(*h.out, w)
}

// RunStream runs body with a fresh Stream handle and returns the body
// result together with everything emitted during the activation.
func RunStream[W, A any](amb *Ambient, body func(Stream[W]) A) (A, []W) {
	var out []W
	t := amb.mint("stream")
	defer amb.retire(t, "stream")
	a := body(Stream[W]{token: t, out: &out})
	return a, out
}

// ExecStream runs a streaming body and returns only the emitted sequence.
func ExecStream[W, A any](amb *Ambient, body func(Stream[W]) A) []W {
	_, out := RunStream(amb, body)
	return out
}
