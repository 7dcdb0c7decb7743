// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package caps

// Either represents a value that is either Left (domain exit) or Right
// (normal completion). Exit-capable runners return Either so that an
// early exit is a typed result, never a generic fatal error.
type Either[E, A any] struct {
	isRight bool
	left    E
	right   A
}

// Left builds an Either carrying a domain exit value.
func Left[E, A any](e E) Either[E, A] {
	return Either[E, A]{isRight: false, left: e}
}

// Right builds an Either carrying a normal completion value.
func Right[E, A any](a A) Either[E, A] {
	return Either[E, A]{isRight: true, right: a}
}

// IsRight reports whether the run completed normally.
func (e Either[E, A]) IsRight() bool {
	return e.isRight
}

// IsLeft reports whether the run ended in a domain exit.
func (e Either[E, A]) IsLeft() bool {
	return !e.isRight
}

// GetRight returns the completion value and true, or zero and false
// when the run exited.
func (e Either[E, A]) GetRight() (A, bool) {
	if e.isRight {
		return e.right, true
	}
	var zero A
	return zero, false
}

// GetLeft returns the exit value and true, or zero and false when the
// run completed normally.
func (e Either[E, A]) GetLeft() (E, bool) {
	if !e.isRight {
		return e.left, true
	}
	var zero E
	return zero, false
}

// MatchEither folds both cases into one result: onLeft receives a
// domain exit, onRight a normal completion.
func MatchEither[E, A, T any](e Either[E, A], onLeft func(E) T, onRight func(A) T) T {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}

// MapEither transforms the completion value and passes an exit through
// untouched.
func MapEither[E, A, B any](e Either[E, A], f func(A) B) Either[E, B] {
	if e.isRight {
		return Right[E](f(e.right))
	}
	return Left[E, B](e.left)
}

// FlatMapEither chains an exit-capable step after a normal completion;
// an exit short-circuits the chain.
func FlatMapEither[E, A, B any](e Either[E, A], f func(A) Either[E, B]) Either[E, B] {
	if e.isRight {
		return f(e.right)
	}
	return Left[E, B](e.left)
}

// MapLeftEither transforms the exit value; use it to translate between
// domain exit types at runner boundaries.
func MapLeftEither[E, F, A any](e Either[E, A], f func(E) F) Either[F, A] {
	if e.isRight {
		return Right[F](e.right)
	}
	return Left[F, A](f(e.left))
}
