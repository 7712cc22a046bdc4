package reactive

import "slices"

// CombineAll returns a signal computed by f from the latest value of every
// input. It recomputes whenever any input changes and emits nothing until
// every input has produced a value. With no inputs it emits f(nil) once.
func CombineAll[T, R any](sigs []Signal[T], f func([]T) R) Signal[R] {
	return signalFunc[R](func(emit func(R, error)) func() {
		values := make([]T, len(sigs))
		has := make([]bool, len(sigs))
		missing := len(sigs)
		wiring := true
		done := false

		fire := func() {
			if missing == 0 && !done {
				emit(f(slices.Clone(values)), nil)
			}
		}

		cancels := make([]func(), 0, len(sigs))
		for i, sig := range sigs {
			cancels = append(cancels, sig.subscribe(func(v T, err error) {
				if done {
					return
				}
				if err != nil {
					done = true
					var zero R
					emit(zero, err)
					return
				}
				values[i] = v
				if !has[i] {
					has[i] = true
					missing--
				}
				if !wiring {
					fire()
				}
			}))
		}
		wiring = false
		fire()

		return func() {
			for _, cancel := range cancels {
				cancel()
			}
		}
	})
}

// Combine2 joins two signals with f.
func Combine2[A, B, R any](a Signal[A], b Signal[B], f func(A, B) R) Signal[R] {
	return CombineAll([]Signal[any]{erase(a), erase(b)}, func(vs []any) R {
		return f(as[A](vs[0]), as[B](vs[1]))
	})
}

// Combine3 joins three signals with f.
func Combine3[A, B, C, R any](a Signal[A], b Signal[B], c Signal[C], f func(A, B, C) R) Signal[R] {
	return CombineAll([]Signal[any]{erase(a), erase(b), erase(c)}, func(vs []any) R {
		return f(as[A](vs[0]), as[B](vs[1]), as[C](vs[2]))
	})
}

// Combine4 joins four signals with f.
func Combine4[A, B, C, D, R any](a Signal[A], b Signal[B], c Signal[C], d Signal[D], f func(A, B, C, D) R) Signal[R] {
	return CombineAll([]Signal[any]{erase(a), erase(b), erase(c), erase(d)}, func(vs []any) R {
		return f(as[A](vs[0]), as[B](vs[1]), as[C](vs[2]), as[D](vs[3]))
	})
}

func erase[T any](sig Signal[T]) Signal[any] {
	return Map(sig, func(v T) any { return v })
}

// as converts back from any; a nil interface becomes the zero value.
func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}
