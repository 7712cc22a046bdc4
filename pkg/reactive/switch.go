package reactive

// Switch follows the signal selected by the latest value of sig.
//
// Each time sig changes, the previously selected signal is unsubscribed
// and f(value) is subscribed in its place; only the currently selected
// signal's values are forwarded. An error from either side is terminal.
func Switch[T, U any](sig Signal[T], f func(T) Signal[U]) Signal[U] {
	return signalFunc[U](func(emit func(U, error)) func() {
		var innerCancel func()
		generation := 0
		done := false

		fail := func(err error) {
			done = true
			var zero U
			emit(zero, err)
		}

		outerCancel := sig.subscribe(func(v T, err error) {
			if done {
				return
			}
			if err != nil {
				fail(err)
				return
			}
			if innerCancel != nil {
				innerCancel()
				innerCancel = nil
			}
			generation++
			current := generation
			innerCancel = f(v).subscribe(func(u U, err error) {
				if done || current != generation {
					return
				}
				if err != nil {
					fail(err)
					return
				}
				emit(u, nil)
			})
		})

		return func() {
			outerCancel()
			if innerCancel != nil {
				innerCancel()
				innerCancel = nil
			}
		}
	})
}
