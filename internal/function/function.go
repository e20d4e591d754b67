// Package function contains helpers for working with plain functions
package function

// Nest applies funcs to final from the last to the first one, so that
//
//	res := function.Nest(final, a, b, c)
//
// equals `res := a(b(c(final)))`. Without funcs, final is returned unchanged.
func Nest[T any](final T, funcs ...func(T) T) T {
	res := final
	for i := len(funcs) - 1; i >= 0; i-- {
		res = funcs[i](res)
	}
	return res
}
