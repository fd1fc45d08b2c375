package rpc

// Result is the outcome of an asynchronous operation: either a success carrying a T, or
// a failure carrying an E.
//
// The zero Result is a failure holding the zero E.
type Result[T, E any] struct {
	success T
	failure E
	ok      bool
}

// Ok creates a successful Result.
func Ok[T, E any](value T) Result[T, E] {
	return Result[T, E]{success: value, ok: true}
}

// Err creates a failed Result.
func Err[T, E any](failure E) Result[T, E] {
	return Result[T, E]{failure: failure}
}

// FromGo converts the usual `(value, error)` pair returned by Go functions to a Result.
// The failure carries the error message, since errors themselves don't serialize to JSON.
func FromGo[T any](value T, err error) Result[T, string] {
	if err != nil {
		return Err[T, string](err.Error())
	}
	return Ok[T, string](value)
}

// IsOk returns whether the result is a success.
func (r Result[T, E]) IsOk() bool { return r.ok }

// Success returns the success value, or the zero T if r is a failure.
func (r Result[T, E]) Success() T { return r.success }

// Failure returns the failure value, or the zero E if r is a success.
func (r Result[T, E]) Failure() E { return r.failure }
