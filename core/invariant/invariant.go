// Package invariant provides contract assertions for grammar construction and parsing.
//
// Parse failures are ordinary values in this module: a parser that does not match
// returns a no-match status. The functions here are for the other kind of failure,
// the programming error: binding a forward declaration twice, a scanner reporting
// an end index behind its start, a negative repetition count.
//
// All functions panic on violation.
package invariant

import (
	"fmt"
	"reflect"
	"runtime"
)

// Precondition checks an input contract at function entry.
// Panics with PRECONDITION VIOLATION if condition is false.
//
// Example:
//
//	func Many[T any](p *Parser[T], minCount int) *Parser[[]T] {
//	    invariant.Precondition(minCount >= 0, "minCount must not be negative, got %d", minCount)
//	    // ...
//	}
func Precondition(condition bool, format string, args ...any) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Postcondition checks an output contract before function return.
// Panics with POSTCONDITION VIOLATION if condition is false.
func Postcondition(condition bool, format string, args ...any) {
	if !condition {
		fail("POSTCONDITION", format, args...)
	}
}

// Invariant checks an internal invariant during function execution.
// Panics with INVARIANT VIOLATION if condition is false.
//
// Example:
//
//	prev := end
//	for ... {
//	    // ... consume one repetition ...
//	    invariant.Invariant(end > prev, "repetition must advance")
//	    prev = end
//	}
func Invariant(condition bool, format string, args ...any) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// NotNil panics if value is nil, including typed nils such as (*Parser[T])(nil).
func NotNil(value any, name string) {
	if value == nil || isNilValue(value) {
		fail("PRECONDITION", "%s must not be nil", name)
	}
}

func isNilValue(value any) bool {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

// InRange panics if value is outside [minVal, maxVal].
// Scanners use it to check that a reported end index lies inside the input view.
func InRange(value, minVal, maxVal int, name string) {
	if value < minVal || value > maxVal {
		fail("POSTCONDITION", "%s must be in range [%d, %d], got %d",
			name, minVal, maxVal, value)
	}
}

// NotNegative panics if value < 0. Used for counts supplied by grammar authors.
func NotNegative(value int, name string) {
	if value < 0 {
		fail("PRECONDITION", "%s must not be negative, got %d", name, value)
	}
}

// fail panics with a formatted message including the caller's location.
func fail(kind, format string, args ...any) {
	// Skip fail() and the exported wrapper.
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]any{kind}, args...)...)
	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}

	panic(msg)
}
