// Package replacement normalizes test-supplied replacement behavior into a
// single canonical invocation shape.
//
// A replacement can be a literal value, a byte stream, one of several
// function shapes, an expr program built with Expr, or a testify mock.
// Normalize probes the value's capabilities exactly once and returns a
// Behavior whose Invoke funnels every shape through the same completion
// callback, so the method interceptor never inspects the replacement
// itself.
//
// Supported function shapes:
//
//	func(params sdk.Params, cb request.Callback)   // callback style
//	func(cb request.Callback)                      // callback style, parameters omitted
//	func(params sdk.Params) (any, error)           // direct result
//	func(params sdk.Params) *futures.Future        // future-returning
//
// A direct-result function may itself return a *futures.Future or an
// io.Reader; the returned value then becomes the stored result, so
// future-returning and stream-returning replacements never need to touch
// the callback. Panics inside any function shape are recovered and
// delivered as failures.
package replacement
