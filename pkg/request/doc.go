// Package request implements the dual-protocol request object returned by
// every intercepted (and real) client operation call.
//
// A Request carries one stored result, written exactly once by whichever
// completion path fires first. The stored result is then observable through
// three projections:
//
//   - callback: the trailing callback passed to the operation call is
//     invoked on every completion, including completions that lost the
//     race for storage
//   - future: Promise() lazily builds a Future from the configured factory
//     and settles it from the stored result
//   - stream: CreateReadStream() projects the result (or the raw
//     replacement) as a byte stream
//
// On, Send and Abort round out the request contract of the cloud SDKs the
// engine substitutes for: On is a chainable no-op subscription, Send
// replays whatever is already stored, and Abort is inert.
package request
