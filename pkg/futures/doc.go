// Package futures provides the single-settlement value container backing
// the Promise projection of sdkmock requests.
//
// A Future settles exactly once, by whichever of Resolve or Reject is
// called first. Consumers wait with Wait, which honors context
// cancellation, or select on Done.
//
// The Factory type is the swappable construction hook: an sdk.Root holds
// one Factory in a mutable slot, and every request's Promise projection is
// built through it. Setting the slot to nil disables the projection.
package futures
