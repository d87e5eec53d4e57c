// Package graft curries and composes ordinary Go functions:
//
// Curried chains
//
// Sow begins a chain over a fixed-arity seed function, Nurish feeds it
// further values, and Bloom completes it by threading a state value
// into the first parameter slot.  Chains are immutable and saturation
// is exact.
//
// Composed pipelines
//
// Compose folds curried branches into a single state transform and
// wraps it with interceptors, all at definition time.  Units group
// pipelines under shared interceptor declarations and own the one-time
// interceptor initialization protocol.
package graft
