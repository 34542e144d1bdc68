// Package strict provides coercion-and-validation wrappers that normalize
// heterogeneous inputs into exact types before hashing or caching.
//
// The scalar constructors (Int, Float, Str) accept compatible kinds and fail
// with ErrValidation otherwise; nothing is ever silently truncated. Of[T]
// parametrizes a Coercer for a target type, and Tuple builds per-element
// sequence coercers.
package strict
