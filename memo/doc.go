// Package memo provides per-instance, compute-once caching for declared
// attributes of a type: zero-argument computed properties and ordinary
// methods.
//
// A Type is assembled once, at which point every declared cached attribute
// is validated and wrapped in an accessor. Property accessors compute on
// first read and return the stored value afterwards; method accessors bind
// and coerce their arguments through sig, key the call by the canonical
// digest of the normalized argument tuple, and store one result per
// distinct key. Cache slots live in an Instance value embedded in the
// caller's struct, so no dynamic per-instance attribute bag is required.
//
// Slots are guarded for memory safety only: two goroutines racing to
// populate the same slot may both run the computation, with one result
// discarded. Types built with WithSingleflight collapse such races into a
// single execution.
package memo
