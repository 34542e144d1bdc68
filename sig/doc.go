// Package sig binds call arguments to a declared parameter list and runs
// per-parameter coercers before the underlying callable executes.
//
// A Signature describes parameters by name and kind (positional-only,
// positional-or-keyword, keyword-only, var-positional, var-keyword), each
// optionally carrying a strict.Coercer and a default. Binding follows the
// declared kinds, so a call expressed positionally and the same call
// expressed by keyword normalize to identical bound values, which is the
// property memoization relies on for cache keying.
package sig
