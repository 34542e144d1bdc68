// Package digest provides deterministic, cross-type-safe content hashing.
//
// It maps supported values to fixed-length SHA-256 digests suitable for use
// as durable cache keys. Values of different kinds never collide even when
// they compare equal numerically: the integer 1, the boolean true, the float
// 1.0 and the complex 1+0i all produce distinct digests. The encoding is
// stable across process restarts and module versions.
package digest
