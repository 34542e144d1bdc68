// Package frozenmap provides an immutable, order-insensitive mapping type
// with structural equality and a canonical digest.
//
// Two maps with equal key/value contents are equal and digest identically
// regardless of construction order. Instances are never mutated after
// construction; a successful equality comparison may transparently
// deduplicate the internal backing store as a pure optimization.
package frozenmap
