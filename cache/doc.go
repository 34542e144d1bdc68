// Package cache defines the storage surface that persists computation
// results under canonical digests.
//
// The core hashing and memoization packages only produce keys; a Cache is
// the collaborator another layer plugs in to keep results across processes.
// A memory implementation is provided for tests and single-process use.
package cache
