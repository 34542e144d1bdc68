// Package observe provides the ambient observability surface: OpenTelemetry
// counters for cache and hashing activity, and zap-based structured logging.
//
// Everything here is optional; the default wiring is a no-op so the core
// packages stay dependency-light at call sites.
package observe
