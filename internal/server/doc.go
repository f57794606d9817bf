// Package server owns the HTTP surface of a modhost process.
//
// Ownership boundary:
// - module file routes under /.Modules/<module>/<subpath>
// - health, readiness and metrics endpoints
// - token-gated admin inspection of the registry
//
// Server does not cache anything itself; every lookup goes through the
// modular.Registry it was given.
package server
