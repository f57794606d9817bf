// Package modular owns module resolution for the host.
//
// Ownership boundary:
// - application and module caches (one construction per key)
// - per-module file lookup cache
// - resource identifier mapping for module assets
//
// Path conventions other components rely on:
// - module root: ".Modules/<name>/"
// - asset content root: "wwwroot/"
//
// Modular does not discover modules on disk; names come from the
// application manifest. Caches are never invalidated.
package modular
