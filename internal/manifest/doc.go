// Package manifest owns the declarative metadata shipped with packages.
//
// Ownership boundary:
// - module name lists and asset declarations (semicolon / pipe wire format)
// - module and feature descriptors
// - TOML and YAML manifest decoding
//
// Manifest does not load packages or resolve files.
package manifest
