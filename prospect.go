// Package prospect discovers human contacts for small businesses from their
// websites. Given a site it extracts person candidates and email candidates
// from a bounded set of pages, then resolves which person exclusively owns
// which address.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, rod/, goquery/, sqlite/).
package prospect
