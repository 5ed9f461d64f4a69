// Package patch parses and applies structured patch documents.
//
// A document is a line-oriented markup delimited by "*** Begin Patch" and
// "*** End Patch" whose directives add, delete or update files. Updates are
// expressed as unified-diff style hunks that are located in the target file
// by exact, position-hinted matching. The package exposes primitives to
// parse documents, apply them to the filesystem, or operate on in-memory
// documents which makes it straightforward to embed in editors and testing
// utilities.
package patch
