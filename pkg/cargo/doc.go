// Package cargo reads a resolved Cargo dependency set from a Cargo.lock file.
//
// # Overview
//
// The lock file already records the outcome of Cargo's resolver: every
// package with its exact version, source and direct dependencies. This
// package decodes that record into a [Resolve] without re-resolving or
// validating anything; it is the upstream producer for [graph.Graph].
//
// # Usage
//
//	res, err := cargo.Load("Cargo.lock")
//	if err != nil {
//	    return err
//	}
//	for _, id := range res.Packages() {
//	    deps, ok := res.Deps(id)
//	    // ...
//	}
//
// # Lock File Versions
//
// All lock file layouts are supported:
//
//   - v0 (legacy): the root package lives in a [root] table
//   - v1: dependencies are written as "name version (source)"
//   - v2, v3, v4: dependencies carry only as much as needed to be unambiguous,
//     from "name" up to "name version (source)"
//
// # Root Package
//
// Newer lock files do not name the root package. [Load] picks it from the
// legacy [root] table when present, then from the Cargo.toml next to the lock
// file, and finally falls back to the single path package nobody depends on.
//
// # Sources
//
// Each package has a [SourceID]. Packages without a source entry are local
// path packages and get a file:// URL for the project directory.
//
// [graph.Graph]: github.com/matzehuels/cargodot/pkg/graph
package cargo
