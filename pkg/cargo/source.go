package cargo

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SourceKind identifies where a package comes from.
type SourceKind string

const (
	SourcePath     SourceKind = "path"
	SourceRegistry SourceKind = "registry"
	SourceSparse   SourceKind = "sparse"
	SourceGit      SourceKind = "git"
)

// CratesIO is the source string of the default crates.io git index.
const CratesIO = "registry+https://github.com/rust-lang/crates.io-index"

// SourceID is the location a package was resolved from.
// It is a plain value and safe to use as a map key.
type SourceID struct {
	Kind SourceKind
	// URL is the location without kind prefix, query or fragment.
	URL string
	// Reference is the git query (e.g. "branch=main"), empty otherwise.
	Reference string
}

// ParseSourceID decodes a lock file source string such as
// "registry+https://github.com/rust-lang/crates.io-index" or
// "git+https://github.com/foo/bar?branch=main#0123abcd".
// The pinned revision after '#' is not part of the identity.
func ParseSourceID(s string) (SourceID, error) {
	kind, rest, ok := strings.Cut(s, "+")
	if !ok || rest == "" {
		return SourceID{}, fmt.Errorf("invalid source %q: missing kind", s)
	}

	switch k := SourceKind(kind); k {
	case SourceRegistry, SourceSparse, SourcePath:
		return SourceID{Kind: k, URL: rest}, nil
	case SourceGit:
		rest, _, _ = strings.Cut(rest, "#")
		url, ref, _ := strings.Cut(rest, "?")
		return SourceID{Kind: k, URL: url, Reference: ref}, nil
	default:
		return SourceID{}, fmt.Errorf("invalid source %q: unknown kind %q", s, kind)
	}
}

// PathSource returns the source of a local package in dir.
func PathSource(dir string) SourceID {
	return SourceID{Kind: SourcePath, URL: "file://" + filepath.ToSlash(dir)}
}

// IsPath reports whether the source is a local directory.
func (s SourceID) IsPath() bool { return s.Kind == SourcePath }

// String returns the canonical "kind+url" form, including the git reference.
func (s SourceID) String() string {
	if s.Kind == "" {
		return ""
	}
	out := string(s.Kind) + "+" + s.URL
	if s.Reference != "" {
		out += "?" + s.Reference
	}
	return out
}
