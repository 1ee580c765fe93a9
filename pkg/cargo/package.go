package cargo

import "fmt"

// PackageID uniquely identifies one resolved package.
// Two IDs are the same package exactly when they compare equal.
type PackageID struct {
	Name    string
	Version string
	Source  SourceID
}

// String returns "name version (source)", the lock file v1 spelling.
func (id PackageID) String() string {
	if id.Source.Kind == "" {
		return fmt.Sprintf("%s %s", id.Name, id.Version)
	}
	return fmt.Sprintf("%s %s (%s)", id.Name, id.Version, id.Source)
}

// Resolve is a fully resolved dependency set decoded from a lock file.
// It is read-only after [Parse] returns.
type Resolve struct {
	// Version is the lock file format version (0 for legacy files).
	Version int

	root     PackageID
	packages []PackageID
	deps     map[PackageID][]PackageID
	unused   []PackageID
	checksum map[PackageID]string
}

// Root returns the root package of the project.
func (r *Resolve) Root() PackageID { return r.root }

// Packages returns every package recorded in the lock file, in file order,
// followed by unused patch entries.
func (r *Resolve) Packages() []PackageID {
	out := make([]PackageID, 0, len(r.packages)+len(r.unused))
	out = append(out, r.packages...)
	return append(out, r.unused...)
}

// Deps returns the direct dependencies of id in lock file order.
// The boolean is false when the lock file has no dependency information for
// id, which is the case for unused patches and unknown packages.
func (r *Resolve) Deps(id PackageID) ([]PackageID, bool) {
	d, ok := r.deps[id]
	return d, ok
}

// Checksum returns the recorded checksum of id, if any.
// A nil Resolve has no checksums.
func (r *Resolve) Checksum(id PackageID) string {
	if r == nil {
		return ""
	}
	return r.checksum[id]
}

// Len returns the number of resolved packages, excluding unused patches.
func (r *Resolve) Len() int { return len(r.packages) }
