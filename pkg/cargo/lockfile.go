package cargo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/cargodot/pkg/errors"
)

// LockFile is the conventional lock file name.
const LockFile = "Cargo.lock"

type lockFile struct {
	Version  int               `toml:"version"`
	Root     *lockPackage      `toml:"root"`
	Packages []lockPackage     `toml:"package"`
	Metadata map[string]string `toml:"metadata"`
	Patch    struct {
		Unused []lockPackage `toml:"unused"`
	} `toml:"patch"`
}

type lockPackage struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"`
	Source       string   `toml:"source"`
	Checksum     string   `toml:"checksum"`
	Dependencies []string `toml:"dependencies"`
}

// Load reads and decodes the lock file at path.
// A relative path is resolved against the working directory, and the
// directory containing the lock file is treated as the project directory.
// Cargo.toml in that directory, when present, helps pick the root package.
func Load(path string) (*Resolve, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errs.FromIO(errs.ErrCodeInputUnavailable, err, "resolve %s", path)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, errs.FromIO(errs.ErrCodeInputUnavailable, err, "read %s", path)
	}

	dir := filepath.Dir(abs)
	m, err := ReadManifest(dir)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInputUnavailable, err, "read %s", filepath.Join(dir, ManifestFile))
	}

	return Parse(data, dir, m)
}

// Parse decodes lock file contents. projectDir locates path packages;
// m may be nil when no manifest is available.
func Parse(data []byte, projectDir string, m *Manifest) (*Resolve, error) {
	var lf lockFile
	if _, err := toml.Decode(string(data), &lf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInputUnavailable, err, "decode lock file")
	}

	d := decoder{
		pathSource: PathSource(projectDir),
		byName:     make(map[string][]PackageID),
		res: &Resolve{
			Version:  lf.Version,
			deps:     make(map[PackageID][]PackageID),
			checksum: make(map[PackageID]string),
		},
	}

	entries := lf.Packages
	if lf.Root != nil {
		entries = append([]lockPackage{*lf.Root}, entries...)
	}

	ids := make([]PackageID, len(entries))
	for i, p := range entries {
		id, err := d.add(p)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	for i, p := range entries {
		deps := make([]PackageID, 0, len(p.Dependencies))
		for _, spec := range p.Dependencies {
			dep, err := d.lookup(spec)
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInputUnavailable, err, "package %s", ids[i])
			}
			deps = append(deps, dep)
		}
		d.res.deps[ids[i]] = deps
	}

	for _, p := range lf.Patch.Unused {
		id, err := d.identity(p)
		if err != nil {
			return nil, err
		}
		d.res.unused = append(d.res.unused, id)
	}

	// v1 files keep checksums in [metadata] as
	// "checksum name version (source)" = "<sha256>".
	for k, v := range lf.Metadata {
		spec, ok := strings.CutPrefix(k, "checksum ")
		if !ok {
			continue
		}
		if id, err := d.lookup(spec); err == nil {
			d.res.checksum[id] = v
		}
	}

	root, err := d.findRoot(lf.Root != nil, m)
	if err != nil {
		return nil, err
	}
	d.res.root = root
	return d.res, nil
}

type decoder struct {
	pathSource SourceID
	byName     map[string][]PackageID
	res        *Resolve
}

func (d *decoder) identity(p lockPackage) (PackageID, error) {
	if p.Name == "" {
		return PackageID{}, errs.New(errs.ErrCodeInputUnavailable, "package without name")
	}
	src := d.pathSource
	if p.Source != "" {
		s, err := ParseSourceID(p.Source)
		if err != nil {
			return PackageID{}, errs.Wrap(errs.ErrCodeInputUnavailable, err, "package %s", p.Name)
		}
		src = s
	}
	return PackageID{Name: p.Name, Version: p.Version, Source: src}, nil
}

func (d *decoder) add(p lockPackage) (PackageID, error) {
	id, err := d.identity(p)
	if err != nil {
		return PackageID{}, err
	}
	if _, dup := d.res.deps[id]; dup {
		return PackageID{}, errs.New(errs.ErrCodeInputUnavailable, "duplicate package %s", id)
	}
	// Reserve the entry so duplicates are caught before dependencies are filled.
	d.res.deps[id] = nil
	d.res.packages = append(d.res.packages, id)
	d.byName[id.Name] = append(d.byName[id.Name], id)
	if p.Checksum != "" {
		d.res.checksum[id] = p.Checksum
	}
	return id, nil
}

// lookup resolves a dependency reference ("name", "name version" or
// "name version (source)") to the single package it designates.
func (d *decoder) lookup(spec string) (PackageID, error) {
	name, version, source, err := splitSpec(spec)
	if err != nil {
		return PackageID{}, err
	}

	var src SourceID
	if source != "" {
		if src, err = ParseSourceID(source); err != nil {
			return PackageID{}, err
		}
	}

	var match []PackageID
	for _, id := range d.byName[name] {
		if version != "" && id.Version != version {
			continue
		}
		if source != "" && id.Source != src {
			continue
		}
		match = append(match, id)
	}

	switch len(match) {
	case 1:
		return match[0], nil
	case 0:
		return PackageID{}, fmt.Errorf("dependency %q not found in lock file", spec)
	default:
		return PackageID{}, fmt.Errorf("dependency %q is ambiguous (%d candidates)", spec, len(match))
	}
}

func splitSpec(spec string) (name, version, source string, err error) {
	fields := strings.SplitN(strings.TrimSpace(spec), " ", 3)
	switch len(fields) {
	case 3:
		source = fields[2]
		if !strings.HasPrefix(source, "(") || !strings.HasSuffix(source, ")") {
			return "", "", "", fmt.Errorf("malformed dependency %q", spec)
		}
		source = source[1 : len(source)-1]
		fallthrough
	case 2:
		version = fields[1]
		fallthrough
	default:
		name = fields[0]
	}
	if name == "" {
		return "", "", "", fmt.Errorf("malformed dependency %q", spec)
	}
	return name, version, source, nil
}

// findRoot picks the root package: the legacy [root] entry, the package
// named by the manifest, or the only path package with no dependents.
func (d *decoder) findRoot(legacy bool, m *Manifest) (PackageID, error) {
	if legacy {
		return d.res.packages[0], nil
	}

	if m != nil {
		for _, id := range d.byName[m.Name] {
			if !id.Source.IsPath() {
				continue
			}
			if m.Version == "" || m.Version == id.Version {
				return id, nil
			}
		}
	}

	depended := make(map[PackageID]bool)
	for _, deps := range d.res.deps {
		for _, dep := range deps {
			depended[dep] = true
		}
	}

	var candidates []PackageID
	for _, id := range d.res.packages {
		if id.Source.IsPath() && !depended[id] {
			candidates = append(candidates, id)
		}
	}

	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 0:
		return PackageID{}, errs.New(errs.ErrCodeRootUnresolvable, "no local package found in lock file")
	default:
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.Name
		}
		return PackageID{}, errs.New(errs.ErrCodeRootUnresolvable,
			"cannot choose root package among %s; run from a package directory", strings.Join(names, ", "))
	}
}
