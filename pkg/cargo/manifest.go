package cargo

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestFile is the name of the Cargo manifest next to the lock file.
const ManifestFile = "Cargo.toml"

// Manifest holds the parts of Cargo.toml used to pick the root package.
type Manifest struct {
	Name    string
	Version string
}

type cargoFile struct {
	Package struct {
		Name    string `toml:"name"`
		Version any    `toml:"version"`
	} `toml:"package"`
}

// ReadManifest reads Cargo.toml from dir.
// It returns nil and no error when the file does not exist or declares no
// [package] (a virtual workspace manifest).
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return parseManifest(data)
}

func parseManifest(data []byte) (*Manifest, error) {
	var cargo cargoFile
	if err := toml.Unmarshal(data, &cargo); err != nil {
		return nil, err
	}
	if cargo.Package.Name == "" {
		return nil, nil
	}

	m := &Manifest{Name: cargo.Package.Name}
	// version.workspace = true decodes as a table and is left unset.
	if v, ok := cargo.Package.Version.(string); ok {
		m.Version = v
	}
	return m, nil
}
