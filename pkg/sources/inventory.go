package sources

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Inventory is the set of logo filenames present on disk.
type Inventory map[string]struct{}

// NewInventory builds an inventory from a list of filenames.
func NewInventory(names ...string) Inventory {
	inv := make(Inventory, len(names))
	for _, name := range names {
		inv[name] = struct{}{}
	}
	return inv
}

// Has reports whether name is present.
func (i Inventory) Has(name string) bool {
	_, ok := i[name]
	return ok
}

// Len returns the number of logos.
func (i Inventory) Len() int {
	return len(i)
}

// Names returns the filenames in lexical order.
func (i Inventory) Names() []string {
	names := make([]string, 0, len(i))
	for name := range i {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Directory lists a logos directory. Hidden entries are ignored; files and
// subdirectories are otherwise treated alike.
type Directory struct {
	fs   afero.Fs
	path string
}

// NewDirectory creates a Source backed by path on fs.
func NewDirectory(fsys afero.Fs, path string) *Directory {
	return &Directory{fs: fsys, path: path}
}

// Inventory lists the directory. A directory that does not exist yields an
// empty inventory.
func (d *Directory) Inventory() (Inventory, error) {
	entries, err := afero.ReadDir(d.fs, d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Inventory{}, nil
		}
		return nil, fmt.Errorf("failed to list logos directory %s: %w", d.path, err)
	}

	inv := make(Inventory, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		inv[entry.Name()] = struct{}{}
	}
	return inv, nil
}
