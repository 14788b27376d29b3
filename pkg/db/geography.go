package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yumyai/admixmap/internal/util"
)

// Defining possible error
var GeographyDirNotExists = errors.New("Geography folder does not exists")

type InvalidGeographyNameError struct {
	Name string
}

func (e *InvalidGeographyNameError) Error() string {
	return fmt.Sprintf("Geography error: invalid file name %q", e.Name)
}

// folder which hosts the base GeoJSON files, one or more per model
type GeographyDB struct {
	Dir string
}

func NewGeographyDB(dir string) (*GeographyDB, error) {
	if !util.DirExists(dir) {
		return nil, fmt.Errorf("%w: %s", GeographyDirNotExists, dir)
	}
	return &GeographyDB{Dir: dir}, nil
}

// Path resolves a file name inside Dir. Names must not leave the folder.
func (gdb *GeographyDB) Path(name string) (string, error) {
	clean := filepath.Clean(name)
	if name == "" || clean != filepath.Base(clean) || strings.HasPrefix(clean, ".") {
		return "", &InvalidGeographyNameError{Name: name}
	}
	return filepath.Join(gdb.Dir, clean), nil
}

func (gdb *GeographyDB) Read(name string) ([]byte, error) {
	path, err := gdb.Path(name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// Missing lists the names that have no file in Dir.
func (gdb *GeographyDB) Missing(names ...string) []string {
	var missing []string
	for _, name := range names {
		path, err := gdb.Path(name)
		if err != nil || !util.FileExists(path) {
			missing = append(missing, name)
		}
	}
	return missing
}
