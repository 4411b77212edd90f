// Package file locates and reads the bibliography file commands operate on.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matsen/seb/internal/seb"
)

// Extension is the bibliography file extension commands look for.
const Extension = ".bib"

// Find returns the bibliography file in dir. When several exist the
// lexicographically first one wins, so repeated runs pick the same file.
func Find(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", seb.WrapWith(seb.KindIO, err, fmt.Sprintf("unable to read directory %s", dir))
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), Extension) {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", seb.New(seb.KindIO, fmt.Sprintf("no %s file found in %s", Extension, dir))
	}

	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

// Read returns the contents of the bibliography at path. A missing file is
// created empty, so a first run starts from an empty bibliography instead of
// failing.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return "", seb.WrapWith(seb.KindIO, err, fmt.Sprintf("unable to create %s", path))
		}
		return "", nil
	}
	if err != nil {
		return "", seb.WrapWith(seb.KindIO, err, fmt.Sprintf("unable to read %s", path))
	}
	return string(data), nil
}

// Write replaces the contents of the bibliography at path.
func Write(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return seb.WrapWith(seb.KindIO, err, fmt.Sprintf("unable to write %s", path))
	}
	return nil
}
