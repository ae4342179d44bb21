package lint

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Expand turns files and directories into the list of Go files to check.
// Directories are walked recursively, skipping vendor, testdata and names
// starting with '.' or '_'. skip is consulted for every file and may be nil.
func Expand(paths []string, skip func(string) bool) ([]string, error) {
	var out []string
	add := func(p string) {
		if skip == nil || !skip(p) {
			out = append(out, p)
		}
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if p != root && skipDir(name) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(name, ".go") {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
