package modmeta

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// FileName is the metadata file lodestone manages.
const FileName = "mods.toml"

// Find walks root for the repository's single mods.toml, skipping
// build output directories. Zero matches or more than one is an error.
func Find(root string) (string, error) {
	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == "build" {
			return filepath.SkipDir
		}
		if !d.IsDir() && d.Name() == FileName {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("searching for %s under %s: %w", FileName, root, err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s found under %s; expected a single %s with a [%s] table", FileName, root, FileName, TableName)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("multiple %s files found; expected exactly one:\n%s", FileName, strings.Join(matches, "\n"))
	}
}
