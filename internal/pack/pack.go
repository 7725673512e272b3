// Package pack answers queries about a packwiz modpack's mod index.
package pack

import (
	"os"
	"path/filepath"
	"strings"
)

// Index reads the per-mod descriptor files of one packwiz pack.
type Index struct {
	Dir string // pack root containing the mods/ directory
}

// Contains reports whether a descriptor in mods/ already names the
// given mod slug. A missing mods/ directory or unreadable descriptor
// simply means "not present".
func (x *Index) Contains(slug string) bool {
	modsDir := filepath.Join(x.Dir, "mods")
	entries, err := os.ReadDir(modsDir)
	if err != nil {
		return false
	}

	needle := `slug = "` + slug + `"`
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".pw.toml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(modsDir, e.Name()))
		if err != nil {
			continue
		}
		if strings.Contains(string(data), needle) {
			return true
		}
	}
	return false
}
