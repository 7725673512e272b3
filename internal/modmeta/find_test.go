package modmeta

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	t.Run("SingleMatch", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		want := filepath.Join(root, "src", "main", "resources", "mods.toml")
		writeFile(t, want, "[mc-publish]\n")

		got, err := Find(root)
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if got != want {
			t.Errorf("Find() = %q, want %q", got, want)
		}
	})

	t.Run("NoneFound", func(t *testing.T) {
		t.Parallel()
		if _, err := Find(t.TempDir()); err == nil {
			t.Error("Find() succeeded with no mods.toml")
		}
	})

	t.Run("MultipleListed", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		a := filepath.Join(root, "a", "mods.toml")
		b := filepath.Join(root, "b", "mods.toml")
		writeFile(t, a, "")
		writeFile(t, b, "")

		_, err := Find(root)
		if err == nil {
			t.Fatal("Find() succeeded with two mods.toml files")
		}
		if !strings.Contains(err.Error(), a) || !strings.Contains(err.Error(), b) {
			t.Errorf("error %q does not list both matches", err)
		}
	})

	t.Run("SkipsBuildDirectories", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		want := filepath.Join(root, "mods.toml")
		writeFile(t, want, "")
		writeFile(t, filepath.Join(root, "build", "generated", "mods.toml"), "")

		got, err := Find(root)
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if got != want {
			t.Errorf("Find() = %q, want %q", got, want)
		}
	})
}
