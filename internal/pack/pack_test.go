package pack

import (
	"os"
	"path/filepath"
	"testing"
)

func TestContains(t *testing.T) {
	t.Parallel()

	writeDescriptor := func(t *testing.T, dir, name, slug string) {
		t.Helper()
		content := "name = \"Some Mod\"\nfilename = \"some-mod.jar\"\n\n[update]\n[update.modrinth]\nslug = \"" + slug + "\"\n"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("FoundBySlug", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		modsDir := filepath.Join(root, "mods")
		if err := os.MkdirAll(modsDir, 0o755); err != nil {
			t.Fatal(err)
		}
		writeDescriptor(t, modsDir, "some-mod.pw.toml", "some-mod")
		writeDescriptor(t, modsDir, "other.pw.toml", "other-mod")

		x := &Index{Dir: root}
		if !x.Contains("some-mod") {
			t.Error("Contains(some-mod) = false, want true")
		}
		if x.Contains("absent-mod") {
			t.Error("Contains(absent-mod) = true, want false")
		}
	})

	t.Run("MissingModsDir", func(t *testing.T) {
		t.Parallel()
		x := &Index{Dir: t.TempDir()}
		if x.Contains("anything") {
			t.Error("Contains() = true with no mods directory")
		}
	})

	t.Run("IgnoresNonDescriptorFiles", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		modsDir := filepath.Join(root, "mods")
		if err := os.MkdirAll(modsDir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(modsDir, "notes.txt"), []byte(`slug = "some-mod"`), 0o644); err != nil {
			t.Fatal(err)
		}

		x := &Index{Dir: root}
		if x.Contains("some-mod") {
			t.Error("Contains() matched a non-descriptor file")
		}
	})
}
