package ghout

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriter(t *testing.T) {
	// Not parallel: the OpenFailsWithoutEnv subtest uses t.Setenv,
	// which is incompatible with a parallel ancestor.

	t.Run("AppendsLines", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "output")

		w, err := OpenPath(path)
		if err != nil {
			t.Fatalf("OpenPath() error = %v", err)
		}
		if err := w.Set("action", "add"); err != nil {
			t.Fatal(err)
		}
		if err := w.Set("loader", "forge"); err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}

		// Re-open to confirm append, not truncate.
		w2, err := OpenPath(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := w2.Set("mc_version", "1.20.1"); err != nil {
			t.Fatal(err)
		}
		w2.Close()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		want := "action=add\nloader=forge\nmc_version=1.20.1\n"
		if string(data) != want {
			t.Errorf("file = %q, want %q", data, want)
		}
	})

	t.Run("NilWriterIsNoOp", func(t *testing.T) {
		t.Parallel()
		var w *Writer
		if err := w.Set("k", "v"); err != nil {
			t.Errorf("nil Set() error = %v", err)
		}
		if err := w.Close(); err != nil {
			t.Errorf("nil Close() error = %v", err)
		}
	})

	t.Run("OpenFailsWithoutEnv", func(t *testing.T) {
		// Not parallel: mutates the environment.
		t.Setenv(EnvVar, "")
		if _, err := Open(); err == nil {
			t.Error("Open() succeeded with empty GITHUB_OUTPUT")
		}
	})
}
