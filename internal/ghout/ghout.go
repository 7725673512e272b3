// Package ghout appends key=value lines to the GitHub Actions step
// output file named by $GITHUB_OUTPUT. A nil *Writer is a valid no-op
// writer, so callers outside CI can skip the nil checks.
package ghout

import (
	"fmt"
	"os"
	"sync"
)

// EnvVar names the environment variable carrying the output file path.
const EnvVar = "GITHUB_OUTPUT"

// Writer appends key=value lines to the step output file. It is safe
// for concurrent use.
type Writer struct {
	file *os.File
	mu   sync.Mutex
}

// Open returns a Writer over the file named by $GITHUB_OUTPUT, or an
// error when the variable is unset.
func Open() (*Writer, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil, fmt.Errorf("%s is not set; cannot write outputs", EnvVar)
	}
	return OpenPath(path)
}

// OpenPath returns a Writer appending to the file at path.
func OpenPath(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("ghout: open %s: %w", path, err)
	}
	return &Writer{file: f}, nil
}

// Set appends one key=value line. Calling Set on a nil Writer is a
// no-op.
func (w *Writer) Set(key, value string) error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := fmt.Fprintf(w.file, "%s=%s\n", key, value); err != nil {
		return fmt.Errorf("ghout: write %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying file. Calling Close on a nil Writer is a
// no-op.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
