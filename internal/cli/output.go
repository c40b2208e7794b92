package cli

import (
	"io"
	"os"
)

// nopCloser wraps an io.Writer with a no-op Close method, making
// os.Stdout usable where an io.WriteCloser is expected.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path. An empty path
// means stdout; otherwise the file is created, overwriting any
// existing content.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
