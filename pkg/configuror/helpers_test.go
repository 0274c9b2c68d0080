package configuror

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thoreinstein/configuror/internal/logging"
)

// writeFile creates name under dir with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// newTestConfig returns a Config isolated from the process environment.
func newTestConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()
	base := []Option{
		WithEnvironment(NewMapEnvironment(nil)),
		WithLogger(logging.ForTest(t)),
	}
	c, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}
