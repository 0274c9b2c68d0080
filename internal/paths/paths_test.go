package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thoreinstein/configuror/internal/errors"
)

func TestResolveHome(t *testing.T) {
	got, err := ResolveHome()
	want, _ := os.UserHomeDir()

	if err != nil {
		if !errors.Is(err, ErrHomeDirNotFound) {
			t.Errorf("unexpected error type: %v", err)
		}
	} else if got != want {
		t.Errorf("ResolveHome() = %q, want %q", got, want)
	}
}

func TestConfigHome(t *testing.T) {
	got := ConfigHome()
	if got == "" {
		t.Error("ConfigHome() returned empty string")
	}
	if !filepath.IsAbs(got) {
		t.Errorf("ConfigHome() = %q, want absolute path", got)
	}
}

func TestSettingsFile(t *testing.T) {
	got := SettingsFile()
	want := filepath.Join(ConfigHome(), AppName, SettingsFileName)
	if got != want {
		t.Errorf("SettingsFile() = %q, want %q", got, want)
	}
	if filepath.Dir(got) != SettingsDir() {
		t.Errorf("SettingsFile() not under SettingsDir(): %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/settings/app.yaml", filepath.Join(home, "settings", "app.yaml")},
		{"/etc/app.yaml", "/etc/app.yaml"},
		{"relative/app.yaml", "relative/app.yaml"},
		{"~other/app.yaml", "~other/app.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			if err != nil {
				t.Fatalf("ExpandHome(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("creates new directory with default perms", func(t *testing.T) {
		path := filepath.Join(tmpDir, "new-dir")
		if err := EnsureDir(path, 0); err != nil {
			t.Fatalf("EnsureDir failed: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if !info.IsDir() {
			t.Errorf("expected directory, got file")
		}
		if info.Mode().Perm() != DefaultDirPerm {
			t.Errorf("expected perm %o, got %o", DefaultDirPerm, info.Mode().Perm())
		}
	})

	t.Run("creates nested directories", func(t *testing.T) {
		path := filepath.Join(tmpDir, "parent", "child", "grandchild")
		if err := EnsureDir(path, 0o755); err != nil {
			t.Fatalf("EnsureDir failed: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if info.Mode().Perm() != 0o755 {
			t.Errorf("expected perm 0755, got %o", info.Mode().Perm())
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		path := filepath.Join(tmpDir, "existing")
		if err := os.Mkdir(path, 0o755); err != nil {
			t.Fatal(err)
		}

		if err := EnsureDir(path, 0o700); err != nil {
			t.Errorf("EnsureDir failed on existing directory: %v", err)
		}

		// MkdirAll does not change permissions of existing directories.
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0o755 {
			t.Errorf("expected original perm 0755 to be preserved, got %o", info.Mode().Perm())
		}
	})
}
