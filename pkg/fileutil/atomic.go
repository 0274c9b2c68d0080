// Package fileutil provides size-limited reads and atomic writes for
// configuration files.
package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thoreinstein/configuror/internal/errors"
)

// AtomicWriteFile replaces path with data so that readers see either the
// old content or the new one. The temp file is created next to the target
// because rename is only atomic within a filesystem, and it is synced
// before the rename.
//
// When path is a symlink, the file it points to is replaced and the link
// is kept. The parent directory must exist.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	target, err := resolveTarget(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Chmod(perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrap(err, "syncing temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return errors.Wrapf(err, "replacing %s", target)
	}
	committed = true
	return nil
}

// resolveTarget follows a symlink at path. A missing path is returned as is.
func resolveTarget(path string) (string, error) {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return path, nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "inspecting %s", path)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return path, nil
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", errors.Wrapf(err, "resolving symlink %s", path)
	}
	return resolved, nil
}
