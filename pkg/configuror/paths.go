package configuror

import (
	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/pkg/fileutil"
)

// pathExists reports whether path names a regular file. A missing file is an
// error unless ignoreAbsence is set.
func pathExists(path string, ignoreAbsence bool) (bool, error) {
	if fileutil.IsRegularFile(path) {
		return true, nil
	}
	if ignoreAbsence {
		return false, nil
	}
	return false, errors.NotFoundf("file %s not found on the filesystem", path)
}

// FilterPaths returns the paths naming regular files, in their original
// order. Without ignoreAbsence the first missing path is an error.
func FilterPaths(paths []string, ignoreAbsence bool) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		ok, err := pathExists(p, ignoreAbsence)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// toPathList converts a loosely typed value to a list of paths.
func toPathList(v any) ([]string, error) {
	switch val := v.(type) {
	case []string:
		return val, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, errors.InvalidTypef("%v is not a string representing a path", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.InvalidTypef("%v is not a list of files", v)
	}
}
