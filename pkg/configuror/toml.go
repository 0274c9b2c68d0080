package configuror

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/pkg/fileutil"
)

// LoadFromTOML merges the top-level keys of a TOML file. Keys are inserted
// in lexical order.
func (c *Config) LoadFromTOML(path string, ignoreAbsence bool) (bool, error) {
	if ok, err := pathExists(path, ignoreAbsence); !ok {
		return false, err
	}
	return c.loadTOML([]string{path})
}

// LoadFromTOMLFiles merges several TOML files in order. Missing files are
// skipped when ignoreAbsence is set, but at least one must exist.
func (c *Config) LoadFromTOMLFiles(paths []string, ignoreAbsence bool) (bool, error) {
	files, err := FilterPaths(paths, ignoreAbsence)
	if err != nil {
		return false, err
	}
	if len(files) == 0 {
		return false, errors.NotFoundf("the list does not contain one %s valid file", TOML)
	}
	return c.loadTOML(files)
}

// loadTOML decodes every file before touching the Config, so a syntax error
// in any of them leaves it unchanged.
func (c *Config) loadTOML(files []string) (bool, error) {
	merged := make(map[string]any)
	for _, path := range files {
		data, err := fileutil.ReadFileWithLimit(path)
		if err != nil {
			return false, errors.Wrapf(err, "reading %s", path)
		}

		var values map[string]any
		if err := toml.Unmarshal(data, &values); err != nil {
			return false, tomlDecodeError(path, err)
		}
		for k, v := range values {
			merged[k] = v
		}
		c.logLoaded(TOML, path, len(values))
	}

	c.update(sortedEntries(merged))
	return true, nil
}

func tomlDecodeError(path string, err error) error {
	de := &errors.DecodeError{
		Path:   path,
		Format: string(TOML),
		Msg:    fmt.Sprintf("one of your files is not well %s formatted: %s", TOML, path),
		Err:    err,
	}
	var tomlErr *toml.DecodeError
	if errors.As(err, &tomlErr) {
		row, col := tomlErr.Position()
		de.Line = row
		de.Msg = fmt.Sprintf("one of your files is not well %s formatted: %s (line %d, column %d)", TOML, path, row, col)
	}
	return errors.WithStack(de)
}
