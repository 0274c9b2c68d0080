package configuror

import (
	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/pkg/script"
)

// LoadFromScript evaluates a configuration script with the Config's runner
// and merges its upper-case names in lexical order.
func (c *Config) LoadFromScript(path string, ignoreAbsence bool) (bool, error) {
	if ok, err := pathExists(path, ignoreAbsence); !ok {
		return false, err
	}

	values, err := c.runner.Run(c.ctx, path)
	if err != nil {
		var se *script.Error
		if errors.As(err, &se) {
			return false, errors.WithStack(&errors.DecodeError{Path: path, Format: string(Python), Err: err})
		}
		return false, errors.Wrapf(err, "loading %s", path)
	}

	entries := upperEntries(values)
	c.update(entries)
	c.logLoaded(Python, path, len(entries))
	return true, nil
}
