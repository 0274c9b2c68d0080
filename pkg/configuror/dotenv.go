package configuror

import (
	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/pkg/dotenv"
)

// LoadFromDotenv reads a dotenv file. Each value has its $NAME references
// expanded against the Environment, is exported to it, and is stored in the
// Config. A file without entries reports false.
func (c *Config) LoadFromDotenv(path string, ignoreAbsence bool) (bool, error) {
	if ok, err := pathExists(path, ignoreAbsence); !ok {
		return false, err
	}

	entries, err := dotenv.ParseFile(path)
	if err != nil {
		return false, err
	}
	if len(entries) == 0 {
		return false, nil
	}

	for _, e := range entries {
		value := dotenv.Expand(e.Value, c.env.LookupEnv)
		if err := c.env.Setenv(e.Key, value); err != nil {
			return false, errors.Wrapf(err, "exporting %s", e.Key)
		}
		c.values.Set(e.Key, value)
	}
	c.logLoaded(Env, path, len(entries))
	return true, nil
}
