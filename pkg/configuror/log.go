package configuror

import (
	"github.com/thoreinstein/configuror/internal/logging"
)

func (c *Config) logLoaded(format Format, path string, keys int) {
	c.logger.Debug("loaded configuration file", "format", string(format), "path", path, "entries", keys)
	c.logger.Log(c.ctx, logging.LevelTrace, "configuration size", "entries", c.values.Len())
}
