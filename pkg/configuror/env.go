package configuror

import (
	"maps"
	"os"
	"sync"

	"github.com/thoreinstein/configuror/internal/errors"
)

// Environment is a source and sink of environment variables.
type Environment interface {
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
}

// OSEnvironment is the process environment.
type OSEnvironment struct{}

// LookupEnv calls os.LookupEnv.
func (OSEnvironment) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

// Setenv calls os.Setenv.
func (OSEnvironment) Setenv(key, value string) error { return os.Setenv(key, value) }

// MapEnvironment is an in-memory Environment, safe for concurrent use.
type MapEnvironment struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMapEnvironment returns a MapEnvironment holding a copy of vars.
func NewMapEnvironment(vars map[string]string) *MapEnvironment {
	m := &MapEnvironment{vars: make(map[string]string, len(vars))}
	maps.Copy(m.vars, vars)
	return m
}

// LookupEnv returns the value of key.
func (m *MapEnvironment) LookupEnv(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vars[key]
	return v, ok
}

// Setenv sets key to value.
func (m *MapEnvironment) Setenv(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[key] = value
	return nil
}

// Vars returns a copy of the variables.
func (m *MapEnvironment) Vars() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.vars)
}

// Getenv returns the value of key in the Config's Environment, or def when
// it is unset.
func (c *Config) Getenv(key, def string) string {
	if v, ok := c.env.LookupEnv(key); ok {
		return v
	}
	return def
}

// GetEnv reads key like Getenv and converts the result, default included,
// with conv.
func GetEnv[T any](c *Config, key, def string, conv func(string) (T, error)) (T, error) {
	if conv == nil {
		var zero T
		return zero, errors.InvalidTypef("converter must be a function")
	}
	return conv(c.Getenv(key, def))
}
