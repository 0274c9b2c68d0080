package configuror

import (
	"context"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"unicode"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/thoreinstein/configuror/internal/iniconv"
	"github.com/thoreinstein/configuror/pkg/script"
)

// Interpolation selects how INI values reference other options.
type Interpolation = iniconv.Interpolation

// INI interpolation modes.
const (
	BasicInterpolation    = iniconv.Basic
	ExtendedInterpolation = iniconv.Extended
)

// Config is an ordered configuration mapping. Keys keep the position of
// their first insertion; later writes replace the value in place.
//
// A Config is not safe for concurrent mutation.
type Config struct {
	values *orderedmap.OrderedMap[string, any]

	ctx           context.Context
	env           Environment
	runner        script.Runner
	logger        *slog.Logger
	interpolation Interpolation
}

type options struct {
	defaults      []entry
	mappingFiles  MappingFiles
	files         []string
	ignore        bool
	ctx           context.Context
	env           Environment
	runner        script.Runner
	logger        *slog.Logger
	interpolation string
}

// Option configures a Config built by New.
type Option func(*options)

// WithDefault seeds key before any file is loaded.
func WithDefault(key string, value any) Option {
	return func(o *options) {
		o.defaults = append(o.defaults, entry{key, value})
	}
}

// WithDefaults seeds every key of values, in lexical key order.
func WithDefaults(values map[string]any) Option {
	return func(o *options) {
		o.defaults = append(o.defaults, sortedEntries(values)...)
	}
}

// WithMappingFiles loads the given format groups on construction.
func WithMappingFiles(m MappingFiles) Option {
	return func(o *options) {
		o.mappingFiles = append(o.mappingFiles, m...)
	}
}

// WithFiles loads the given files on construction, dispatching on extension.
func WithFiles(paths ...string) Option {
	return func(o *options) {
		o.files = append(o.files, paths...)
	}
}

// WithIgnoreFileAbsence skips missing files during construction instead of
// failing.
func WithIgnoreFileAbsence(ignore bool) Option {
	return func(o *options) {
		o.ignore = ignore
	}
}

// WithContext sets the context passed to script runners.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithEnvironment replaces the process environment as the target of dotenv
// files and the source of Getenv.
func WithEnvironment(env Environment) Option {
	return func(o *options) {
		if env != nil {
			o.env = env
		}
	}
}

// WithScriptRunner sets the runner used for python files.
func WithScriptRunner(r script.Runner) Option {
	return func(o *options) {
		if r != nil {
			o.runner = r
		}
	}
}

// WithLogger sets the logger. Loaders log at debug level and below.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithInterpolation sets the INI interpolation used when files are
// dispatched by extension or mapping tag. Defaults to basic.
func WithInterpolation(mode string) Option {
	return func(o *options) {
		o.interpolation = mode
	}
}

// New returns a Config seeded with its defaults, then filled from the mapping
// files and finally from the flat file list.
func New(opts ...Option) (*Config, error) {
	o := options{
		ctx:           context.Background(),
		env:           OSEnvironment{},
		runner:        script.NewExecRunner(),
		logger:        slog.Default(),
		interpolation: string(BasicInterpolation),
	}
	for _, opt := range opts {
		opt(&o)
	}

	mode, err := iniconv.ParseInterpolation(o.interpolation)
	if err != nil {
		return nil, err
	}

	c := &Config{
		values:        orderedmap.New[string, any](),
		ctx:           o.ctx,
		env:           o.env,
		runner:        o.runner,
		logger:        o.logger,
		interpolation: mode,
	}
	c.update(o.defaults)

	if _, err := c.LoadFromMappingFiles(o.mappingFiles, o.ignore); err != nil {
		return nil, err
	}
	if _, err := c.LoadFromFiles(o.files, o.ignore); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns the value stored under key.
func (c *Config) Get(key string) (any, bool) {
	return c.values.Get(key)
}

// Set stores value under key.
func (c *Config) Set(key string, value any) {
	c.values.Set(key, value)
}

// Delete removes key and reports whether it was present.
func (c *Config) Delete(key string) bool {
	_, ok := c.values.Delete(key)
	return ok
}

// Has reports whether key is present.
func (c *Config) Has(key string) bool {
	_, ok := c.values.Get(key)
	return ok
}

// Len returns the number of keys.
func (c *Config) Len() int {
	return c.values.Len()
}

// Keys returns the keys in insertion order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, c.values.Len())
	for pair := c.values.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// All iterates over the entries in insertion order.
func (c *Config) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for pair := c.values.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Map returns a shallow copy of the entries.
func (c *Config) Map() map[string]any {
	out := make(map[string]any, c.values.Len())
	for k, v := range c.All() {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the entries as a JSON object in insertion order.
func (c *Config) MarshalJSON() ([]byte, error) {
	return c.values.MarshalJSON()
}

type entry struct {
	key   string
	value any
}

func (c *Config) update(entries []entry) {
	for _, e := range entries {
		c.values.Set(e.key, e.value)
	}
}

func sortedEntries(m map[string]any) []entry {
	out := make([]entry, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		out = append(out, entry{k, m[k]})
	}
	return out
}

// IsUpper reports whether s has at least one cased letter and no lower-case
// or title-case letter. Only such names are taken from scripts and objects.
func IsUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}

func upperEntries(m map[string]any) []entry {
	var out []entry
	for _, e := range sortedEntries(m) {
		if IsUpper(e.key) {
			out = append(out, e)
		}
	}
	return out
}
