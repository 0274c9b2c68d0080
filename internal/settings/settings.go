// Package settings loads the configuror CLI's own settings using Viper.
package settings

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/internal/paths"
	"github.com/thoreinstein/configuror/pkg/configuror"
)

// EnvPrefix prefixes environment variables that override settings.
const EnvPrefix = "CONFIGUROR"

// ConfigDirEnv overrides the directory searched for the settings file.
const ConfigDirEnv = EnvPrefix + "_CONFIG_DIR"

// Settings holds the CLI defaults. Flags override every field.
type Settings struct {
	IgnoreMissing bool           `mapstructure:"ignore_missing" yaml:"ignore_missing"`
	MaskSecrets   bool           `mapstructure:"mask_secrets" yaml:"mask_secrets"`
	Output        string         `mapstructure:"output" yaml:"output"`
	Interpolation string         `mapstructure:"interpolation" yaml:"interpolation"`
	Files         []string       `mapstructure:"files" yaml:"files"`
	Sources       map[string]any `mapstructure:"sources" yaml:"sources"`
}

// Init resets Viper and registers the settings search path, environment
// binding and defaults. Call it once at startup before Load.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		viper.AddConfigPath(dir)
	} else {
		viper.AddConfigPath(paths.SettingsDir())
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault("ignore_missing", d.IgnoreMissing)
	viper.SetDefault("mask_secrets", d.MaskSecrets)
	viper.SetDefault("output", d.Output)
	viper.SetDefault("interpolation", d.Interpolation)
	viper.SetDefault("files", d.Files)
}

// Load reads the settings file.
// If path is provided, it reads from that specific file and a missing file is
// an error. If path is empty, it searches the default locations and falls
// back to the defaults when nothing is found.
func Load(path string) (*Settings, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
		case errors.As(err, &notFound), os.IsNotExist(err):
			return nil, errors.Wrapf(errors.ErrNotFound, "settings file %s", path)
		default:
			return nil, errors.Wrap(err, "reading settings file")
		}
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "unmarshaling settings")
	}

	if errs := Validate(&s); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating settings")
	}
	return &s, nil
}

// DefaultPath returns where the settings file lives when no explicit path
// is given: inside $CONFIGUROR_CONFIG_DIR when set, the XDG location
// otherwise.
func DefaultPath() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return filepath.Join(dir, paths.SettingsFileName)
	}
	return paths.SettingsFile()
}

// Default returns the settings in effect when no file exists.
func Default() *Settings {
	return &Settings{
		Output:        "yaml",
		Interpolation: string(configuror.BasicInterpolation),
		Files:         []string{},
		Sources:       map[string]any{},
	}
}

// YAML renders s as a settings file.
func (s *Settings) YAML() ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling settings")
	}
	return out, nil
}

// FileUsed returns the settings file Load read, if any.
func FileUsed() string {
	return viper.ConfigFileUsed()
}

// MappingFiles returns Sources as mapping files with "~" expanded.
func (s *Settings) MappingFiles() (configuror.MappingFiles, error) {
	groups, err := configuror.MappingFilesFromMap(s.Sources)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		expanded, err := expandAll(groups[i].Paths)
		if err != nil {
			return nil, err
		}
		groups[i].Paths = expanded
	}
	return groups, nil
}

// ExpandedFiles returns Files with "~" expanded.
func (s *Settings) ExpandedFiles() ([]string, error) {
	return expandAll(s.Files)
}

func expandAll(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, p := range in {
		expanded, err := paths.ExpandHome(p)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	return out, nil
}
