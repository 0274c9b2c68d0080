// Package settings provides the configuror CLI's own settings.
//
// These settings are distinct from the configuration the CLI aggregates:
// they only supply defaults for command-line flags.
//
// # Settings File
//
// The default location is $XDG_CONFIG_HOME/configuror/config.yaml, or
// config.yaml inside $CONFIGUROR_CONFIG_DIR when that is set:
//
//	ignore_missing: true
//	mask_secrets: true
//	output: json
//	interpolation: extended
//	files:
//	  - ~/app/settings.toml
//	sources:
//	  yaml: [defaults.yaml]
//	  env: [.env]
//
// Every key can also be set through a CONFIGUROR_ prefixed environment
// variable, for example CONFIGUROR_OUTPUT=toml.
//
// # Loading
//
//	settings.Init()
//	s, err := settings.Load("")
//	if err != nil {
//	    return err
//	}
//
// Load validates what it read; [Validate] can also be called directly and
// returns every problem found. Validation errors match
// errors.ErrInvalidConfig.
package settings
