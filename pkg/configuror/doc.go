// Package configuror aggregates configuration from files, the environment
// and in-memory objects into one ordered key-value mapping.
//
// A [Config] is filled by loaders, one per source format. Each loader merges
// the top-level keys of its source into the Config, so the last source loaded
// wins for a given key. Nested values are replaced, never merged.
//
//	cfg, err := configuror.New(
//	    configuror.WithMappingFiles(configuror.MappingFiles{
//	        {Tag: "yaml", Paths: []string{"defaults.yaml"}},
//	        {Tag: "env", Paths: []string{".env"}},
//	    }),
//	    configuror.WithFiles("settings.toml", "local.json"),
//	    configuror.WithIgnoreFileAbsence(true),
//	)
//
// # Formats
//
// JSON, YAML, TOML, INI, dotenv and executable scripts are supported. Files
// listed through [WithFiles] or [Config.LoadFromFiles] are dispatched on
// their extension (see [Formats]); mapping files name the format explicitly.
// Mapping files are always loaded before flat files.
//
// # Missing files
//
// Every loader takes an ignore flag. When it is false, a path that does not
// name a regular file fails with an [ErrNotFound] error; when true, the path
// is skipped and the loader reports false.
//
// # Environment
//
// Dotenv files write their values to an [Environment], the process
// environment unless [WithEnvironment] supplies another one. [Config.Getenv]
// and [GetEnv] read from the same provider.
package configuror
