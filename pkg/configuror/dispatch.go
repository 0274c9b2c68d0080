package configuror

import (
	"maps"
	"slices"
	"strings"

	"github.com/thoreinstein/configuror/internal/errors"
)

// FileGroup lists files of one format, named by its tag.
type FileGroup struct {
	Tag   string
	Paths []string
}

// MappingFiles is an ordered list of format groups.
type MappingFiles []FileGroup

// MappingFilesFromMap builds MappingFiles from loosely typed input such as
// decoded settings. Values must be lists of strings. Known tags come first in
// format order, other tags follow in lexical order and fail when loaded.
func MappingFilesFromMap(m map[string]any) (MappingFiles, error) {
	if m == nil {
		return nil, nil
	}

	rank := func(tag string) int {
		if i := slices.Index(formats, Format(strings.ToLower(tag))); i >= 0 {
			return i
		}
		return len(formats)
	}
	tags := slices.SortedFunc(maps.Keys(m), func(a, b string) int {
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra - rb
		}
		return strings.Compare(a, b)
	})

	out := make(MappingFiles, 0, len(tags))
	for _, tag := range tags {
		paths, err := toPathList(m[tag])
		if err != nil {
			return nil, err
		}
		out = append(out, FileGroup{Tag: tag, Paths: paths})
	}
	return out, nil
}

// LoadFromMappingFiles loads each group with the loader of its tag. INI and
// TOML groups are read as one document; other formats file by file. It
// reports whether any group had at least one existing file.
func (c *Config) LoadFromMappingFiles(groups MappingFiles, ignoreAbsence bool) (bool, error) {
	if groups == nil {
		return false, nil
	}

	added := false
	for _, g := range groups {
		format, err := ParseFormat(g.Tag)
		if err != nil {
			return added, err
		}
		files, err := FilterPaths(g.Paths, ignoreAbsence)
		if err != nil {
			return added, err
		}
		if len(files) == 0 {
			continue
		}
		added = true

		switch format {
		case INI:
			_, err = c.LoadFromINIFiles(files, false, c.interpolation)
		case TOML:
			_, err = c.LoadFromTOMLFiles(files, false)
		default:
			for _, f := range files {
				if _, err = c.load(format, f); err != nil {
					break
				}
			}
		}
		if err != nil {
			return added, err
		}
	}
	return added, nil
}

// LoadFromFiles loads each existing file with the loader matching its
// extension, in order. It reports false when no file exists.
func (c *Config) LoadFromFiles(paths []string, ignoreAbsence bool) (bool, error) {
	if len(paths) == 0 {
		return false, nil
	}
	files, err := FilterPaths(paths, ignoreAbsence)
	if err != nil {
		return false, err
	}
	if len(files) == 0 {
		return false, nil
	}

	for _, f := range files {
		format, ok := FormatOfPath(f)
		if !ok {
			return false, errors.UnknownExtensionf("%s does not have a correct extension, supported extensions are: %s",
				f, strings.Join(Extensions(), ", "))
		}
		if _, err := c.load(format, f); err != nil {
			return false, err
		}
	}
	return true, nil
}

// load reads a file known to exist.
func (c *Config) load(format Format, path string) (bool, error) {
	switch format {
	case JSON:
		return c.LoadFromJSON(path, false)
	case YAML:
		return c.LoadFromYAML(path, false)
	case TOML:
		return c.LoadFromTOML(path, false)
	case INI:
		return c.LoadFromINI(path, false, c.interpolation)
	case Python:
		return c.LoadFromScript(path, false)
	default:
		return c.LoadFromDotenv(path, false)
	}
}
