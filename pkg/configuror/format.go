package configuror

import (
	"strings"

	"github.com/thoreinstein/configuror/internal/errors"
)

// Format identifies a source format.
type Format string

// Supported formats.
const (
	JSON   Format = "json"
	YAML   Format = "yaml"
	INI    Format = "ini"
	TOML   Format = "toml"
	Python Format = "python"
	Env    Format = "env"
)

var formats = []Format{JSON, YAML, INI, TOML, Python, Env}

var extensions = map[Format][]string{
	JSON:   {"json"},
	YAML:   {"yml", "yaml"},
	INI:    {"ini", "cfg"},
	TOML:   {"toml"},
	Python: {"py"},
	Env:    {"env"},
}

// Formats returns every supported format in dispatch order.
func Formats() []Format {
	return append([]Format(nil), formats...)
}

// Extensions returns the file extensions mapped to f, without dots.
func (f Format) Extensions() []string {
	return append([]string(nil), extensions[f]...)
}

// Extensions returns every supported extension in format order.
func Extensions() []string {
	var out []string
	for _, f := range formats {
		out = append(out, extensions[f]...)
	}
	return out
}

// ParseFormat resolves a format tag, ignoring case.
func ParseFormat(tag string) (Format, error) {
	f := Format(strings.ToLower(tag))
	if _, ok := extensions[f]; !ok {
		return "", errors.UnknownExtensionf("extension %q is not supported", tag)
	}
	return f, nil
}

// FormatForExtension returns the format of a file extension given without
// its dot. The match is case-sensitive.
func FormatForExtension(ext string) (Format, bool) {
	for _, f := range formats {
		for _, e := range extensions[f] {
			if e == ext {
				return f, true
			}
		}
	}
	return "", false
}

// FormatOfPath returns the format matching the extension of path.
func FormatOfPath(path string) (Format, bool) {
	return FormatForExtension(extensionOf(path))
}

// extensionOf returns the text after the last dot of path, or path itself
// when it has none.
func extensionOf(path string) string {
	return path[strings.LastIndex(path, ".")+1:]
}
