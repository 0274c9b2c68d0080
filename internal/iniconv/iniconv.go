// Package iniconv turns one or more INI files into a flat
// section -> option -> value mapping.
//
// Files are parsed with gopkg.in/ini.v1 and merged in order: later files
// override options of sections that already exist and append new sections.
// The DEFAULT section is always present, its options are visible from every
// other section, and option names are lower-cased. Values are interpolated on
// [Document.Resolve] with either the basic (%(name)s) or extended
// (${section:name}) syntax.
package iniconv

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/pkg/fileutil"
)

// Format is the name reported in decode errors.
const Format = "ini"

// DefaultSection is the name of the section shared by all others.
const DefaultSection = "DEFAULT"

// loadOptions bring ini.v1 close to Python's configparser: no inline
// comments, no backslash continuation, indented continuation lines, quotes
// kept, ':' accepted as a delimiter.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:        true,
	IgnoreContinuation:         true,
	AllowPythonMultilineValues: true,
	PreserveSurroundedQuote:    true,
	KeyValueDelimiters:         "=:",
}

// Section is one resolved INI section.
type Section struct {
	Name   string
	Values map[string]any
}

type section struct {
	name   string
	keys   []string
	values map[string]string
}

func (s *section) set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Document accumulates the sections of every file read so far.
type Document struct {
	sections []*section
	index    map[string]*section
}

// NewDocument returns a document holding only an empty DEFAULT section.
func NewDocument() *Document {
	d := &Document{index: make(map[string]*section)}
	d.section(DefaultSection)
	return d
}

func (d *Document) section(name string) *section {
	if s, ok := d.index[name]; ok {
		return s
	}
	s := &section{name: name, values: make(map[string]string)}
	d.sections = append(d.sections, s)
	d.index[name] = s
	return s
}

// Load reads every path in order into a new Document.
func Load(paths []string) (*Document, error) {
	d := NewDocument()
	for _, path := range paths {
		data, err := fileutil.ReadFileWithLimit(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		if err := d.Merge(path, data); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Merge parses data and folds its sections into d. name identifies the
// source in errors. A section or option repeated within data is an error;
// repeating them across calls is how files override each other.
func (d *Document) Merge(name string, data []byte) error {
	src, raw, err := prescan(data)
	if err != nil {
		return decodeError(name, err)
	}

	f, err := ini.LoadSources(loadOptions, src)
	if err != nil {
		return decodeError(name, err)
	}

	for _, s := range f.Sections() {
		target := d.section(s.Name())
		for _, k := range s.Keys() {
			target.set(strings.ToLower(k.Name()), raw.restore(k.Value()))
		}
	}
	return nil
}

// Resolve interpolates every value and returns the sections in order, with
// DEFAULT first. Options of DEFAULT are copied into every section that does
// not override them.
func (d *Document) Resolve(mode Interpolation) ([]Section, error) {
	out := make([]Section, 0, len(d.sections))
	for _, s := range d.sections {
		values := make(map[string]any)
		for _, key := range d.optionKeys(s.name) {
			raw, _ := d.lookup(s.name, key)
			v, err := d.interpolate(mode, s.name, key, raw)
			if err != nil {
				return nil, errors.WithStack(&errors.DecodeError{
					Format: Format,
					Msg:    "one of your files is not well " + Format + " formatted",
					Err:    err,
				})
			}
			values[key] = v
		}
		out = append(out, Section{Name: s.name, Values: values})
	}
	return out, nil
}

// lookup finds an option in a section, falling back to DEFAULT.
func (d *Document) lookup(sectionName, key string) (string, bool) {
	if s, ok := d.index[sectionName]; ok {
		if v, ok := s.values[key]; ok {
			return v, true
		}
	}
	v, ok := d.index[DefaultSection].values[key]
	return v, ok
}

// optionKeys lists the options visible in a section: its own, then the
// DEFAULT ones it does not override.
func (d *Document) optionKeys(sectionName string) []string {
	s := d.index[sectionName]
	keys := append([]string(nil), s.keys...)
	if sectionName == DefaultSection {
		return keys
	}
	for _, k := range d.index[DefaultSection].keys {
		if _, own := s.values[k]; !own {
			keys = append(keys, k)
		}
	}
	return keys
}

func (d *Document) hasSection(name string) bool {
	_, ok := d.index[name]
	return ok
}

// rawValues holds values ini.v1 would unquote, keyed by the placeholder
// that stands in for them during parsing.
type rawValues map[string]string

func (r rawValues) restore(v string) string {
	for placeholder, value := range r {
		v = strings.ReplaceAll(v, placeholder, value)
	}
	return v
}

// prescan checks the file structure line by line before ini.v1 sees it:
// the first significant line must be a section header, and sections and
// options may appear only once. Values starting with a backtick or """
// are swapped for placeholders since ini.v1 would strip those quotes and
// may read past the end of the line looking for the closing one.
func prescan(data []byte) ([]byte, rawValues, error) {
	lines := strings.Split(strings.TrimPrefix(string(data), "\ufeff"), "\n")
	raw := make(rawValues)
	sections := make(map[string]bool)
	var options map[string]bool
	inSection := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed[0] == '#' || trimmed[0] == ';' {
			continue
		}
		// Indented lines continue the previous value.
		if inSection && (line[0] == ' ' || line[0] == '\t') {
			continue
		}

		if trimmed[0] == '[' {
			end := strings.LastIndexByte(trimmed, ']')
			if end < 0 {
				return nil, nil, errors.Newf("line %d: unterminated section header %q", i+1, trimmed)
			}
			name := trimmed[1:end]
			if sections[name] {
				return nil, nil, errors.Newf("line %d: section %q already exists", i+1, name)
			}
			sections[name] = true
			options = make(map[string]bool)
			inSection = true
			continue
		}
		if !inSection {
			return nil, nil, errors.New("file contains no section headers")
		}

		delim := strings.IndexAny(trimmed, "=:")
		if delim < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(trimmed[:delim]))
		if options[key] {
			return nil, nil, errors.Newf("line %d: option %q already exists in this section", i+1, key)
		}
		options[key] = true

		value := strings.TrimSpace(trimmed[delim+1:])
		if strings.HasPrefix(value, "`") || strings.HasPrefix(value, `"""`) {
			placeholder := fmt.Sprintf("__iniconv_raw_%d__", i)
			raw[placeholder] = value
			lines[i] = trimmed[:delim+1] + " " + placeholder
		}
	}
	return []byte(strings.Join(lines, "\n")), raw, nil
}

func decodeError(path string, err error) error {
	return errors.WithStack(&errors.DecodeError{
		Path:   path,
		Format: Format,
		Msg:    "one of your files is not well " + Format + " formatted: " + path,
		Err:    err,
	})
}
