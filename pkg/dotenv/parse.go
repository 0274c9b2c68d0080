package dotenv

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/pkg/fileutil"
)

// Format is the name reported in decode errors.
const Format = "env"

var (
	keywordPrefix = regexp.MustCompile(`(?i)^(?:set|export)\b\s*`)
	wordOrSlash   = regexp.MustCompile(`[\w/]`)
)

// Entry is one KEY=VALUE assignment.
type Entry struct {
	Key   string
	Value string
}

// ParseFile reads and parses the dotenv file at path.
func ParseFile(path string) ([]Entry, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return Parse(bytes.NewReader(data), path)
}

// Parse parses dotenv content from r. name identifies the source in errors.
// Entries are returned in order of first appearance.
func Parse(r io.Reader, name string) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), fileutil.MaxFileSize+1)

	var entries []Entry
	seen := make(map[string]int)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := parseLine(line)
		if !ok {
			return nil, errors.WithStack(&errors.DecodeError{
				Path:     name,
				Format:   Format,
				Line:     lineNo,
				Fragment: line,
			})
		}

		if i, dup := seen[key]; dup {
			entries[i].Value = value
			continue
		}
		seen[key] = len(entries)
		entries = append(entries, Entry{Key: key, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "scanning %s", name)
	}

	return entries, nil
}

// parseLine extracts the key and value of a single non-comment line.
func parseLine(line string) (key, value string, ok bool) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	line = keywordPrefix.ReplaceAllString(line, "")

	rawKey, rawValue, found := strings.Cut(line, "=")
	if !found || rawKey == "" || rawValue == "" {
		return "", "", false
	}
	if !wordOrSlash.MatchString(rawKey) || !wordOrSlash.MatchString(rawValue) {
		return "", "", false
	}

	key = strings.TrimRight(rawKey, " \t")
	value = unquote(strings.TrimLeft(rawValue, " \t"))
	return key, value, true
}

// unquote strips exactly one layer of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
