package configuror

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/internal/jsonutil"
	"github.com/thoreinstein/configuror/pkg/fileutil"
)

// LoadFromJSON merges the top-level members of a JSON object file.
func (c *Config) LoadFromJSON(path string, ignoreAbsence bool) (bool, error) {
	if ok, err := pathExists(path, ignoreAbsence); !ok {
		return false, err
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return false, errors.Wrapf(err, "reading %s", path)
	}

	entries, err := decodeJSONObject(data)
	if err != nil {
		return false, errors.WithStack(&errors.DecodeError{Path: path, Format: string(JSON), Err: err})
	}

	c.update(entries)
	c.logLoaded(JSON, path, len(entries))
	return true, nil
}

// decodeJSONObject decodes a JSON object and returns its members in
// document order.
func decodeJSONObject(data []byte) ([]entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.Newf("top-level value is %v, want an object", tok)
	}

	var entries []entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		entries = append(entries, entry{key, jsonutil.Normalize(value)})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("invalid data after top-level value")
	}
	return dedupe(entries), nil
}

// dedupe keeps the last value of repeated keys at the first key's position.
func dedupe(entries []entry) []entry {
	index := make(map[string]int, len(entries))
	out := entries[:0]
	for _, e := range entries {
		if i, ok := index[e.key]; ok {
			out[i].value = e.value
			continue
		}
		index[e.key] = len(out)
		out = append(out, e)
	}
	return out
}
