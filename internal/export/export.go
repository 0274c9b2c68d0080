// Package export encodes an aggregated configuration for display or for
// writing back to disk.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"math/big"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/internal/redact"
)

// Format is an output encoding.
type Format string

// Output formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
	Env  Format = "env"
)

var formats = []Format{JSON, YAML, TOML, Env}

// Formats lists the output formats.
func Formats() []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}

// ParseFormat resolves an output format name, ignoring case. "yml" is
// accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case JSON, YAML, TOML, Env:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", errors.InvalidValuef("output format must be one of %s, got %q", strings.Join(Formats(), ", "), name)
}

// Options adjusts Encode.
type Options struct {
	// Mask replaces values of secret-looking keys with a masked form.
	Mask bool
}

// Encode writes entries in format, keeping their order where the format
// allows it. TOML sorts keys and omits null values.
func Encode(entries iter.Seq2[string, any], format Format, opts Options) ([]byte, error) {
	om := orderedmap.New[string, any]()
	for k, v := range entries {
		v = normalize(v)
		if opts.Mask {
			v = redact.Value(k, v)
		}
		om.Set(k, v)
	}

	switch format {
	case JSON:
		return encodeJSON(om)
	case YAML:
		return encodeYAML(om)
	case TOML:
		return encodeTOML(om)
	case Env:
		return encodeEnv(om)
	default:
		return nil, errors.InvalidValuef("unsupported output format %q", format)
	}
}

func encodeJSON(om *orderedmap.OrderedMap[string, any]) ([]byte, error) {
	out, err := json.MarshalIndent(om, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling json")
	}
	return append(out, '\n'), nil
}

func encodeYAML(om *orderedmap.OrderedMap[string, any]) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		var value yaml.Node
		if err := value.Encode(yamlValue(pair.Value)); err != nil {
			return nil, errors.Wrapf(err, "marshaling yaml value of %s", pair.Key)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key},
			&value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, errors.Wrap(err, "marshaling yaml")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "marshaling yaml")
	}
	return buf.Bytes(), nil
}

// yamlValue swaps big integers for plain int scalars; yaml.v3 would
// otherwise quote them as text.
func yamlValue(v any) any {
	switch val := v.(type) {
	case *big.Int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: val.String()}
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = yamlValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = yamlValue(item)
		}
		return out
	default:
		return v
	}
}

func encodeTOML(om *orderedmap.OrderedMap[string, any]) ([]byte, error) {
	m := make(map[string]any, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value != nil {
			m[pair.Key] = pair.Value
		}
	}
	out, err := toml.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling toml")
	}
	return out, nil
}

func encodeEnv(om *orderedmap.OrderedMap[string, any]) ([]byte, error) {
	m := make(map[string]string, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		s, err := envValue(pair.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding %s", pair.Key)
		}
		m[pair.Key] = s
	}
	out, err := godotenv.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling dotenv")
	}
	return []byte(out + "\n"), nil
}

// envValue flattens a value to one string. Lists and maps become JSON.
func envValue(v any) (string, error) {
	switch v.(type) {
	case nil:
		return "", nil
	case map[string]any, []any:
		b, err := json.Marshal(v)
		return string(b), err
	}
	return cast.ToStringE(v)
}

// normalize converts maps with non-string keys, as produced by YAML, into
// map[string]any so every encoder accepts them.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	default:
		return v
	}
}
