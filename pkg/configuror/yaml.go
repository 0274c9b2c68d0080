package configuror

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/pkg/fileutil"
)

// LoadFromYAML merges the top-level keys of a YAML mapping document. A
// document that is empty or not a mapping leaves the Config untouched and
// reports false.
func (c *Config) LoadFromYAML(path string, ignoreAbsence bool) (bool, error) {
	if ok, err := pathExists(path, ignoreAbsence); !ok {
		return false, err
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return false, errors.Wrapf(err, "reading %s", path)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false, errors.WithStack(&errors.DecodeError{Path: path, Format: string(YAML), Err: err})
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return false, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.AliasNode {
		root = root.Alias
	}
	if root.Kind != yaml.MappingNode {
		c.logger.Debug("yaml document is not a mapping", "path", path)
		return false, nil
	}

	entries, err := yamlEntries(root)
	if err != nil {
		return false, errors.WithStack(&errors.DecodeError{Path: path, Format: string(YAML), Err: err})
	}

	c.update(entries)
	c.logLoaded(YAML, path, len(entries))
	return true, nil
}

// yamlEntries decodes a mapping node into entries in document order.
// Merge keys are expanded in place; explicit keys win over merged ones and
// earlier merged mappings win over later ones.
func yamlEntries(node *yaml.Node) ([]entry, error) {
	explicit := make(map[string]bool)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if k := node.Content[i]; !isMergeKey(k) {
			var key any
			if err := k.Decode(&key); err != nil {
				return nil, err
			}
			explicit[yamlKey(key)] = true
		}
	}

	var entries []entry
	merged := make(map[string]bool)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]

		if isMergeKey(k) {
			inherited, err := mergeEntries(v)
			if err != nil {
				return nil, err
			}
			for _, e := range inherited {
				if explicit[e.key] || merged[e.key] {
					continue
				}
				merged[e.key] = true
				entries = append(entries, e)
			}
			continue
		}

		var key any
		if err := k.Decode(&key); err != nil {
			return nil, err
		}
		var value any
		if err := v.Decode(&value); err != nil {
			return nil, err
		}
		entries = append(entries, entry{yamlKey(key), value})
	}
	return dedupe(entries), nil
}

func isMergeKey(k *yaml.Node) bool {
	return k.Kind == yaml.ScalarNode && k.Value == "<<" && (k.Tag == "" || k.Tag == "!!merge")
}

func mergeEntries(v *yaml.Node) ([]entry, error) {
	if v.Kind == yaml.AliasNode {
		v = v.Alias
	}
	switch v.Kind {
	case yaml.MappingNode:
		return yamlEntries(v)
	case yaml.SequenceNode:
		var out []entry
		for _, item := range v.Content {
			merged, err := mergeEntries(item)
			if err != nil {
				return nil, err
			}
			out = append(out, merged...)
		}
		return out, nil
	default:
		return nil, errors.Newf("line %d: merge value must be a mapping", v.Line)
	}
}

func yamlKey(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	return fmt.Sprint(key)
}
