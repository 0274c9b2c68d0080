package configuror

import "strings"

type namespaceOptions struct {
	keepCase   bool
	keepPrefix bool
}

// NamespaceOption adjusts Namespace.
type NamespaceOption func(*namespaceOptions)

// KeepCase leaves keys in their original case.
func KeepCase() NamespaceOption {
	return func(o *namespaceOptions) { o.keepCase = true }
}

// KeepPrefix leaves the prefix on the keys.
func KeepPrefix() NamespaceOption {
	return func(o *namespaceOptions) { o.keepPrefix = true }
}

// Namespace returns the entries whose key starts with prefix. By default the
// prefix is removed and keys are lower-cased. The Config is not modified.
func (c *Config) Namespace(prefix string, opts ...NamespaceOption) map[string]any {
	var o namespaceOptions
	for _, opt := range opts {
		opt(&o)
	}

	out := make(map[string]any)
	for key, value := range c.All() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if !o.keepPrefix {
			key = key[len(prefix):]
		}
		if !o.keepCase {
			key = strings.ToLower(key)
		}
		out[key] = value
	}
	return out
}
