package configuror

import (
	"reflect"
	"sync"

	"github.com/thoreinstein/configuror/internal/errors"
)

// Exporter is implemented by objects that list their configuration values
// themselves.
type Exporter interface {
	ConfigExports() map[string]any
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]any)
)

// RegisterObject makes obj loadable by name through LoadFromObject.
// Registering a name twice replaces the earlier object.
func RegisterObject(name string, obj any) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = obj
}

// UnregisterObject removes a registered object.
func UnregisterObject(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, name)
}

func lookupObject(name string) (any, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	obj, ok := registry[name]
	return obj, ok
}

// LoadFromObject merges the upper-case names of obj in lexical order.
//
// obj may be the name of a registered object, an Exporter, a map with string
// keys, or a struct or pointer to struct. Struct fields are read by name,
// or by the name in their `configuror` tag; a tag of "-" skips the field.
func (c *Config) LoadFromObject(obj any) error {
	if name, ok := obj.(string); ok {
		found, ok := lookupObject(name)
		if !ok {
			return errors.NotFoundf("no object registered under %q", name)
		}
		obj = found
	}

	values, err := objectValues(obj)
	if err != nil {
		return err
	}

	entries := upperEntries(values)
	c.update(entries)
	c.logger.Debug("loaded object", "type", reflect.TypeOf(obj).String(), "entries", len(entries))
	return nil
}

func objectValues(obj any) (map[string]any, error) {
	switch v := obj.(type) {
	case Exporter:
		return v.ConfigExports(), nil
	case map[string]any:
		return v, nil
	}

	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errors.InvalidTypef("%T is a nil pointer", obj)
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, errors.InvalidTypef("%T does not have string keys", obj)
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil
	case reflect.Struct:
		out := make(map[string]any)
		t := rv.Type()
		for i := range t.NumField() {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name := field.Name
			if tag, ok := field.Tag.Lookup("configuror"); ok {
				if tag == "-" {
					continue
				}
				if tag != "" {
					name = tag
				}
			}
			out[name] = rv.Field(i).Interface()
		}
		return out, nil
	default:
		return nil, errors.InvalidTypef("%T is not a configuration object", obj)
	}
}
