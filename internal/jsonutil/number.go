// Package jsonutil holds helpers shared by the JSON decoders of the file
// loader and the script runner.
package jsonutil

import (
	"encoding/json"
	"math/big"
	"strings"
)

// Normalize replaces json.Number values, as decoded with UseNumber, in v.
// Integers become int64, or *big.Int when they do not fit, so no digit is
// lost. Other numbers become float64. Maps and slices are rewritten in
// place.
func Normalize(v any) any {
	switch val := v.(type) {
	case json.Number:
		return number(val)
	case map[string]any:
		for k, item := range val {
			val[k] = Normalize(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = Normalize(item)
		}
		return val
	default:
		return v
	}
}

func number(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if b, ok := new(big.Int).SetString(s, 10); ok {
			return b
		}
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return s
}
