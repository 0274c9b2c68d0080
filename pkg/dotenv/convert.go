package dotenv

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/thoreinstein/configuror/internal/errors"
)

// separator matches a comma, semicolon, colon or whitespace run, plus any
// whitespace that follows it.
var separator = regexp.MustCompile(`(?:[,;:]|\s+)\s*`)

// Bool reports whether value is truthy. "n", "0", "no" and "false" (any
// case) are false, as is the empty string; everything else is true.
func Bool(value string) bool {
	switch strings.ToLower(value) {
	case "n", "0", "no", "false":
		return false
	}
	return value != ""
}

// Strings splits value on the separator set. Empty input yields nil.
func Strings(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return separator.Split(value, -1)
}

// Ints splits value and converts every item to an int.
func Ints(value string) ([]int, error) {
	return convertAll(value, "integer", cast.ToIntE)
}

// Floats splits value and converts every item to a float64.
func Floats(value string) ([]float64, error) {
	return convertAll(value, "float", cast.ToFloat64E)
}

// Decimals splits value and converts every item to an exact decimal.
func Decimals(value string) ([]decimal.Decimal, error) {
	return convertAll(value, "decimal", func(item any) (decimal.Decimal, error) {
		return decimal.NewFromString(item.(string))
	})
}

// Paths splits value and cleans every item as a filesystem path.
func Paths(value string) []string {
	items := Strings(value)
	for i, item := range items {
		items[i] = filepath.Clean(item)
	}
	return items
}

func convertAll[T any](value, kind string, conv func(any) (T, error)) ([]T, error) {
	items := Strings(value)
	if items == nil {
		return nil, nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		v, err := conv(item)
		if err != nil {
			return nil, errors.InvalidValuef("%q is not a valid %s", item, kind)
		}
		out = append(out, v)
	}
	return out, nil
}
