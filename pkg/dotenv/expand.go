package dotenv

import (
	"regexp"
	"strings"
)

var reference = regexp.MustCompile(`\$(\w+|\{[^}]*\})`)

// Expand replaces $NAME and ${NAME} references in value with the result of
// lookup. References lookup cannot resolve are left as written.
func Expand(value string, lookup func(string) (string, bool)) string {
	if !strings.Contains(value, "$") {
		return value
	}
	return reference.ReplaceAllStringFunc(value, func(ref string) string {
		name := strings.TrimPrefix(ref, "$")
		if strings.HasPrefix(name, "{") {
			name = name[1 : len(name)-1]
		}
		if v, ok := lookup(name); ok {
			return v
		}
		return ref
	})
}
