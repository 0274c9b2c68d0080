package iniconv

import (
	"regexp"
	"strings"

	"github.com/thoreinstein/configuror/internal/errors"
)

// Interpolation selects how option references are expanded.
type Interpolation string

const (
	// Basic expands %(name)s from the same section or DEFAULT; %% is a literal %.
	Basic Interpolation = "basic"
	// Extended expands ${name} and ${section:name}; $$ is a literal $.
	Extended Interpolation = "extended"
)

// MaxDepth bounds nested references.
const MaxDepth = 10

var (
	basicRef    = regexp.MustCompile(`^%\(([^)]+)\)s`)
	extendedRef = regexp.MustCompile(`^\$\{([^}]+)\}`)
)

// ParseInterpolation validates a mode name, ignoring case.
func ParseInterpolation(mode string) (Interpolation, error) {
	switch Interpolation(strings.ToLower(mode)) {
	case Basic:
		return Basic, nil
	case Extended:
		return Extended, nil
	}
	return "", errors.InvalidValuef("interpolation method must be either %q or %q", Basic, Extended)
}

func (d *Document) interpolate(mode Interpolation, sectionName, key, raw string) (string, error) {
	var b strings.Builder
	var err error
	switch mode {
	case Extended:
		err = d.expandExtended(&b, sectionName, key, raw, 1)
	default:
		err = d.expandBasic(&b, sectionName, key, raw, 1)
	}
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

func (d *Document) expandBasic(b *strings.Builder, sectionName, key, rest string, depth int) error {
	if depth > MaxDepth {
		return errors.Newf("interpolation depth exceeded for option %q in section %q", key, sectionName)
	}
	for rest != "" {
		p := strings.IndexByte(rest, '%')
		if p < 0 {
			b.WriteString(rest)
			return nil
		}
		b.WriteString(rest[:p])
		rest = rest[p:]

		switch {
		case strings.HasPrefix(rest, "%%"):
			b.WriteByte('%')
			rest = rest[2:]
		case strings.HasPrefix(rest, "%("):
			m := basicRef.FindStringSubmatch(rest)
			if m == nil {
				return errors.Newf("bad interpolation variable reference %q", rest)
			}
			rest = rest[len(m[0]):]
			name := strings.ToLower(m[1])
			v, ok := d.lookup(sectionName, name)
			if !ok {
				return errors.Newf("bad value substitution: option %q in section %q references missing option %q", key, sectionName, name)
			}
			if strings.Contains(v, "%") {
				if err := d.expandBasic(b, sectionName, name, v, depth+1); err != nil {
					return err
				}
				continue
			}
			b.WriteString(v)
		default:
			return errors.Newf("'%%' must be followed by '%%' or '(', found: %q", rest)
		}
	}
	return nil
}

func (d *Document) expandExtended(b *strings.Builder, sectionName, key, rest string, depth int) error {
	if depth > MaxDepth {
		return errors.Newf("interpolation depth exceeded for option %q in section %q", key, sectionName)
	}
	for rest != "" {
		p := strings.IndexByte(rest, '$')
		if p < 0 {
			b.WriteString(rest)
			return nil
		}
		b.WriteString(rest[:p])
		rest = rest[p:]

		switch {
		case strings.HasPrefix(rest, "$$"):
			b.WriteByte('$')
			rest = rest[2:]
		case strings.HasPrefix(rest, "${"):
			m := extendedRef.FindStringSubmatch(rest)
			if m == nil {
				return errors.Newf("bad interpolation variable reference %q", rest)
			}
			rest = rest[len(m[0]):]

			target, name := sectionName, ""
			parts := strings.Split(m[1], ":")
			switch len(parts) {
			case 1:
				name = strings.ToLower(parts[0])
			case 2:
				target, name = parts[0], strings.ToLower(parts[1])
				if !d.hasSection(target) {
					return errors.Newf("bad value substitution: section %q referenced by option %q does not exist", target, key)
				}
			default:
				return errors.Newf("more than one ':' found: %q", m[0])
			}

			v, ok := d.lookup(target, name)
			if !ok {
				return errors.Newf("bad value substitution: option %q in section %q references missing option %q", key, sectionName, m[1])
			}
			if strings.Contains(v, "$") {
				if err := d.expandExtended(b, target, name, v, depth+1); err != nil {
					return err
				}
				continue
			}
			b.WriteString(v)
		default:
			return errors.Newf("'$' must be followed by '$' or '{', found: %q", rest)
		}
	}
	return nil
}
