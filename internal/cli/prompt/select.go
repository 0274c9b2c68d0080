// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/thoreinstein/configuror/internal/errors"
)

// Sentinel errors for key selection.
var (
	ErrNoKeys             = errors.New("no keys to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector prompts for a choice with a numbered list. It is the fallback
// when no terminal is available for the fuzzy finder.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// SelectKey prompts the user to choose one of keys. The answer may be a
// list number, a full key name, or a fragment that matches exactly one key
// ignoring case. An empty answer picks the first key, and a single key is
// returned without prompting.
//
// It fails with ErrNoKeys for an empty list, ErrInvalidSelection for an
// answer that names no key or several, and ErrSelectionCancelled on EOF
// (Ctrl+D).
func (s *Selector) SelectKey(keys []string) (string, error) {
	if len(keys) == 0 {
		return "", ErrNoKeys
	}
	if len(keys) == 1 {
		return keys[0], nil
	}

	fmt.Fprintln(s.writer, "Configuration keys:")
	for i, k := range keys {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, k)
	}
	fmt.Fprintf(s.writer, "Select number or name [1]: ")

	input, err := bufio.NewReader(s.reader).ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", errors.Wrap(err, "reading selection")
		}
		if input == "" {
			return "", ErrSelectionCancelled
		}
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return keys[0], nil
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(keys) {
			return "", errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(keys))
		}
		return keys[n-1], nil
	}
	return matchKey(keys, input)
}

// matchKey resolves a typed name: an exact key wins, otherwise the fragment
// must appear in exactly one key.
func matchKey(keys []string, input string) (string, error) {
	if slices.Contains(keys, input) {
		return input, nil
	}
	fragment := strings.ToLower(input)
	var matches []string
	for _, k := range keys {
		if strings.Contains(strings.ToLower(k), fragment) {
			matches = append(matches, k)
		}
	}
	switch len(matches) {
	case 0:
		return "", errors.Wrapf(ErrInvalidSelection, "no key matches %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", errors.Wrapf(ErrInvalidSelection, "%q matches %d keys: %s", input, len(matches), strings.Join(matches, ", "))
	}
}
