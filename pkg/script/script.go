package script

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/internal/jsonutil"
)

// Runner executes a configuration script and returns the names it defines.
type Runner interface {
	Run(ctx context.Context, path string) (map[string]any, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, path string) (map[string]any, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, path string) (map[string]any, error) {
	return f(ctx, path)
}

// Error reports a script that could not be evaluated because of its content.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("evaluating %s: %v", e.Path, e.Err)
}

// Unwrap returns the interpreter error.
func (e *Error) Unwrap() error { return e.Err }

func scriptError(path string, cause error) error {
	return errors.WithStack(&Error{Path: path, Err: cause})
}

// decodeJSON decodes a JSON object, keeping integers exact.
func decodeJSON(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decoding script output")
	}
	for k, v := range raw {
		raw[k] = jsonutil.Normalize(v)
	}
	return raw, nil
}
