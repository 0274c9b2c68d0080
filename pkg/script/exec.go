package script

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/pkg/fileutil"
)

// DefaultInterpreter is the program ExecRunner starts when none is set.
const DefaultInterpreter = "python3"

// exitAttributeError is the bootstrap's exit status when the module cannot
// be imported because of an AttributeError.
const exitAttributeError = 3

// bootstrap imports the module at argv[1] and prints its upper-case
// attributes as a JSON object. Values JSON cannot represent are printed
// with str().
const bootstrap = `import importlib.util, json, pathlib, sys
path = sys.argv[1]
try:
    spec = importlib.util.spec_from_file_location(pathlib.Path(path).stem, path)
    module = importlib.util.module_from_spec(spec)
    spec.loader.exec_module(module)
except AttributeError as exc:
    print(exc, file=sys.stderr)
    sys.exit(3)
values = {name: getattr(module, name) for name in dir(module) if name.isupper()}
json.dump(values, sys.stdout, default=str)
`

// ExecRunner evaluates Python configuration modules in a subprocess.
type ExecRunner struct {
	// Interpreter is the python executable, DefaultInterpreter when empty.
	Interpreter string

	// Env is the subprocess environment; nil inherits the current one.
	Env []string

	Logger *slog.Logger
}

// NewExecRunner returns an ExecRunner using DefaultInterpreter.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Interpreter: DefaultInterpreter}
}

// Run imports path as a module and returns its upper-case attributes.
func (r *ExecRunner) Run(ctx context.Context, path string) (map[string]any, error) {
	interpreter := r.Interpreter
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var stdout fileutil.LimitedBuffer
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, interpreter, "-c", bootstrap, path)
	cmd.Env = r.Env
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running configuration script", "interpreter", interpreter, "path", path)
	if err := cmd.Run(); err != nil {
		if errors.Is(err, fileutil.ErrFileTooLarge) {
			return nil, errors.Wrapf(err, "output of %s", path)
		}
		msg := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == exitAttributeError {
			return nil, scriptError(path, errors.New(msg))
		}
		if msg != "" {
			return nil, errors.Wrapf(err, "running %s with %s: %s", path, interpreter, msg)
		}
		return nil, errors.Wrapf(err, "running %s with %s", path, interpreter)
	}

	return decodeJSON(stdout.Bytes())
}
