package configuror

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/pkg/script"
)

func staticRunner(values map[string]any, err error) script.Runner {
	return script.RunnerFunc(func(context.Context, string) (map[string]any, error) {
		return values, err
	})
}

func TestLoadFromScript(t *testing.T) {
	path := writeFile(t, t.TempDir(), "settings.py", "")
	c := newTestConfig(t, WithScriptRunner(staticRunner(map[string]any{
		"ZETA":     1,
		"ALPHA":    "a",
		"lower":    "skipped",
		"Mixed":    "skipped",
		"DB_HOST2": "db",
	}, nil)))

	got, err := c.LoadFromScript(path, false)
	if err != nil {
		t.Fatalf("LoadFromScript() error = %v", err)
	}
	if !got {
		t.Error("LoadFromScript() = false, want true")
	}
	if want := []string{"ALPHA", "DB_HOST2", "ZETA"}; !reflect.DeepEqual(c.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", c.Keys(), want)
	}
}

func TestLoadFromScript_Errors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "settings.py", "")

	t.Run("script error becomes decode error", func(t *testing.T) {
		c := newTestConfig(t, WithScriptRunner(staticRunner(nil,
			&script.Error{Path: path, Err: errors.New("module has no attribute")})))

		_, err := c.LoadFromScript(path, false)
		if !errors.Is(err, ErrDecode) {
			t.Fatalf("LoadFromScript() error = %v, want ErrDecode", err)
		}
		if want := path + " is not well python formatted"; err.Error() != want {
			t.Errorf("error = %q, want %q", err.Error(), want)
		}
	})

	t.Run("runner failure is passed through", func(t *testing.T) {
		c := newTestConfig(t, WithScriptRunner(staticRunner(nil, errors.New("python3 not found"))))

		_, err := c.LoadFromScript(path, false)
		if err == nil {
			t.Fatal("LoadFromScript() error = nil")
		}
		if errors.Is(err, ErrDecode) {
			t.Errorf("runner failure reported as ErrDecode: %v", err)
		}
		if !strings.Contains(err.Error(), "python3 not found") {
			t.Errorf("error = %q, want the runner's message", err.Error())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		c := newTestConfig(t, WithScriptRunner(staticRunner(nil, errors.New("must not run"))))

		got, err := c.LoadFromScript(filepath.Join(t.TempDir(), "nope.py"), true)
		if err != nil || got {
			t.Errorf("LoadFromScript() = %v, %v, want false, nil", got, err)
		}
	})
}

func TestLoadFromScript_Lua(t *testing.T) {
	path := writeFile(t, t.TempDir(), "settings.py", "DEBUG = true\nNAME = 'app'\nhelper = 1\n")
	c := newTestConfig(t, WithScriptRunner(script.NewLuaRunner()))

	if _, err := c.LoadFromScript(path, false); err != nil {
		t.Fatalf("LoadFromScript() error = %v", err)
	}
	if want := map[string]any{"DEBUG": true, "NAME": "app"}; !reflect.DeepEqual(c.Map(), want) {
		t.Errorf("Map() = %v, want %v", c.Map(), want)
	}
}
