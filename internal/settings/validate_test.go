package settings

import (
	"testing"

	"github.com/thoreinstein/configuror/internal/errors"
)

func validSettings() *Settings {
	return &Settings{Output: "yaml", Interpolation: "basic"}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Settings)
		wantCount int
		wantErr   error
	}{
		{name: "valid", mutate: func(*Settings) {}},
		{
			name:      "bad output",
			mutate:    func(s *Settings) { s.Output = "xml" },
			wantCount: 1,
			wantErr:   ErrInvalidOutput,
		},
		{
			name:      "bad interpolation",
			mutate:    func(s *Settings) { s.Interpolation = "" },
			wantCount: 1,
			wantErr:   ErrInvalidInterpolation,
		},
		{
			name:      "null byte in file",
			mutate:    func(s *Settings) { s.Files = []string{"ok.json", "bad\x00.json"} },
			wantCount: 1,
			wantErr:   ErrInvalidPath,
		},
		{
			name:      "dot path",
			mutate:    func(s *Settings) { s.Files = []string{"."} },
			wantCount: 1,
			wantErr:   ErrInvalidPath,
		},
		{
			name:      "source not a list",
			mutate:    func(s *Settings) { s.Sources = map[string]any{"json": "a.json"} },
			wantCount: 1,
			wantErr:   ErrInvalidSource,
		},
		{
			name:      "unknown source tag",
			mutate:    func(s *Settings) { s.Sources = map[string]any{"xml": []any{"a.xml"}} },
			wantCount: 1,
			wantErr:   ErrInvalidSource,
		},
		{
			name:      "bad source path",
			mutate:    func(s *Settings) { s.Sources = map[string]any{"json": []any{""}} },
			wantCount: 1,
			wantErr:   ErrInvalidPath,
		},
		{
			name: "multiple problems",
			mutate: func(s *Settings) {
				s.Output = "xml"
				s.Interpolation = "x"
			},
			wantCount: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(s)

			errs := Validate(s)
			if len(errs) != tt.wantCount {
				t.Fatalf("Validate() returned %d errors, want %d: %v", len(errs), tt.wantCount, errs)
			}
			if tt.wantErr != nil && !errors.Is(errs[0], tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", errs[0], tt.wantErr)
			}
			for _, err := range errs {
				if !errors.Is(err, errors.ErrInvalidConfig) {
					t.Errorf("error %v does not match ErrInvalidConfig", err)
				}
			}
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("Validate(nil) returned %d errors, want 1", len(errs))
	}
}
