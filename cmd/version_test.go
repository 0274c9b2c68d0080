package cmd

import (
	"runtime"
	"runtime/debug"
	"testing"
)

func TestInfo(t *testing.T) {
	stamped := &debug.BuildInfo{
		GoVersion: "go1.25.5",
		Main:      debug.Module{Path: "github.com/thoreinstein/configuror", Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "3f2a9c1"},
			{Key: "vcs.time", Value: "2026-03-01T10:00:00Z"},
		},
	}

	tests := []struct {
		name    string
		ldflags BuildInfo
		bi      *debug.BuildInfo
		ok      bool
		want    BuildInfo
	}{
		{
			name:    "no build info",
			ldflags: BuildInfo{Version: "dev", Commit: "none", Date: "unknown"},
			want:    BuildInfo{Version: "dev", Commit: "none", Date: "unknown", GoVersion: runtime.Version()},
		},
		{
			name:    "go install falls back to module data",
			ldflags: BuildInfo{Version: "dev", Commit: "none", Date: "unknown"},
			bi:      stamped,
			ok:      true,
			want:    BuildInfo{Version: "v0.4.1", Commit: "3f2a9c1", Date: "2026-03-01T10:00:00Z", GoVersion: "go1.25.5"},
		},
		{
			name:    "ldflags win",
			ldflags: BuildInfo{Version: "v1.0.0", Commit: "abc1234", Date: "2026-04-02"},
			bi:      stamped,
			ok:      true,
			want:    BuildInfo{Version: "v1.0.0", Commit: "abc1234", Date: "2026-04-02", GoVersion: "go1.25.5"},
		},
		{
			name:    "devel module version ignored",
			ldflags: BuildInfo{Version: "dev", Commit: "none", Date: "unknown"},
			bi:      &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			ok:      true,
			want:    BuildInfo{Version: "dev", Commit: "none", Date: "unknown", GoVersion: runtime.Version()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, c, d := Version, Commit, Date
			t.Cleanup(func() { Version, Commit, Date = v, c, d })
			Version, Commit, Date = tt.ldflags.Version, tt.ldflags.Commit, tt.ldflags.Date

			if got := info(tt.bi, tt.ok); got != tt.want {
				t.Errorf("info() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
