// Package cmd holds the build metadata of the configuror binary.
//
// Release builds set the variables with
//
//	-ldflags "-X github.com/thoreinstein/configuror/cmd.Version=v1.2.0 ..."
//
// Builds made with "go install ...@version" carry no ldflags, so [Info]
// falls back to the module and VCS data recorded by the Go toolchain.
package cmd

import (
	"runtime"
	"runtime/debug"
)

// Build-time variables set via ldflags.
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
}

// Info returns the build metadata, preferring ldflags values.
func Info() BuildInfo {
	bi, ok := debug.ReadBuildInfo()
	return info(bi, ok)
}

func info(bi *debug.BuildInfo, ok bool) BuildInfo {
	out := BuildInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
	}
	if !ok || bi == nil {
		return out
	}

	if out.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		out.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if out.Commit == "none" {
				out.Commit = s.Value
			}
		case "vcs.time":
			if out.Date == "unknown" {
				out.Date = s.Value
			}
		}
	}
	if bi.GoVersion != "" {
		out.GoVersion = bi.GoVersion
	}
	return out
}
