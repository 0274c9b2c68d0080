package validator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thoreinstein/configuror/pkg/configuror"
	"github.com/thoreinstein/configuror/pkg/script"
)

// Severity represents the impact of an issue.
type Severity int

const (
	// SeverityError marks a source that would make loading fail.
	SeverityError Severity = iota
	// SeverityWarning marks a source that would be skipped.
	SeverityWarning
	// SeverityInfo carries a note about a healthy source.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("unknown severity %q", b)
	}
	return nil
}

// Issue describes one finding about one source.
type Issue struct {
	Severity Severity `json:"severity"`
	// Path is the file concerned, empty for group-level issues.
	Path string `json:"path,omitempty"`
	// Format is the format the file was checked as, when known.
	Format  string `json:"format,omitempty"`
	Message string `json:"message"`
	// Keys counts the keys the file contributed, on info issues.
	Keys int `json:"keys,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Path != "" {
		sb.WriteString(i.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)
	return sb.String()
}

// Report aggregates the issues of one check, in source order.
type Report struct {
	Issues []Issue `json:"issues"`
}

func (r *Report) add(i Issue) {
	r.Issues = append(r.Issues, i)
}

// Count returns the number of issues with severity s.
func (r *Report) Count(s Severity) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, i := range r.Issues {
		if i.Severity == s {
			n++
		}
	}
	return n
}

// HasErrors reports whether any issue has SeverityError.
func (r *Report) HasErrors() bool { return r.Count(SeverityError) > 0 }

// HasWarnings reports whether any issue has SeverityWarning.
func (r *Report) HasWarnings() bool { return r.Count(SeverityWarning) > 0 }

// Filter returns the issues with severity s.
func (r *Report) Filter(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			res = append(res, i)
		}
	}
	return res
}

// Options configures a Checker the same way the CLI configures a load.
type Options struct {
	IgnoreMissing bool
	Interpolation string
	Runner        script.Runner
	Logger        *slog.Logger
}

// Checker validates sources.
type Checker struct {
	opts Options
}

// NewChecker returns a Checker. A nil Runner selects the default script
// runner, a nil Logger discards and an empty Interpolation means basic.
func NewChecker(opts Options) *Checker {
	if opts.Interpolation == "" {
		opts.Interpolation = string(configuror.BasicInterpolation)
	}
	if opts.Runner == nil {
		opts.Runner = script.NewExecRunner()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Checker{opts: opts}
}

// Check validates mapping groups and then flat files, in load order.
func (c *Checker) Check(ctx context.Context, groups configuror.MappingFiles, files []string) *Report {
	r := &Report{}
	for _, g := range groups {
		format, err := configuror.ParseFormat(g.Tag)
		if err != nil {
			r.add(Issue{Severity: SeverityError, Format: g.Tag, Message: err.Error()})
			continue
		}
		for _, p := range g.Paths {
			c.checkFile(ctx, r, format, p)
		}
	}
	for _, p := range files {
		format, ok := configuror.FormatOfPath(p)
		if !ok {
			r.add(Issue{
				Severity: SeverityError,
				Path:     p,
				Message:  "unsupported extension, supported extensions are: " + strings.Join(configuror.Extensions(), ", "),
			})
			continue
		}
		c.checkFile(ctx, r, format, p)
	}
	return r
}

func (c *Checker) checkFile(ctx context.Context, r *Report, format configuror.Format, path string) {
	issue := Issue{Path: path, Format: string(format)}

	existing, err := configuror.FilterPaths([]string{path}, true)
	if err == nil && len(existing) == 0 {
		if c.opts.IgnoreMissing {
			issue.Severity = SeverityWarning
			issue.Message = "not found, skipped"
		} else {
			issue.Severity = SeverityError
			issue.Message = "not found on the filesystem"
		}
		r.add(issue)
		return
	}

	cfg, err := configuror.New(
		configuror.WithContext(ctx),
		configuror.WithEnvironment(configuror.NewMapEnvironment(nil)),
		configuror.WithScriptRunner(c.opts.Runner),
		configuror.WithLogger(c.opts.Logger),
		configuror.WithInterpolation(c.opts.Interpolation),
		configuror.WithMappingFiles(configuror.MappingFiles{{Tag: string(format), Paths: []string{path}}}),
	)
	if err != nil {
		issue.Severity = SeverityError
		issue.Message = err.Error()
		r.add(issue)
		return
	}

	issue.Severity = SeverityInfo
	issue.Keys = cfg.Len()
	issue.Message = fmt.Sprintf("%d keys", cfg.Len())
	if cfg.Len() == 1 {
		issue.Message = "1 key"
	}
	c.opts.Logger.Debug("source checked", "path", path, "format", format, "entries", cfg.Len())
	r.add(issue)
}
