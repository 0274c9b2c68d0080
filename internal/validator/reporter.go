package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/configuror/internal/errors"
)

// Format specifies the output format for reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes reports.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes r to the output.
func (rp *Reporter) Report(r *Report) error {
	if r == nil {
		return nil
	}

	switch rp.format {
	case FormatJSON:
		return rp.reportJSON(r)
	default:
		return rp.reportText(r)
	}
}

func (rp *Reporter) reportJSON(r *Report) error {
	encoder := json.NewEncoder(rp.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(r), "encoding JSON report")
}

// reportText lists every source in order with a status mark, then a summary.
func (rp *Reporter) reportText(r *Report) error {
	if len(r.Issues) == 0 {
		fmt.Fprintln(rp.out, "No sources to check")
		return nil
	}

	for _, i := range r.Issues {
		rp.printIssue(i)
	}
	fmt.Fprintln(rp.out)

	errs, warns := r.Count(SeverityError), r.Count(SeverityWarning)
	if errs == 0 && warns == 0 {
		fmt.Fprintln(rp.out, color.GreenString("✓ All sources load"))
		return nil
	}

	var summary []string
	if errs > 0 {
		summary = append(summary, color.RedString("%d error(s)", errs))
	}
	if warns > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", warns))
	}
	fmt.Fprintf(rp.out, "Check found %s\n", strings.Join(summary, ", "))
	return nil
}

func (rp *Reporter) printIssue(i Issue) {
	var mark string
	switch i.Severity {
	case SeverityError:
		mark = color.RedString("✗")
	case SeverityWarning:
		mark = color.YellowString("!")
	default:
		mark = color.GreenString("✓")
	}

	// Format:  ✓ path [format] message
	var sb strings.Builder
	sb.WriteString("  ")
	sb.WriteString(mark)
	sb.WriteString(" ")
	if i.Path != "" {
		sb.WriteString(i.Path)
		sb.WriteString(" ")
	}
	if i.Format != "" {
		sb.WriteString(color.New(color.FgHiBlack).Sprintf("[%s] ", i.Format))
	}
	sb.WriteString(i.Message)

	fmt.Fprintln(rp.out, sb.String())
}
