package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether w is a terminal. It recognizes *os.File and any
// writer with an Fd method.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI colours should be written to w.
//
// NO_COLOR (https://no-color.org) always disables colour. Otherwise
// CLICOLOR_FORCE set to anything but "0" enables it, which helps when
// piping through a pager. Without either, colour needs a terminal whose
// TERM is not "dumb".
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if v, ok := os.LookupEnv("CLICOLOR_FORCE"); ok && v != "0" {
		return true
	}
	return isTTY && os.Getenv("TERM") != "dumb"
}
