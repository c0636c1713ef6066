package commands

import (
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	colorAlways = "always"
	colorAuto   = "auto"
	colorNever  = "never"
)

// ColorPrinter decides whether shell output is colorized. Diagnostics and
// the banner go to different streams, so each is checked on its own.
type ColorPrinter struct {
	mode        string
	outTerminal bool
	errTerminal bool

	errColor   *color.Color
	titleColor *color.Color
}

// NewColorPrinter creates a printer for banners written to stdout and
// diagnostics written to stderr. In auto mode a stream is only colored if
// it's a terminal.
func NewColorPrinter(mode string, stdout, stderr io.Writer) *ColorPrinter {
	return newColorPrinter(mode, isTerminal(stdout), isTerminal(stderr))
}

func newColorPrinter(mode string, outTerminal, errTerminal bool) *ColorPrinter {
	c := &ColorPrinter{
		mode:        mode,
		outTerminal: outTerminal,
		errTerminal: errTerminal,
		errColor:    color.New(color.FgRed, color.Bold),
		titleColor:  color.New(color.FgGreen, color.Bold),
	}

	setColor(c.errColor, c.shouldColor(errTerminal))
	setColor(c.titleColor, c.shouldColor(outTerminal))

	return c
}

func setColor(col *color.Color, enabled bool) {
	if enabled {
		col.EnableColor()
	} else {
		col.DisableColor()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && IsTerminal(f)
}

// IsTerminal reports whether the file is attached to a terminal.
func IsTerminal(f interface{ Fd() uintptr }) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *ColorPrinter) shouldColor(terminal bool) bool {
	switch {
	case c.mode == colorNever:
		return false
	case c.mode == colorAlways:
		return true
	default:
		return terminal
	}
}

// ShouldColorErrors reports whether diagnostics on stderr are colored.
func (c *ColorPrinter) ShouldColorErrors() bool {
	return c.shouldColor(c.errTerminal)
}

// ShouldColorOutput reports whether the banner on stdout is colored.
func (c *ColorPrinter) ShouldColorOutput() bool {
	return c.shouldColor(c.outTerminal)
}

// Error formats text used to flag diagnostics.
func (c *ColorPrinter) Error(s string) string {
	return c.errColor.Sprint(s)
}

// Title formats banner headings.
func (c *ColorPrinter) Title(s string) string {
	return c.titleColor.Sprint(s)
}
