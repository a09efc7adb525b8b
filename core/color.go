package core

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/josephlewis42/seqsh/core/config"
	"github.com/mattn/go-isatty"
)

var (
	// ColorPrompt is applied to the prompt.
	ColorPrompt = []color.Attribute{color.FgGreen, color.Bold}

	// ColorError is applied to errors starting commands.
	ColorError = []color.Attribute{color.FgRed}
)

// ColorPrinter decides whether to colorize interpreter output.
type ColorPrinter struct {
	mode       string
	isTerminal bool
}

// NewColorPrinter creates a printer for the given mode (always|auto|never),
// auto colors only if out is a terminal.
func NewColorPrinter(mode string, out io.Writer) *ColorPrinter {
	isTerminal := false
	if fd, ok := out.(*os.File); ok {
		isTerminal = isatty.IsTerminal(fd.Fd()) || isatty.IsCygwinTerminal(fd.Fd())
	}

	return &ColorPrinter{mode: mode, isTerminal: isTerminal}
}

// ShouldColor reports whether output is colorized.
func (c *ColorPrinter) ShouldColor() bool {
	switch {
	case c.mode == config.ColorNever:
		return false
	case c.mode == config.ColorAlways:
		return true
	default:
		return c.isTerminal
	}
}

// Sprint wraps s in the given attributes if the output should be colored.
func (c *ColorPrinter) Sprint(s string, attrs ...color.Attribute) string {
	if !c.ShouldColor() || len(attrs) == 0 {
		return s
	}

	printer := color.New(attrs...)
	// Override the package wide NoColor detection, the mode was already
	// resolved above.
	printer.EnableColor()
	return printer.Sprint(s)
}
