package main

import (
	"io"
	"os"

	"github.com/fatih/color"

	"lox/interpreter-go/pkg/driver"
)

// reporter writes diagnostics and runtime errors to stderr, colored according
// to the resolved mode.
type reporter struct {
	errOut io.Writer
	static *color.Color
	fatal  *color.Color
}

func newReporter(mode driver.ColorMode) *reporter {
	r := &reporter{
		errOut: os.Stderr,
		static: color.New(color.FgRed),
		fatal:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{r.static, r.fatal} {
		switch mode {
		case driver.ColorAlways:
			c.EnableColor()
		case driver.ColorNever:
			c.DisableColor()
		}
	}
	return r
}

func (r *reporter) diagnostics(diags []driver.Diagnostic) {
	for _, diag := range diags {
		r.static.Fprintln(r.errOut, driver.Describe(diag))
	}
}

func (r *reporter) runtimeError(err error) {
	r.fatal.Fprintln(r.errOut, err.Error())
}

func (r *reporter) failure(err error) {
	r.fatal.Fprintln(r.errOut, "error: "+err.Error())
}
