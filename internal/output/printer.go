// Package output renders CLI tables and messages.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer handles formatted output to the terminal
type Printer struct {
	out       io.Writer
	useColors bool
}

// NewPrinter writes to w with colors enabled unless NO_COLOR is set or the
// terminal is dumb.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: w, useColors: colorsEnabled()}
}

// NewPlainPrinter never emits color codes.
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{out: w}
}

func colorsEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// Header prints a section header
func (p *Printer) Header(title string) {
	if p.useColors {
		color.New(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title)
		color.New(color.FgWhite).Fprintf(p.out, "%s\n", repeatChar('─', len(title)))
		return
	}
	fmt.Fprintf(p.out, "\n%s\n%s\n", title, repeatChar('-', len(title)))
}

// Success prints a success message
func (p *Printer) Success(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.out, "⚠ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, "[WARN] "+format+"\n", args...)
}

// Kind renders a source kind label.
func (p *Printer) Kind(kind string) string {
	if !p.useColors {
		return kind
	}
	switch kind {
	case "feed":
		return color.CyanString(kind)
	case "scrape":
		return color.MagentaString(kind)
	default:
		return kind
	}
}

// Writer exposes the destination for tables.
func (p *Printer) Writer() io.Writer {
	return p.out
}

func repeatChar(char rune, count int) string {
	result := make([]rune, count)
	for i := range result {
		result[i] = char
	}
	return string(result)
}
