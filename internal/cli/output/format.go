// Package output renders CLI command results as tables, JSON or YAML.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Format selects how command output is rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat maps a --output flag value to a Format. The empty string
// means table, and "yml" is accepted as an alias for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("invalid output format: %q (valid: table, json, yaml)", s)
}

func (f Format) String() string { return string(f) }

// ANSI SGR codes for status messages.
const (
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiReset  = "\033[0m"
)

// Printer writes human-facing status lines, optionally colorized.
type Printer struct {
	out    io.Writer
	format Format
	color  bool
}

// NewPrinter returns a Printer for the given writer and format. Color
// only applies to status lines, never to structured output.
func NewPrinter(out io.Writer, format Format, color bool) *Printer {
	return &Printer{out: out, format: format, color: color}
}

func (p *Printer) statusLine(code, msg string) {
	if p.color {
		_, _ = fmt.Fprintln(p.out, code+msg+ansiReset)
		return
	}
	_, _ = fmt.Fprintln(p.out, msg)
}

// Success prints a green status line.
func (p *Printer) Success(msg string) { p.statusLine(ansiGreen, msg) }

// Error prints a red status line.
func (p *Printer) Error(msg string) { p.statusLine(ansiRed, msg) }

// Warning prints a yellow status line.
func (p *Printer) Warning(msg string) { p.statusLine(ansiYellow, msg) }
