// Package report implements the uniform output layout shared by all
// probes: labeled sections, a fixed-width left-justified name column,
// and the placeholder tokens used when a value cannot be read.
package report

import (
	"fmt"
	"io"
)

// LabelWidth is the width of the left-justified name column.
const LabelWidth = 20

// Placeholder tokens rendered in place of a value. Every probe emits
// exactly one line per configured name even when the lookup fails.
const (
	Unset       = "[unset]"
	Failed      = "[failed]"
	UnknownType = "[unknown type]"
	None        = "[none]"
)

// Writer emits report sections to an underlying io.Writer.
type Writer struct {
	out io.Writer
}

// NewWriter returns a Writer emitting to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Section starts a new labeled section.
func (w *Writer) Section(name string) {
	fmt.Fprintf(w.out, "%s:\n", name)
}

// Line prints one name/value row. The value is built from format and
// args and follows the fixed-width name column.
func (w *Writer) Line(name, format string, args ...any) {
	fmt.Fprintf(w.out, "%-*s ", LabelWidth, name)
	fmt.Fprintf(w.out, format, args...)
	fmt.Fprint(w.out, "\n")
}

// Raw prints a line outside the name/value layout, such as a section
// level failure marker or a remediation hint.
func (w *Writer) Raw(format string, args ...any) {
	fmt.Fprintf(w.out, format, args...)
	fmt.Fprint(w.out, "\n")
}

// End terminates the current section with a blank line.
func (w *Writer) End() {
	fmt.Fprint(w.out, "\n")
}

// TriState renders a toolkit tri-state integer: negative values mean
// the toolkit default, zero means off, positive means on.
func TriState(v int) string {
	switch {
	case v == 0:
		return "no"
	case v > 0:
		return "yes"
	default:
		return "default"
	}
}

// ScaledDPI renders a toolkit DPI setting, which stores the real DPI
// multiplied by 1024. Non-positive values mean the toolkit default.
func ScaledDPI(v int) string {
	if v > 0 {
		return fmt.Sprintf("%d (%0.2f DPI)", v, float64(v)/1024.0)
	}
	return fmt.Sprintf("%d (default)", v)
}
