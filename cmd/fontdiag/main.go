// fontdiag prints a report of every place font-rendering and DPI
// configuration can be set on an X11 desktop, to make inconsistencies
// between the sources visible.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fontdiag/fontdiag/pkg/probe"
)

const version = "1.0.0"

func main() {
	args := os.Args[1:]
	command := "report"
	// Bare flags run the report, matching the original tool's
	// getopt-only surface.
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "report":
		os.Exit(runReport(args))
	case "serve":
		os.Exit(runServe(args))
	case "watch":
		os.Exit(runWatch(args))
	case "version":
		fmt.Printf("fontdiag %s\n", version)
	case "help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}
}

// parseReportFlags parses the report options shared by the report
// command and the serve defaults.
func parseReportFlags(args []string) (probe.Options, error) {
	fs := flag.NewFlagSet("fontdiag", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	bold := fs.Bool("b", false, "request bold font from fontconfig")
	desc := fs.String("f", "", "font description for fontconfig")
	italic := fs.Bool("i", false, "request italic font from fontconfig")
	if err := fs.Parse(args); err != nil {
		return probe.Options{}, err
	}
	if fs.NArg() > 0 {
		return probe.Options{}, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	return probe.Options{Bold: *bold, Italic: *italic, FontDesc: *desc}, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: fontdiag [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  report     Print the font/DPI configuration report (default)")
	fmt.Fprintln(w, "  serve      Expose the report over MCP on stdio")
	fmt.Fprintln(w, "  watch      Re-print the report when font config files change")
	fmt.Fprintln(w, "  version    Print version")
	fmt.Fprintln(w, "  help       Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report options:")
	fmt.Fprintln(w, "  -b       Request bold font from fontconfig")
	fmt.Fprintln(w, "  -f DESC  Specify font description for fontconfig")
	fmt.Fprintln(w, "  -i       Request italic font from fontconfig")
}
