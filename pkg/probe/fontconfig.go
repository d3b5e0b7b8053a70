package probe

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fontdiag/fontdiag/pkg/pango"
	"github.com/fontdiag/fontdiag/pkg/report"
)

// MatchResult is the per-field outcome of a font match, mirroring the
// matching library's result vocabulary. Through the fc-match CLI only
// ResultMatch, ResultNoMatch (empty expansion) and ResultTypeMismatch
// (unparseable expansion) can occur; the remaining members keep the
// report vocabulary aligned with the library's.
type MatchResult int

const (
	ResultMatch MatchResult = iota
	ResultNoMatch
	ResultTypeMismatch
	ResultNoID
	ResultOutOfMemory
)

func (r MatchResult) String() string {
	switch r {
	case ResultMatch:
		return "match"
	case ResultNoMatch:
		return "no match"
	case ResultTypeMismatch:
		return "type mismatch"
	case ResultNoID:
		return "no id"
	case ResultOutOfMemory:
		return "out of memory"
	default:
		return "unknown"
	}
}

// hintStyleName maps the hint-style enumeration to its symbolic name.
func hintStyleName(v int) string {
	switch v {
	case 0:
		return "none"
	case 1:
		return "slight"
	case 2:
		return "medium"
	case 3:
		return "full"
	default:
		return "invalid"
	}
}

// subpixelOrderName maps the subpixel-order (rgba) enumeration to its
// symbolic name.
func subpixelOrderName(v int) string {
	switch v {
	case 0:
		return "unknown"
	case 1:
		return "rgb"
	case 2:
		return "bgr"
	case 3:
		return "vrgb"
	case 4:
		return "vbgr"
	case 5:
		return "none"
	default:
		return "invalid"
	}
}

// matchProps are the resolved attributes printed for a match, in
// declared order.
var matchProps = []string{
	"family", "pixelsize", "size", "antialias", "hinting", "autohint", "hintstyle", "rgba",
}

// fieldSep separates property expansions in the fc-match format
// string; an empty expansion marks an absent property.
const fieldSep = "\x1f"

// fontMatch holds the raw per-property expansions of one match.
type fontMatch struct {
	fields map[string]string
}

func (m *fontMatch) str(prop string) (string, MatchResult) {
	v := m.fields[prop]
	if v == "" {
		return "", ResultNoMatch
	}
	return v, ResultMatch
}

func (m *fontMatch) float(prop string) (float64, MatchResult) {
	s, res := m.str(prop)
	if res != ResultMatch {
		return 0, res
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ResultTypeMismatch
	}
	return v, ResultMatch
}

func (m *fontMatch) int(prop string) (int, MatchResult) {
	s, res := m.str(prop)
	if res != ResultMatch {
		return 0, res
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return int(f), ResultMatch
		}
		return 0, ResultTypeMismatch
	}
	return v, ResultMatch
}

func (m *fontMatch) bool(prop string) (bool, MatchResult) {
	s, res := m.str(prop)
	if res != ResultMatch {
		return false, res
	}
	switch strings.ToLower(s) {
	case "true", "1":
		return true, ResultMatch
	case "false", "0":
		return false, ResultMatch
	default:
		return false, ResultTypeMismatch
	}
}

func (m *fontMatch) empty() bool {
	for _, v := range m.fields {
		if v != "" {
			return false
		}
	}
	return true
}

// requestedLine is one "requested ..." row printed before matching.
type requestedLine struct {
	label string
	value string
}

// buildQuery turns the description and style flags into an fc-match
// pattern plus the requested-value rows. An absolute size populates
// the pixel-size element and a relative size populates an integer
// point size; the two are mutually exclusive.
func buildQuery(desc *pango.Description, bold, italic bool) (string, []requestedLine) {
	var b strings.Builder
	b.WriteString(desc.Family)
	if desc.SizeSet && !desc.SizeIsAbsolute {
		fmt.Fprintf(&b, "-%d", int(desc.Size))
	}
	if bold {
		b.WriteString(":weight=bold")
	}
	if italic {
		b.WriteString(":slant=italic")
	}
	if desc.SizeSet && desc.SizeIsAbsolute {
		fmt.Fprintf(&b, ":pixelsize=%s", strconv.FormatFloat(desc.Size, 'f', -1, 64))
	}

	var reqs []requestedLine
	if bold {
		reqs = append(reqs, requestedLine{"requested weight", "bold"})
	}
	if italic {
		reqs = append(reqs, requestedLine{"requested slant", "italic"})
	}
	if desc.SizeSet {
		if desc.SizeIsAbsolute {
			reqs = append(reqs, requestedLine{"requested size", fmt.Sprintf("%.2f pixels", desc.Size)})
		} else {
			reqs = append(reqs, requestedLine{"requested size", fmt.Sprintf("%d points", int(desc.Size))})
		}
	}
	return b.String(), reqs
}

// matchFont resolves the pattern to the best installed font. fc-match
// applies the library's configuration and default substitutions
// before matching.
func matchFont(ctx context.Context, env *Env, pattern string) (*fontMatch, error) {
	format := "%{" + strings.Join(matchProps, "}"+fieldSep+"%{") + "}"
	cctx, cancel := commandContext(ctx, env)
	defer cancel()
	out, err := runCommandFunc(cctx, "fc-match", "--format="+format, pattern)
	if err != nil {
		return nil, fmt.Errorf("fc-match %q: %w", pattern, err)
	}
	fields := strings.Split(string(out), fieldSep)
	if len(fields) != len(matchProps) {
		return nil, fmt.Errorf("fc-match %q: unexpected output %q", pattern, string(out))
	}
	m := &fontMatch{fields: make(map[string]string, len(matchProps))}
	for i, prop := range matchProps {
		m.fields[prop] = strings.TrimSpace(fields[i])
	}
	if m.empty() {
		return nil, fmt.Errorf("no font matched pattern %q", pattern)
	}
	return m, nil
}

func printMatchString(w *report.Writer, m *fontMatch, prop string) {
	if v, res := m.str(prop); res == ResultMatch {
		w.Line(prop, "%s", v)
	} else {
		w.Line(prop, "[%s]", res)
	}
}

func printMatchFloat(w *report.Writer, m *fontMatch, prop, suffix string) {
	if v, res := m.float(prop); res == ResultMatch {
		w.Line(prop, "%.2f%s", v, suffix)
	} else {
		w.Line(prop, "[%s]", res)
	}
}

func printMatchBool(w *report.Writer, m *fontMatch, prop string) {
	v, res := m.bool(prop)
	if res != ResultMatch {
		w.Line(prop, "[%s]", res)
		return
	}
	n := 0
	if v {
		n = 1
	}
	w.Line(prop, "%d", n)
}

func printMatchInt(w *report.Writer, m *fontMatch, prop string, nameFunc func(int) string, suffix string) {
	v, res := m.int(prop)
	if res != ResultMatch {
		w.Line(prop, "[%s]", res)
		return
	}
	if nameFunc != nil {
		w.Line(prop, "%d%s (%s)", v, suffix, nameFunc(v))
	} else {
		w.Line(prop, "%d%s", v, suffix)
	}
}

// fontMatchProbe resolves a font query against the font-matching
// library and reports every resolved attribute.
type fontMatchProbe struct{}

func (fontMatchProbe) Name() string { return "fontconfig-match" }

func (fontMatchProbe) Description() string {
	return "Resolved fontconfig match for the requested description"
}

func (fontMatchProbe) Run(ctx context.Context, env *Env, opts Options, w *report.Writer) error {
	desc, err := queryDescription(ctx, env, opts)
	if err != nil {
		return err
	}

	w.Section(fmt.Sprintf("Fontconfig (%s)", desc.String()))

	pattern, requested := buildQuery(desc, opts.Bold, opts.Italic)
	for _, r := range requested {
		w.Line(r.label, "%s", r.value)
	}

	m, err := matchFont(ctx, env, pattern)
	if err != nil {
		// No resolvable match on a working desktop means fontconfig
		// itself is broken; fatal tier.
		return err
	}

	printMatchString(w, m, "family")
	printMatchFloat(w, m, "pixelsize", " pixels")
	printMatchInt(w, m, "size", nil, " points")
	printMatchBool(w, m, "antialias")
	printMatchBool(w, m, "hinting")
	printMatchBool(w, m, "autohint")
	printMatchInt(w, m, "hintstyle", hintStyleName, "")
	printMatchInt(w, m, "rgba", subpixelOrderName, "")
	w.End()
	return nil
}

// queryDescription builds the font description to match: the explicit
// -f description when given, otherwise the theme-resolved font of a
// scratch label widget, otherwise a plain default.
func queryDescription(ctx context.Context, env *Env, opts Options) (*pango.Description, error) {
	if opts.FontDesc != "" {
		desc, err := pango.ParseDescription(opts.FontDesc)
		if err != nil {
			return nil, fmt.Errorf("invalid font description %q: %w", opts.FontDesc, err)
		}
		return desc, nil
	}

	snap := openToolkitSnapshot(env)
	defer snap.Close()
	name, ok := resolveThemeFont(ctx, env, snap)
	if !ok {
		name = "Sans 10"
	}
	desc, err := pango.ParseDescription(name)
	if err != nil {
		return nil, fmt.Errorf("invalid theme font description %q: %w", name, err)
	}
	return desc, nil
}
