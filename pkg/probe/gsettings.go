package probe

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fontdiag/fontdiag/pkg/report"
)

// The desktop preference store queried through the gsettings CLI.
const preferenceSchema = "org.gnome.desktop.interface"

var preferenceKeys = []string{"font-name", "text-scaling-factor"}

// readPreference fetches one key from the preference schema and
// classifies the GVariant text output. A failed lookup is the Missing
// member.
func readPreference(ctx context.Context, env *Env, key string) report.Value {
	cctx, cancel := commandContext(ctx, env)
	defer cancel()
	out, err := runCommandFunc(cctx, "gsettings", "get", preferenceSchema, key)
	if err != nil {
		env.logger().Debug("gsettings get failed", "key", key, "error", err)
		return report.MissingValue()
	}
	return classifyVariant(strings.TrimSpace(string(out)))
}

// classifyVariant maps gsettings' GVariant text notation onto the
// Value sum. Unrecognized notations (arrays, tuples, typed literals)
// come back as an integer zero value; the renderer shows those as
// [unknown type] just as it does booleans and integers.
func classifyVariant(s string) report.Value {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return report.StringValue(s[1 : len(s)-1])
		}
	}
	switch s {
	case "true":
		return report.BoolValue(true)
	case "false":
		return report.BoolValue(false)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return report.IntValue(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return report.FloatValue(f)
	}
	return report.IntValue(0)
}

// desktopPreferencesProbe reports the desktop-wide font preferences.
type desktopPreferencesProbe struct{}

func (desktopPreferencesProbe) Name() string { return "desktop-preferences" }

func (desktopPreferencesProbe) Description() string {
	return "Desktop preference store (" + preferenceSchema + ")"
}

func (desktopPreferencesProbe) Run(ctx context.Context, env *Env, opts Options, w *report.Writer) error {
	// A desktop without the preference tooling cannot satisfy the
	// schema precondition; that is the fatal tier.
	if _, err := lookPathFunc("gsettings"); err != nil {
		return fmt.Errorf("gsettings not found (schema %s unavailable): %w", preferenceSchema, err)
	}

	w.Section(fmt.Sprintf("GSettings (%s)", preferenceSchema))
	for _, key := range preferenceKeys {
		v := readPreference(ctx, env, key)
		switch v.Kind() {
		case report.KindMissing:
			w.Line(key, "%s", report.Unset)
		case report.KindString:
			w.Line(key, "%q", v.String())
		case report.KindFloat:
			w.Line(key, "%0.2f", v.Float())
		default:
			w.Line(key, "%s", report.UnknownType)
		}
	}
	w.End()
	return nil
}
