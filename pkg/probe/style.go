package probe

import (
	"context"

	"github.com/fontdiag/fontdiag/pkg/report"
)

// The three representative widget kinds whose themed fonts the
// original toolkit would resolve.
var widgetKinds = []string{"GtkLabel", "GtkMenuItem", "GtkToolbar"}

// resolveThemeFont resolves the font description the active theme
// gives a plain widget: the toolkit settings store first, then the
// desktop preference store.
func resolveThemeFont(ctx context.Context, env *Env, snap *toolkitSnapshot) (string, bool) {
	if v, ok := snap.stringSetting("Gtk/FontName", "gtk-font-name"); ok {
		return v, true
	}
	v := readPreference(ctx, env, "font-name")
	if v.Kind() == report.KindString {
		return v.String(), true
	}
	return "", false
}

// toolkitStylesProbe reports the theme-resolved font for each widget
// kind.
type toolkitStylesProbe struct{}

func (toolkitStylesProbe) Name() string { return "toolkit-styles" }

func (toolkitStylesProbe) Description() string {
	return "Theme-resolved fonts for representative widget kinds"
}

func (toolkitStylesProbe) Run(ctx context.Context, env *Env, opts Options, w *report.Writer) error {
	snap := openToolkitSnapshot(env)
	defer snap.Close()

	w.Section("GTK widget styles")
	font, ok := resolveThemeFont(ctx, env, snap)
	for _, kind := range widgetKinds {
		if ok {
			w.Line(kind, "%q", font)
		} else {
			w.Line(kind, "%s", report.Unset)
		}
	}
	w.End()
	return nil
}
