package probe

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fontdiag/fontdiag/pkg/report"
	"github.com/fontdiag/fontdiag/pkg/xsettings"
)

// The toolkit reads its global settings from the XSETTINGS store on
// X11, falling back to the settings.ini keyfile. The snapshot wraps
// both sources behind the gtk-* setting names.
type toolkitSnapshot struct {
	store *xsettings.Store
	ini   map[string]string
}

// openToolkitSnapshot reads both toolkit settings sources. Either may
// be absent; lookups then report defaults. Close releases the
// snapshot at the end of the probe that acquired it.
func openToolkitSnapshot(env *Env) *toolkitSnapshot {
	snap := &toolkitSnapshot{}
	if env.X != nil {
		data, ok, err := env.X.XSettingsData()
		if err != nil {
			env.logger().Warn("reading XSETTINGS property", "error", err)
		} else if ok {
			store, err := xsettings.Decode(data)
			if err != nil {
				env.logger().Warn("decoding XSETTINGS property", "error", err)
			} else {
				snap.store = store
			}
		}
	}
	path := filepath.Join(env.configDir(), "gtk-3.0", "settings.ini")
	if data, err := os.ReadFile(path); err == nil {
		snap.ini = parseKeyFile(string(data), "Settings")
	}
	return snap
}

func (s *toolkitSnapshot) Close() {
	s.store = nil
	s.ini = nil
}

func (s *toolkitSnapshot) stringSetting(xsName, iniKey string) (string, bool) {
	if s.store != nil {
		if v, ok := s.store.String(xsName); ok {
			return v, true
		}
	}
	if v, ok := s.ini[iniKey]; ok {
		return strings.Trim(v, `"`), true
	}
	return "", false
}

func (s *toolkitSnapshot) intSetting(xsName, iniKey string) (int, bool) {
	if s.store != nil {
		if v, ok := s.store.Int(xsName); ok {
			return int(v), true
		}
	}
	if v, ok := s.ini[iniKey]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// parseKeyFile parses the GLib keyfile subset used by settings.ini:
// one [section] of key=value lines, '#' and ';' comments.
func parseKeyFile(data, section string) map[string]string {
	out := make(map[string]string)
	current := ""
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			current = line[1 : len(line)-1]
			continue
		}
		if current != section {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}

// toolkitSettingsProbe reports the toolkit's global font settings.
type toolkitSettingsProbe struct{}

func (toolkitSettingsProbe) Name() string { return "toolkit-settings" }

func (toolkitSettingsProbe) Description() string {
	return "Toolkit global settings (gtk-font-name, gtk-xft-*)"
}

func (toolkitSettingsProbe) Run(ctx context.Context, env *Env, opts Options, w *report.Writer) error {
	snap := openToolkitSnapshot(env)
	defer snap.Close()

	w.Section("GtkSettings")

	printToolkitString(w, snap, "gtk-font-name", "Gtk/FontName")
	printToolkitTriState(w, snap, "gtk-xft-antialias", "Xft/Antialias")
	printToolkitTriState(w, snap, "gtk-xft-hinting", "Xft/Hinting")
	printToolkitString(w, snap, "gtk-xft-hintstyle", "Xft/HintStyle")
	printToolkitString(w, snap, "gtk-xft-rgba", "Xft/RGBA")

	// The DPI setting stores the real DPI times 1024.
	dpi, ok := snap.intSetting("Xft/DPI", "gtk-xft-dpi")
	if !ok {
		dpi = -1
	}
	w.Line("gtk-xft-dpi", "%s", report.ScaledDPI(dpi))

	w.End()
	return nil
}

func printToolkitString(w *report.Writer, snap *toolkitSnapshot, name, xsName string) {
	if v, ok := snap.stringSetting(xsName, name); ok {
		w.Line(name, "%q", v)
	} else {
		w.Line(name, "%s", report.Unset)
	}
}

func printToolkitTriState(w *report.Writer, snap *toolkitSnapshot, name, xsName string) {
	v, ok := snap.intSetting(xsName, name)
	if !ok {
		v = -1
	}
	w.Line(name, "%d (%s)", v, report.TriState(v))
}
