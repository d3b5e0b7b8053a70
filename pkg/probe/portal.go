package probe

import (
	"context"

	"github.com/kovidgoyal/dbus"

	"github.com/fontdiag/fontdiag/pkg/report"
)

const (
	portalBusName           = "org.freedesktop.portal.Desktop"
	portalObjectPath        = "/org/freedesktop/portal/desktop"
	portalSettingsInterface = "org.freedesktop.portal.Settings"
)

// portalKey addresses one namespaced portal setting.
type portalKey struct {
	namespace string
	key       string
}

var portalKeys = []portalKey{
	{"org.gnome.desktop.interface", "font-name"},
	{"org.gnome.desktop.interface", "text-scaling-factor"},
	{"org.freedesktop.appearance", "color-scheme"},
}

// Replaceable for testing.
var portalReadFunc = portalRead

// portalRead fetches the given keys over the session bus. ReadOne is
// tried first; older portals only implement Read, which wraps the
// result in an extra variant layer.
func portalRead(ctx context.Context, keys []portalKey) (map[portalKey]report.Value, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, err
	}
	// The session bus connection is shared; it is not closed here.
	obj := conn.Object(portalBusName, dbus.ObjectPath(portalObjectPath))

	out := make(map[portalKey]report.Value, len(keys))
	for _, k := range keys {
		var v dbus.Variant
		err := obj.CallWithContext(ctx, portalSettingsInterface+".ReadOne", 0, k.namespace, k.key).Store(&v)
		if err != nil {
			if err2 := obj.CallWithContext(ctx, portalSettingsInterface+".Read", 0, k.namespace, k.key).Store(&v); err2 != nil {
				out[k] = report.MissingValue()
				continue
			}
			if inner, ok := v.Value().(dbus.Variant); ok {
				v = inner
			}
		}
		out[k] = variantValue(v.Value())
	}
	return out, nil
}

func variantValue(x any) report.Value {
	switch v := x.(type) {
	case string:
		return report.StringValue(v)
	case float64:
		return report.FloatValue(v)
	case bool:
		return report.BoolValue(v)
	case int16:
		return report.IntValue(int64(v))
	case uint16:
		return report.IntValue(int64(v))
	case int32:
		return report.IntValue(int64(v))
	case uint32:
		return report.IntValue(int64(v))
	case int64:
		return report.IntValue(v)
	case uint64:
		return report.IntValue(int64(v))
	default:
		return report.MissingValue()
	}
}

// desktopPortalProbe reports font settings as seen through the XDG
// desktop portal, the source sandboxed applications read.
type desktopPortalProbe struct{}

func (desktopPortalProbe) Name() string { return "desktop-portal" }

func (desktopPortalProbe) Description() string {
	return "XDG desktop portal settings"
}

func (desktopPortalProbe) Run(ctx context.Context, env *Env, opts Options, w *report.Writer) error {
	w.Section("XDG desktop portal")

	cctx, cancel := commandContext(ctx, env)
	defer cancel()
	values, err := portalReadFunc(cctx, portalKeys)
	if err != nil {
		env.logger().Debug("portal read failed", "error", err)
		w.Raw("Desktop portal not reachable; is xdg-desktop-portal running?")
		for _, k := range portalKeys {
			w.Line(k.key, "%s", report.Unset)
		}
		w.End()
		return nil
	}

	for _, k := range portalKeys {
		v, ok := values[k]
		if !ok {
			v = report.MissingValue()
		}
		switch v.Kind() {
		case report.KindMissing:
			w.Line(k.key, "%s", report.Unset)
		case report.KindString:
			w.Line(k.key, "%q", v.String())
		case report.KindFloat:
			w.Line(k.key, "%0.2f", v.Float())
		case report.KindInt:
			w.Line(k.key, "%d", v.Int())
		case report.KindBool:
			w.Line(k.key, "%t", v.Bool())
		}
	}
	w.End()
	return nil
}
