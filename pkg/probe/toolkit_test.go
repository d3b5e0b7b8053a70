package probe

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// xsBuilder assembles a little-endian _XSETTINGS_SETTINGS property for
// toolkit tests.
type xsBuilder struct {
	body []byte
	n    uint32
}

func (b *xsBuilder) pad() {
	for len(b.body)%4 != 0 {
		b.body = append(b.body, 0)
	}
}

func (b *xsBuilder) header(name string, typ byte) {
	b.body = append(b.body, typ, 0)
	b.body = binary.LittleEndian.AppendUint16(b.body, uint16(len(name)))
	b.body = append(b.body, name...)
	b.pad()
	b.body = binary.LittleEndian.AppendUint32(b.body, 0)
	b.n++
}

func (b *xsBuilder) addInt(name string, v int32) *xsBuilder {
	b.header(name, 0)
	b.body = binary.LittleEndian.AppendUint32(b.body, uint32(v))
	return b
}

func (b *xsBuilder) addString(name, v string) *xsBuilder {
	b.header(name, 1)
	b.body = binary.LittleEndian.AppendUint32(b.body, uint32(len(v)))
	b.body = append(b.body, v...)
	b.pad()
	return b
}

func (b *xsBuilder) bytes() []byte {
	out := []byte{0, 0, 0, 0}
	out = binary.LittleEndian.AppendUint32(out, 1)
	out = binary.LittleEndian.AppendUint32(out, b.n)
	return append(out, b.body...)
}

func writeSettingsINI(t *testing.T, env *Env, content string) {
	t.Helper()
	dir := filepath.Join(env.configDir(), "gtk-3.0")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.ini"), []byte(content), 0o644))
}

func TestToolkitSettingsFromXSettings(t *testing.T) {
	var b xsBuilder
	b.addString("Gtk/FontName", "Sans 10").
		addInt("Xft/Antialias", 1).
		addInt("Xft/Hinting", 0).
		addString("Xft/HintStyle", "hintslight").
		addString("Xft/RGBA", "rgb").
		addInt("Xft/DPI", 98304)

	env := testEnv(t)
	env.X = &fakeServer{xsData: b.bytes(), xsOK: true}

	out, err := runProbe(t, toolkitSettingsProbe{}, env, Options{})
	require.NoError(t, err)
	assert.Equal(t, "GtkSettings:\n"+
		line("gtk-font-name", `"Sans 10"`)+
		line("gtk-xft-antialias", "1 (yes)")+
		line("gtk-xft-hinting", "0 (no)")+
		line("gtk-xft-hintstyle", `"hintslight"`)+
		line("gtk-xft-rgba", `"rgb"`)+
		line("gtk-xft-dpi", "98304 (96.00 DPI)")+
		"\n", out)
}

func TestToolkitSettingsFromKeyFile(t *testing.T) {
	env := testEnv(t)
	writeSettingsINI(t, env, `
# theme tweaks
[Settings]
gtk-font-name=DejaVu Sans 11
gtk-xft-hinting=1
gtk-xft-dpi=122880
`)

	out, err := runProbe(t, toolkitSettingsProbe{}, env, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, line("gtk-font-name", `"DejaVu Sans 11"`))
	assert.Contains(t, out, line("gtk-xft-antialias", "-1 (default)"))
	assert.Contains(t, out, line("gtk-xft-hinting", "1 (yes)"))
	assert.Contains(t, out, line("gtk-xft-hintstyle", "[unset]"))
	assert.Contains(t, out, line("gtk-xft-dpi", "122880 (120.00 DPI)"))
}

func TestToolkitSettingsXSettingsWinsOverKeyFile(t *testing.T) {
	var b xsBuilder
	b.addString("Gtk/FontName", "Sans 10")

	env := testEnv(t)
	env.X = &fakeServer{xsData: b.bytes(), xsOK: true}
	writeSettingsINI(t, env, "[Settings]\ngtk-font-name=Serif 12\n")

	out, err := runProbe(t, toolkitSettingsProbe{}, env, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, line("gtk-font-name", `"Sans 10"`))
}

func TestToolkitSettingsAllAbsent(t *testing.T) {
	out, err := runProbe(t, toolkitSettingsProbe{}, testEnv(t), Options{})
	require.NoError(t, err)
	assert.Equal(t, "GtkSettings:\n"+
		line("gtk-font-name", "[unset]")+
		line("gtk-xft-antialias", "-1 (default)")+
		line("gtk-xft-hinting", "-1 (default)")+
		line("gtk-xft-hintstyle", "[unset]")+
		line("gtk-xft-rgba", "[unset]")+
		line("gtk-xft-dpi", "-1 (default)")+
		"\n", out)
}

func TestToolkitSettingsBadPropertyBytes(t *testing.T) {
	env := testEnv(t)
	env.X = &fakeServer{xsData: []byte{9, 0, 0}, xsOK: true}

	// A corrupt property degrades to defaults instead of failing.
	out, err := runProbe(t, toolkitSettingsProbe{}, env, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, line("gtk-font-name", "[unset]"))
}

func TestParseKeyFile(t *testing.T) {
	m := parseKeyFile(`
; comment
[Other]
gtk-font-name=Wrong
[Settings]
gtk-font-name = Sans 10
gtk-xft-dpi=98304
not a pair
`, "Settings")
	assert.Equal(t, map[string]string{
		"gtk-font-name": "Sans 10",
		"gtk-xft-dpi":   "98304",
	}, m)
}
