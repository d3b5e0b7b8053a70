package probe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsDaemon(t *testing.T) {
	stubCommands(t, func(name string, args ...string) ([]byte, error) {
		require.Equal(t, "dump_xsettings", name)
		require.Empty(t, args)
		return []byte(`Gtk/FontName "Sans 10"
Net/ThemeName "Adwaita"
Xft/Antialias 1
Xft/DPI 98304
Gdk/WindowScalingFactor 1
`), nil
	})

	out, err := runProbe(t, settingsDaemonProbe{}, testEnv(t), Options{})
	require.NoError(t, err)
	assert.Equal(t, "XSETTINGS:\n"+
		line("Gtk/FontName", `"Sans 10"`)+
		line("Xft/Antialias", "1")+
		line("Xft/DPI", "98304")+
		"\n", out)
}

func TestSettingsDaemonHelperOverride(t *testing.T) {
	env := testEnv(t)
	env.HelperCommand = "my_dump"
	stubCommands(t, func(name string, args ...string) ([]byte, error) {
		require.Equal(t, "my_dump", name)
		return []byte("Xft/Hinting 1\n"), nil
	})

	out, err := runProbe(t, settingsDaemonProbe{}, env, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, line("Xft/Hinting", "1"))
}

func TestSettingsDaemonHelperMissing(t *testing.T) {
	stubCommands(t, func(name string, args ...string) ([]byte, error) {
		return nil, errors.New("executable file not found in $PATH")
	})

	// A missing helper prints an installation hint; the run goes on.
	out, err := runProbe(t, settingsDaemonProbe{}, testEnv(t), Options{})
	require.NoError(t, err)
	assert.Equal(t, "XSETTINGS:\n"+
		"Install dump_xsettings from https://github.com/derat/xsettingsd\n"+
		"to print this information.\n"+
		"\n", out)
}
