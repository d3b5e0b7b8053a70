package probe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolkitStylesFromToolkitSettings(t *testing.T) {
	env := testEnv(t)
	writeSettingsINI(t, env, "[Settings]\ngtk-font-name=Sans 10\n")

	out, err := runProbe(t, toolkitStylesProbe{}, env, Options{})
	require.NoError(t, err)
	assert.Equal(t, "GTK widget styles:\n"+
		line("GtkLabel", `"Sans 10"`)+
		line("GtkMenuItem", `"Sans 10"`)+
		line("GtkToolbar", `"Sans 10"`)+
		"\n", out)
}

func TestToolkitStylesFallsBackToPreferences(t *testing.T) {
	stubCommands(t, func(name string, args ...string) ([]byte, error) {
		if name == "gsettings" && args[2] == "font-name" {
			return []byte("'Cantarell 11'\n"), nil
		}
		return nil, errors.New("no such key")
	})

	out, err := runProbe(t, toolkitStylesProbe{}, testEnv(t), Options{})
	require.NoError(t, err)
	assert.Contains(t, out, line("GtkLabel", `"Cantarell 11"`))
}

func TestToolkitStylesUnresolved(t *testing.T) {
	stubCommands(t, func(name string, args ...string) ([]byte, error) {
		return nil, errors.New("unavailable")
	})

	out, err := runProbe(t, toolkitStylesProbe{}, testEnv(t), Options{})
	require.NoError(t, err)
	assert.Equal(t, "GTK widget styles:\n"+
		line("GtkLabel", "[unset]")+
		line("GtkMenuItem", "[unset]")+
		line("GtkToolbar", "[unset]")+
		"\n", out)
}
