package probe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceDatabase(t *testing.T) {
	env := testEnv(t)
	env.X = &fakeServer{
		resource:   "Xft.dpi:\t96\nXft.rgba:\trgb\n*antialias:\t1\n",
		resourceOK: true,
	}

	out, err := runProbe(t, resourceDatabaseProbe{}, env, Options{})
	require.NoError(t, err)
	assert.Equal(t, "X resources (xrdb):\n"+
		line("Xft.antialias", `"1"`)+
		line("Xft.hinting", "[unset]")+
		line("Xft.hintstyle", "[unset]")+
		line("Xft.rgba", `"rgb"`)+
		line("Xft.dpi", `"96"`)+
		"\n", out)
}

func TestResourceDatabaseCustomKeys(t *testing.T) {
	env := testEnv(t)
	env.X = &fakeServer{resource: "Xcursor.size: 24\n", resourceOK: true}
	env.ResourceKeys = []string{"Xcursor.size"}

	out, err := runProbe(t, resourceDatabaseProbe{}, env, Options{})
	require.NoError(t, err)
	assert.Equal(t, "X resources (xrdb):\n"+
		line("Xcursor.size", `"24"`)+
		"\n", out)
}

func TestResourceDatabasePropertyAbsent(t *testing.T) {
	env := testEnv(t)
	env.X = &fakeServer{resourceOK: false}

	out, err := runProbe(t, resourceDatabaseProbe{}, env, Options{})
	require.NoError(t, err)
	assert.Equal(t, "X resources (xrdb):\n[failed]\n\n", out)
}

func TestResourceDatabaseReadError(t *testing.T) {
	env := testEnv(t)
	env.X = &fakeServer{resourceErr: errors.New("connection broken")}

	// A read error degrades like an absent property.
	out, err := runProbe(t, resourceDatabaseProbe{}, env, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "[failed]\n")
}

func TestResourceDatabaseNoDisplay(t *testing.T) {
	_, err := runProbe(t, resourceDatabaseProbe{}, testEnv(t), Options{})
	require.Error(t, err)
}
