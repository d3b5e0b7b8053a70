package pango

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimple(t *testing.T) {
	d, err := ParseDescription("Sans 10")
	require.NoError(t, err)
	assert.Equal(t, "Sans", d.Family)
	assert.Equal(t, WeightNormal, d.Weight)
	assert.Equal(t, SlantNormal, d.Slant)
	assert.Equal(t, 10.0, d.Size)
	assert.False(t, d.SizeIsAbsolute)
	assert.True(t, d.SizeSet)
}

func TestParseStyleKeywords(t *testing.T) {
	d, err := ParseDescription("DejaVu Sans Bold Italic 12")
	require.NoError(t, err)
	assert.Equal(t, "DejaVu Sans", d.Family)
	assert.Equal(t, WeightBold, d.Weight)
	assert.Equal(t, SlantItalic, d.Slant)
	assert.Equal(t, 12.0, d.Size)
}

func TestParseKeywordsAnyOrder(t *testing.T) {
	// Weight and slant keywords may come in either order.
	d, err := ParseDescription("Sans Italic Semi-Bold 9")
	require.NoError(t, err)
	assert.Equal(t, "Sans", d.Family)
	assert.Equal(t, WeightSemiBold, d.Weight)
	assert.Equal(t, SlantItalic, d.Slant)
}

func TestParsePixelSize(t *testing.T) {
	d, err := ParseDescription("Monospace 14px")
	require.NoError(t, err)
	assert.Equal(t, "Monospace", d.Family)
	assert.Equal(t, 14.0, d.Size)
	assert.True(t, d.SizeIsAbsolute)
	assert.True(t, d.SizeSet)
}

func TestParseFractionalSize(t *testing.T) {
	d, err := ParseDescription("Sans 10.5")
	require.NoError(t, err)
	assert.Equal(t, 10.5, d.Size)
	assert.False(t, d.SizeIsAbsolute)
}

func TestParseNoSize(t *testing.T) {
	d, err := ParseDescription("DejaVu Sans Mono")
	require.NoError(t, err)
	assert.Equal(t, "DejaVu Sans Mono", d.Family)
	assert.False(t, d.SizeSet)
	assert.Equal(t, 0.0, d.Size)
}

func TestParseFamilyListComma(t *testing.T) {
	d, err := ParseDescription("Sans, 10")
	require.NoError(t, err)
	assert.Equal(t, "Sans", d.Family)
	assert.True(t, d.SizeSet)
}

func TestParseFamilyWordThatLooksLikeStyle(t *testing.T) {
	// "Bold" inside the family is only stripped from the end.
	d, err := ParseDescription("Bold Venture 10")
	require.NoError(t, err)
	assert.Equal(t, "Bold Venture", d.Family)
	assert.Equal(t, WeightNormal, d.Weight)
}

func TestParseErrors(t *testing.T) {
	_, err := ParseDescription("")
	assert.Error(t, err)

	_, err = ParseDescription("   ")
	assert.Error(t, err)

	_, err = ParseDescription("Sans -10")
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sans 10", "Sans 10"},
		{"DejaVu Sans bold italic 12", "DejaVu Sans Bold Italic 12"},
		{"Monospace 14px", "Monospace 14px"},
		{"Sans 10.5", "Sans 10.5"},
		{"DejaVu Sans Mono", "DejaVu Sans Mono"},
	}
	for _, tt := range tests {
		d, err := ParseDescription(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, d.String(), tt.in)
	}
}
