// Package pango parses and formats font description strings in the
// toolkit's "Family Style SIZE[px]" grammar, covering the subset the
// diagnostic needs: family list, weight and slant keywords, and a
// trailing size in points or (with a px suffix) pixels.
package pango

import (
	"fmt"
	"strconv"
	"strings"
)

// Weight is a font weight on the 100-1000 scale.
type Weight int

const (
	WeightThin       Weight = 100
	WeightUltraLight Weight = 200
	WeightLight      Weight = 300
	WeightSemiLight  Weight = 350
	WeightBook       Weight = 380
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightUltraBold  Weight = 800
	WeightHeavy      Weight = 900
)

// Slant is the font slant style.
type Slant int

const (
	SlantNormal Slant = iota
	SlantOblique
	SlantItalic
)

// Description is a structured font description. Size is in points, or
// in pixels when SizeIsAbsolute is set; the two taggings are mutually
// exclusive. SizeSet distinguishes "no size given" from size zero.
type Description struct {
	Family         string
	Weight         Weight
	Slant          Slant
	Size           float64
	SizeIsAbsolute bool
	SizeSet        bool
}

var weightKeywords = map[string]Weight{
	"thin":        WeightThin,
	"ultra-light": WeightUltraLight,
	"ultralight":  WeightUltraLight,
	"extra-light": WeightUltraLight,
	"light":       WeightLight,
	"semi-light":  WeightSemiLight,
	"book":        WeightBook,
	"regular":     WeightNormal,
	"normal":      WeightNormal,
	"medium":      WeightMedium,
	"semi-bold":   WeightSemiBold,
	"semibold":    WeightSemiBold,
	"demi-bold":   WeightSemiBold,
	"bold":        WeightBold,
	"ultra-bold":  WeightUltraBold,
	"ultrabold":   WeightUltraBold,
	"extra-bold":  WeightUltraBold,
	"heavy":       WeightHeavy,
	"black":       WeightHeavy,
}

var slantKeywords = map[string]Slant{
	"italic":  SlantItalic,
	"oblique": SlantOblique,
}

// ParseDescription parses a font description string such as
// "Sans 10", "DejaVu Sans Bold Italic 12", or "Sans 10px".
func ParseDescription(s string) (*Description, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("pango: empty font description")
	}

	d := &Description{Weight: WeightNormal, Slant: SlantNormal}

	// Trailing size, with an optional px suffix marking an absolute
	// (pixel) size.
	last := fields[len(fields)-1]
	sizeStr := last
	absolute := false
	if rest, ok := strings.CutSuffix(last, "px"); ok {
		sizeStr = rest
		absolute = true
	}
	if size, err := strconv.ParseFloat(sizeStr, 64); err == nil && sizeStr != "" {
		if size < 0 {
			return nil, fmt.Errorf("pango: negative size in %q", s)
		}
		d.Size = size
		d.SizeIsAbsolute = absolute
		d.SizeSet = true
		fields = fields[:len(fields)-1]
	}

	// Style keywords are consumed from the end; everything before
	// them is the family list.
	for len(fields) > 0 {
		word := strings.ToLower(fields[len(fields)-1])
		if w, ok := weightKeywords[word]; ok {
			d.Weight = w
			fields = fields[:len(fields)-1]
			continue
		}
		if sl, ok := slantKeywords[word]; ok {
			d.Slant = sl
			fields = fields[:len(fields)-1]
			continue
		}
		break
	}

	d.Family = strings.TrimSuffix(strings.Join(fields, " "), ",")
	return d, nil
}

// String formats the description back into the same grammar.
func (d *Description) String() string {
	var b strings.Builder
	b.WriteString(d.Family)
	if w := weightName(d.Weight); w != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
	}
	switch d.Slant {
	case SlantItalic:
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("Italic")
	case SlantOblique:
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("Oblique")
	}
	if d.SizeSet {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(d.Size, 'f', -1, 64))
		if d.SizeIsAbsolute {
			b.WriteString("px")
		}
	}
	return b.String()
}

func weightName(w Weight) string {
	switch w {
	case WeightThin:
		return "Thin"
	case WeightUltraLight:
		return "Ultra-Light"
	case WeightLight:
		return "Light"
	case WeightSemiLight:
		return "Semi-Light"
	case WeightBook:
		return "Book"
	case WeightMedium:
		return "Medium"
	case WeightSemiBold:
		return "Semi-Bold"
	case WeightBold:
		return "Bold"
	case WeightUltraBold:
		return "Ultra-Bold"
	case WeightHeavy:
		return "Heavy"
	default:
		return ""
	}
}
