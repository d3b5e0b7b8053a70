// Package x11 wraps the X wire protocol reads the diagnostic needs:
// default-screen geometry, the root window's RESOURCE_MANAGER
// property, and the XSETTINGS selection's settings property. It talks
// to the server directly over the protocol, so no Xlib is required.
package x11

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Geometry is the default screen's pixel and physical size.
type Geometry struct {
	WidthPx  int
	HeightPx int
	WidthMM  int
	HeightMM int
}

// DPI returns the horizontal and vertical dots-per-inch derived from
// the pixel and millimeter dimensions (25.4 mm per inch).
func (g Geometry) DPI() (x, y float64) {
	return float64(g.WidthPx) * 25.4 / float64(g.WidthMM),
		float64(g.HeightPx) * 25.4 / float64(g.HeightMM)
}

// Server is the probe-facing view of the display connection.
type Server interface {
	ScreenGeometry() Geometry
	ResourceManagerString() (string, bool, error)
	XSettingsData() ([]byte, bool, error)
}

// Conn is an open display connection.
type Conn struct {
	x         *xgb.Conn
	screen    *xproto.ScreenInfo
	screenNum int
}

var _ Server = (*Conn)(nil)

// Connect opens the display named by $DISPLAY. A working desktop
// always has one; callers treat failure as fatal.
func Connect() (*Conn, error) {
	x, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: cannot open display: %w", err)
	}
	setup := xproto.Setup(x)
	return &Conn{x: x, screen: setup.DefaultScreen(x), screenNum: x.DefaultScreen}, nil
}

// Close releases the connection.
func (c *Conn) Close() {
	c.x.Close()
}

// ScreenGeometry returns the default screen's dimensions.
func (c *Conn) ScreenGeometry() Geometry {
	return Geometry{
		WidthPx:  int(c.screen.WidthInPixels),
		HeightPx: int(c.screen.HeightInPixels),
		WidthMM:  int(c.screen.WidthInMillimeters),
		HeightMM: int(c.screen.HeightInMillimeters),
	}
}

// ResourceManagerString fetches the root window's RESOURCE_MANAGER
// property. ok is false when the property is not set.
func (c *Conn) ResourceManagerString() (string, bool, error) {
	data, ok, err := c.stringProperty(c.screen.Root, xproto.AtomResourceManager)
	if err != nil {
		return "", false, fmt.Errorf("x11: read RESOURCE_MANAGER: %w", err)
	}
	return string(data), ok, nil
}

// XSettingsData fetches the raw _XSETTINGS_SETTINGS property from the
// current XSETTINGS selection owner for the default screen. ok is
// false when no settings daemon owns the selection.
func (c *Conn) XSettingsData() ([]byte, bool, error) {
	selection, err := c.atom(fmt.Sprintf("_XSETTINGS_S%d", c.screenNum))
	if err != nil {
		return nil, false, err
	}
	if selection == xproto.AtomNone {
		return nil, false, nil
	}
	owner, err := xproto.GetSelectionOwner(c.x, selection).Reply()
	if err != nil {
		return nil, false, fmt.Errorf("x11: get XSETTINGS owner: %w", err)
	}
	if owner.Owner == xproto.WindowNone {
		return nil, false, nil
	}
	prop, err := c.atom("_XSETTINGS_SETTINGS")
	if err != nil {
		return nil, false, err
	}
	if prop == xproto.AtomNone {
		return nil, false, nil
	}
	reply, err := xproto.GetProperty(c.x, false, owner.Owner, prop, xproto.GetPropertyTypeAny, 0, 1<<20).Reply()
	if err != nil {
		return nil, false, fmt.Errorf("x11: read _XSETTINGS_SETTINGS: %w", err)
	}
	if reply.Format == 0 || len(reply.Value) == 0 {
		return nil, false, nil
	}
	return reply.Value, true, nil
}

func (c *Conn) stringProperty(window xproto.Window, property xproto.Atom) ([]byte, bool, error) {
	reply, err := xproto.GetProperty(c.x, false, window, property, xproto.GetPropertyTypeAny, 0, 1<<20).Reply()
	if err != nil {
		return nil, false, err
	}
	if reply.Format == 0 {
		return nil, false, nil
	}
	return reply.Value, true, nil
}

// atom interns name without creating it, returning AtomNone when the
// server has never seen the name.
func (c *Conn) atom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.x, true, uint16(len(name)), name).Reply()
	if err != nil {
		return xproto.AtomNone, fmt.Errorf("x11: intern %s: %w", name, err)
	}
	return reply.Atom, nil
}
