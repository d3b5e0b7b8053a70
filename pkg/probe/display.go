package probe

import (
	"context"
	"errors"

	"github.com/fontdiag/fontdiag/pkg/report"
)

// displayGeometryProbe reports the default screen's pixel and
// physical dimensions and the DPI derived from them.
type displayGeometryProbe struct{}

func (displayGeometryProbe) Name() string { return "display-geometry" }

func (displayGeometryProbe) Description() string {
	return "Screen dimensions and derived DPI"
}

func (displayGeometryProbe) Run(ctx context.Context, env *Env, opts Options, w *report.Writer) error {
	if env.X == nil {
		return errors.New("no display connection")
	}
	g := env.X.ScreenGeometry()

	w.Section("X11 display info")
	w.Line("screen pixels", "%dx%d", g.WidthPx, g.HeightPx)
	if g.WidthMM <= 0 || g.HeightMM <= 0 {
		// Some virtual displays report no physical size.
		w.Line("screen size", "%dx%d mm", g.WidthMM, g.HeightMM)
	} else {
		xdpi, ydpi := g.DPI()
		w.Line("screen size", "%dx%d mm (%.2fx%.2f DPI)", g.WidthMM, g.HeightMM, xdpi, ydpi)
	}
	w.End()
	return nil
}
