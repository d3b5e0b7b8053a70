package probe

import (
	"context"
	"errors"

	"github.com/fontdiag/fontdiag/pkg/report"
	"github.com/fontdiag/fontdiag/pkg/xrdb"
)

// defaultResourceKeys is the fixed lookup list for the resource
// database, overridable through the config file.
var defaultResourceKeys = []string{
	"Xft.antialias",
	"Xft.hinting",
	"Xft.hintstyle",
	"Xft.rgba",
	"Xft.dpi",
}

func (e *Env) resourceKeys() []string {
	if len(e.ResourceKeys) > 0 {
		return e.ResourceKeys
	}
	return defaultResourceKeys
}

// resourceDatabaseProbe reports entries from the root window's
// resource database.
type resourceDatabaseProbe struct{}

func (resourceDatabaseProbe) Name() string { return "x-resources" }

func (resourceDatabaseProbe) Description() string {
	return "Root window resource database (xrdb)"
}

func (resourceDatabaseProbe) Run(ctx context.Context, env *Env, opts Options, w *report.Writer) error {
	if env.X == nil {
		return errors.New("no display connection")
	}

	w.Section("X resources (xrdb)")
	data, ok, err := env.X.ResourceManagerString()
	if err != nil {
		env.logger().Warn("reading RESOURCE_MANAGER", "error", err)
		ok = false
	}
	if !ok {
		w.Raw("%s", report.Failed)
		w.End()
		return nil
	}

	db := xrdb.Parse(data)
	for _, key := range env.resourceKeys() {
		if v, found := db.Get(key); found {
			w.Line(key, "%q", v)
		} else {
			w.Line(key, "%s", report.Unset)
		}
	}
	w.End()
	return nil
}
