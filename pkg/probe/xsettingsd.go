package probe

import (
	"context"
	"strings"

	"github.com/fontdiag/fontdiag/pkg/report"
)

const defaultHelperCommand = "dump_xsettings"
const helperSource = "https://github.com/derat/xsettingsd"

func (e *Env) helperCommand() string {
	if e.HelperCommand != "" {
		return e.HelperCommand
	}
	return defaultHelperCommand
}

// settingsDaemonProbe dumps the live settings-daemon state through the
// external helper, filtering it to the font-related entries. The
// helper's stdout is filtered and reformatted in-process; no shell is
// involved. A failing or missing helper is the one recoverable
// whole-probe failure: it prints an installation hint and the run
// continues.
type settingsDaemonProbe struct{}

func (settingsDaemonProbe) Name() string { return "settings-daemon" }

func (settingsDaemonProbe) Description() string {
	return "Live settings-daemon state (" + defaultHelperCommand + ")"
}

func (settingsDaemonProbe) Run(ctx context.Context, env *Env, opts Options, w *report.Writer) error {
	w.Section("XSETTINGS")

	helper := env.helperCommand()
	cctx, cancel := commandContext(ctx, env)
	defer cancel()
	out, err := runCommandFunc(cctx, helper)
	if err != nil {
		env.logger().Debug("settings-daemon helper failed", "helper", helper, "error", err)
		w.Raw("Install %s from %s", defaultHelperCommand, helperSource)
		w.Raw("to print this information.")
		w.End()
		return nil
	}

	for _, line := range strings.Split(string(out), "\n") {
		if !strings.HasPrefix(line, "Gtk/FontName ") && !strings.HasPrefix(line, "Xft/") {
			continue
		}
		name, value, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		w.Line(name, "%s", strings.TrimSpace(value))
	}
	w.End()
	return nil
}
