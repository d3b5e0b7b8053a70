// Package probe implements the configuration probes that make up the
// diagnostic report. Each probe queries one configuration source
// (toolkit settings, desktop preferences, display geometry, the X
// resource database, the settings daemon, the desktop portal,
// fontconfig) and prints one labeled section. Probes run strictly in
// sequence and share no state beyond the Env they are handed; every
// handle a probe acquires is released before it returns.
package probe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fontdiag/fontdiag/pkg/report"
	"github.com/fontdiag/fontdiag/pkg/x11"
)

// Replaceable for testing.
var runCommandFunc = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
var lookPathFunc = exec.LookPath

// defaultTimeout bounds every subprocess invocation so a hung helper
// fails its probe instead of hanging the whole report.
const defaultTimeout = 10 * time.Second

// Env is the context shared by all probes: the display connection,
// logging, and the run-wide knobs. It replaces the original tool's
// process-global toolkit state with an explicit parameter.
type Env struct {
	// X is the display connection, nil when none could be opened.
	// Probes that require one fail fatally without it.
	X x11.Server

	Logger *slog.Logger

	// Timeout bounds each subprocess invocation. Zero means the
	// default of 10 seconds.
	Timeout time.Duration

	// HelperCommand overrides the settings-daemon dump helper
	// (default dump_xsettings).
	HelperCommand string

	// ResourceKeys overrides the resource-database key list.
	ResourceKeys []string

	// HomeDir overrides the user home directory, for tests.
	HomeDir string

	// Now stamps the report header. Defaults to time.Now.
	Now func() time.Time
}

func (e *Env) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

func (e *Env) timeout() time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	return defaultTimeout
}

func (e *Env) home() string {
	if e.HomeDir != "" {
		return e.HomeDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// configDir resolves the XDG config directory.
func (e *Env) configDir() string {
	if e.HomeDir == "" {
		if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
			return dir
		}
	}
	return filepath.Join(e.home(), ".config")
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// commandContext derives the per-subprocess deadline.
func commandContext(ctx context.Context, env *Env) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, env.timeout())
}

// Options are the per-run report options, mirroring the command-line
// flags.
type Options struct {
	// Bold requests bold weight in the fontconfig query.
	Bold bool
	// Italic requests italic slant in the fontconfig query.
	Italic bool
	// FontDesc is an explicit font description overriding the
	// theme-derived default.
	FontDesc string
}

// Probe is one report section. Run writes the section including its
// terminating blank line. A returned error is the fatal tier: it
// aborts the run. Per-value misses are rendered as placeholders and
// never returned as errors.
type Probe interface {
	Name() string
	Description() string
	Run(ctx context.Context, env *Env, opts Options, w *report.Writer) error
}

// Info describes a probe for listings.
type Info struct {
	Name        string
	Description string
}

// Runner executes the fixed probe sequence.
type Runner struct {
	env    *Env
	probes []Probe
}

// NewRunner returns a Runner over the declared probe order.
func NewRunner(env *Env) *Runner {
	return &Runner{
		env: env,
		probes: []Probe{
			toolkitSettingsProbe{},
			toolkitStylesProbe{},
			desktopPreferencesProbe{},
			displayGeometryProbe{},
			resourceDatabaseProbe{},
			settingsDaemonProbe{},
			desktopPortalProbe{},
			fontconfigFilesProbe{},
			fontMatchProbe{},
		},
	}
}

// Infos returns the probes in run order.
func (r *Runner) Infos() []Info {
	infos := make([]Info, len(r.probes))
	for i, p := range r.probes {
		infos[i] = Info{Name: p.Name(), Description: p.Description()}
	}
	return infos
}

// WriteReport runs every probe in order, writing the full report to
// out. The first fatal probe error aborts the run.
func (r *Runner) WriteReport(ctx context.Context, opts Options, out io.Writer) error {
	w := report.NewWriter(out)
	w.Raw("Running at %s", r.env.now().Format(time.ANSIC))
	w.End()
	for _, p := range r.probes {
		if err := p.Run(ctx, r.env, opts, w); err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
	}
	return nil
}

// WriteProbe runs the named probe only.
func (r *Runner) WriteProbe(ctx context.Context, name string, opts Options, out io.Writer) error {
	for _, p := range r.probes {
		if p.Name() == name {
			w := report.NewWriter(out)
			if err := p.Run(ctx, r.env, opts, w); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		}
	}
	return fmt.Errorf("unknown probe: %s", name)
}

// ReportText returns the full report as a string.
func (r *Runner) ReportText(ctx context.Context, opts Options) (string, error) {
	var b strings.Builder
	if err := r.WriteReport(ctx, opts, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ProbeText returns one probe's section as a string.
func (r *Runner) ProbeText(ctx context.Context, name string, opts Options) (string, error) {
	var b strings.Builder
	if err := r.WriteProbe(ctx, name, opts, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
