package probe

import (
	"context"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fontdiag/fontdiag/pkg/report"
)

// fontconfigFilesProbe lists the fontconfig configuration files
// actually present on the system, so a stray per-user override is
// visible next to the resolved match.
type fontconfigFilesProbe struct{}

func (fontconfigFilesProbe) Name() string { return "fontconfig-files" }

func (fontconfigFilesProbe) Description() string {
	return "Installed fontconfig configuration files"
}

func (fontconfigFilesProbe) Run(ctx context.Context, env *Env, opts Options, w *report.Writer) error {
	patterns := []string{
		"/etc/fonts/fonts.conf",
		"/etc/fonts/conf.d/*.conf",
		filepath.Join(env.configDir(), "fontconfig", "**", "*.conf"),
	}

	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			env.logger().Debug("fontconfig glob failed", "pattern", pattern, "error", err)
			continue
		}
		files = append(files, matches...)
	}

	w.Section("Fontconfig files")
	w.Line("config files", "%d", len(files))
	if len(files) == 0 {
		w.Raw("%s", report.None)
	}
	for _, f := range files {
		w.Raw("  %s", f)
	}
	w.End()
	return nil
}
