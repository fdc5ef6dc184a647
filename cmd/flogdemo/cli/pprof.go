package cli

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/google/flogger-sub002/flog"
	"github.com/google/flogger-sub002/pkg"
	"github.com/google/flogger-sub002/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Enable profiling"         placeholder:"${enum}" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Profile output directory"                       type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(pkg.CacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	var group kong.Group

	group.Key = "pprof"
	group.Title = "Profiling (pprof)"

	return group
}

// start starts profiling if configured. Without the pprof build tag the
// profiler is a stub, so the returned stop does nothing.
func (f pprofConfig) start(logger *flog.Logger) (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	logger.AtDebug().Logf("pprof start: mode=%s dir=%s", f.Mode, f.Dir)

	ctrl := profile.Profiler{Mode: f.Mode, Path: f.Dir, Quiet: true}.Start()

	return func() {
		logger.AtDebug().Logf("pprof stop: mode=%s dir=%s", f.Mode, f.Dir)
		ctrl.Stop()
	}
}
