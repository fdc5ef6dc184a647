package cli

import (
	"github.com/alecthomas/kong"

	"github.com/google/flogger-sub002/config"
)

// backendFlags mirrors the backend section of the config document.
type backendFlags struct {
	Kind   string `default:"console" enum:"console,file,slog,zap,logrus,memory" help:"Sink kind"`
	Level  string `default:"info"    enum:"trace,debug,info,warn,error"         help:"Minimum record level"`
	Output string `help:"Output stream (stdout, stderr) or file path"           placeholder:"PATH"`
	Format string `default:""        enum:",text,json"                          help:"Render format for slog, zap, and logrus sinks"`
	Color  bool   `default:"true"    negatable:""                               help:"Colorize console output"`
	Caller bool   `                  negatable:""                               help:"Include call site information"`
	Filter string `help:"Emit only records matching this expression"            placeholder:"EXPR"`
}

func (*backendFlags) group() kong.Group {
	var group kong.Group

	group.Key = "backend"
	group.Title = "Backend options"

	return group
}

// apply folds the flags into cfg. A flag wins when it was given explicitly
// or when the document leaves its field unset.
func (f *backendFlags) apply(cfg *config.Config, set map[string]bool) {
	b := &cfg.Backend

	if set["backend-kind"] || b.Kind == "" {
		b.Kind = f.Kind
	}

	if set["backend-level"] || b.Level == "" {
		b.Level = f.Level
	}

	if set["backend-output"] || b.Output == "" {
		b.Output = f.Output
	}

	if set["backend-format"] || b.Format == "" {
		b.Format = f.Format
	}

	if set["backend-color"] || b.Color == nil {
		v := f.Color
		b.Color = &v
	}

	if set["backend-caller"] || b.Caller == nil {
		v := f.Caller
		b.Caller = &v
	}

	if set["backend-filter"] || b.Filter == "" {
		b.Filter = f.Filter
	}
}

// loggerFlags mirrors the logger section of the config document.
type loggerFlags struct {
	Name     string `default:"demo" help:"Logger name attached to dispatch error reports"`
	MaxSites int    `default:"0"    help:"Bound on tracked rate limiter sites (0 for the default)" name:"max-sites"`
}

func (*loggerFlags) group() kong.Group {
	var group kong.Group

	group.Key = "logger"
	group.Title = "Logger options"

	return group
}

func (f *loggerFlags) apply(cfg *config.Config, set map[string]bool) {
	if set["logger-name"] || cfg.Logger.Name == "" {
		cfg.Logger.Name = f.Name
	}

	if set["logger-max-sites"] || cfg.Logger.MaxSites == 0 {
		cfg.Logger.MaxSites = f.MaxSites
	}
}
