package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/google/flogger-sub002/config"
	"github.com/google/flogger-sub002/pkg"
)

// CLI is the top-level command-line interface for flogdemo.
type CLI struct {
	Version kong.VersionFlag `help:"Print version and exit" short:"V"`
	Config  string           `help:"Backend configuration file (YAML)" short:"c" type:"existingfile"`

	Backend backendFlags `embed:"" group:"backend" prefix:"backend-"`
	Logger  loggerFlags  `embed:"" group:"logger"  prefix:"logger-"`
	Pprof   pprofConfig  `embed:"" group:"pprof"   prefix:"pprof-"`

	Burst  Burst  `cmd:"" default:"1" help:"Flood the logger from concurrent workers"`
	Steady Steady `cmd:""             help:"Emit a heartbeat held to a wall-clock period"`
	Sample Sample `cmd:""             help:"Sample statements statistically and per shard"`
}

// Run executes the flogdemo CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	vars := kong.Vars{
		"version": strings.TrimSpace(pkg.Version),
	}.
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name("flogdemo"),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Backend.group(), cli.Logger.group(), cli.Pprof.group()},
		),
		kong.DefaultEnvars(pkg.Prefix()),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact: true,
				Summary: true,
			}),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := cli.configure(ktx)
	if err != nil {
		return err
	}

	logger, err := cfg.BuildLogger()
	if err != nil {
		return err
	}

	// [pprofConfig.start] is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(logger)()

	// Execute the selected scenario with the logger bound for Run methods.
	return ktx.Run(logger)
}

// configure resolves the backend configuration. The config file supplies the
// base document; flags given explicitly on the command line override it, and
// flag defaults fill whatever the file leaves unset. Without --config, the
// user-level document under [pkg.ConfigDir] is consulted when present.
func (c *CLI) configure(ktx *kong.Context) (*config.Config, error) {
	cfg := new(config.Config)

	path := c.Config
	if path == "" {
		path = defaultConfigPath()
	}

	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	set := make(map[string]bool, len(ktx.Model.Flags))

	for _, flag := range ktx.Model.Flags {
		if flag.Set {
			set[flag.Name] = true
		}
	}

	c.Backend.apply(cfg, set)
	c.Logger.apply(cfg, set)

	return cfg, nil
}

// defaultConfigPath returns the user-level config document, or "" when
// none exists.
func defaultConfigPath() string {
	path := filepath.Join(pkg.ConfigDir(), "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}

	return path
}
