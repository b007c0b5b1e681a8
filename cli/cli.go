package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/domcol/cli/cmd"
	"github.com/ardnew/domcol/pkg"
)

// CLI is the top-level command-line interface for domcol.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"v"`

	Scene string   `help:"Scene file or name supplying equations and view."        short:"s"`
	File  []string `help:"Equation file(s), one equation per line, or '-' for stdin."`

	Compile cmd.Compile `cmd:"" default:"withargs" help:"Print the generated shader program."`
	Render  cmd.Render  `cmd:""                    help:"Render to a PNG with the software renderer."`
	Plot    cmd.Plot    `cmd:""                    help:"Plot in a window on the GPU."`
	Edit    cmd.Edit    `cmd:""                    help:"Edit and preview equations interactively."`
	Fmt     cmd.Fmt     `cmd:""                    help:"Print parsed equations."`
	Init    cmd.Init    `cmd:""                    help:"Initialize configuration file."`
}

// Run executes the domcol CLI with the given context and arguments. The exit
// function is called with the exit code when kong exits early, such as after
// printing help.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFile := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFile,
		cmd.CacheIdentifier:  cacheDir(),
		cmd.SceneIdentifier:  configPath(baseScenes),
		"version":            pkg.Version(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Configure the logger before kong reports anything.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(append(
			[]kong.Group{cli.Log.group()},
			cli.Pprof.groups()...,
		)),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve(ctx), configFile),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithScene(ctx, cli.Scene, configPath(baseScenes))
	ctx = cmd.WithEquationFiles(ctx, cli.File)

	defer cli.Log.start(ctx)()

	// No-op unless built with the pprof tag and a mode is set.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
