// Package cli assembles the remake command-line interface with kong.
package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/remake/cli/cmd"
	"github.com/ardnew/remake/pkg"
)

// CLI is the top-level command-line interface for remake.
type CLI struct {
	Log     logConfig     `embed:"" group:"log"     prefix:"log-"`
	Profile profileConfig `embed:"" group:"profile" prefix:"profile-"`

	Env   cmd.Env   `cmd:"" default:"withargs" help:"Print the projected subprocess environment"`
	Dump  cmd.Dump  `cmd:""                    help:"Print the variable database"`
	Parse cmd.Parse `cmd:""                    help:"Classify a line as a variable definition"`
	Repl  cmd.Repl  `cmd:""                    help:"Interactive variable inspector"`
}

// Run executes the remake CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon
// completion.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Profile.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		cli.Profile.vars(),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start()

	defer cli.Profile.start()()

	return ktx.Run(ctx, &cli)
}
