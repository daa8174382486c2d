package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/effective-security/x/ctl"
	"github.com/krajcik/jwtcodec/cmd/jwt-tool/cli"
)

// version is set with -ldflags "-X main.version=..."
var version = "devel"

type app struct {
	cli.Cli

	Sign    cli.SignCmd     `cmd:"" help:"sign claims"`
	Verify  cli.VerifyCmd   `cmd:"" help:"verify a token and print its claims"`
	Inspect cli.InspectCmd  `cmd:"" help:"print a token without verifying it"`
	Der2raw cli.DERToRawCmd `cmd:"" name:"der2raw" help:"convert a DER ECDSA signature to r||s"`
	Raw2der cli.RawToDERCmd `cmd:"" name:"raw2der" help:"convert an r||s ECDSA signature to DER"`
}

func main() {
	realMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

func realMain(args []string, out io.Writer, errout io.Writer, exit func(int)) {
	cl := app{
		Cli: cli.Cli{},
	}
	cl.Cli.WithErrWriter(errout).
		WithWriter(out)

	parser, err := kong.New(&cl,
		kong.Name("jwt-tool"),
		kong.Description("JWT signing and signature tools"),
		kong.Writers(out, errout),
		kong.Exit(exit),
		ctl.BoolPtrMapper,
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		})
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args[1:])
	parser.FatalIfErrorf(err)

	if ctx != nil {
		err = ctx.Run(&cl.Cli)
		ctx.FatalIfErrorf(err)
	}
}
