package main

import (
	"fmt"
	"os"

	slang "github.com/sagarpatel211/S-Lang/pkg"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

func main() {
	app := &cli.App{
		Name:      "slang",
		Usage:     "compiler front-end for the S-Lang programming language",
		ArgsUsage: "<source-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "r",
				Value: "output.ll",
				Usage: "rename the outputted IR file",
			},
			&cli.BoolFlag{
				Name:  "e",
				Usage: "emit the generated IR to standard output",
			},
			&cli.BoolFlag{
				Name:  "v",
				Usage: "enable the verbose debug sink",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %s\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		_ = cli.ShowAppHelp(c)
		return fmt.Errorf("expected exactly one source file, got %d", c.NArg())
	}

	slang.Debug.Enabled = c.Bool("v")

	compiler := slang.NewCompiler()
	compiler.OutputPath = c.String("r")
	compiler.EmitToStdout = c.Bool("e")

	if err := compiler.Compile(c.Args().First()); err != nil {
		if c.Bool("v") {
			tracerr.PrintSourceColor(tracerr.Wrap(err))
		}
		return err
	}

	return nil
}
