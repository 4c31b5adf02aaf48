package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"
)

func main() {
	os.Exit(run(os.Args, osHost{}, os.Stdout, os.Stderr))
}

func run(args []string, host Host, stdout, stderr io.Writer) int {
	exitCode := 0
	err := newApp(host, stdout, stderr, &exitCode).Run(args)
	if err != nil {
		Report(stderr, err)
		return 1
	}
	return exitCode
}

func newApp(host Host, stdout, stderr io.Writer, exitCode *int) *cli.App {
	return &cli.App{
		Name: "latexdiffmk",
		Authors: []*cli.Author{
			{Name: "billy4479"},
		},
		Usage:     "Build a LaTeX document with latexmk and, when it changed, a latexdiff-vc diff of it",
		ArgsUsage: "<doc>  (path without extension, e.g. paper/main for paper/main.tex)",
		Writer:    stdout,
		ErrWriter: stderr,
		// --keep globs use commas for alternatives
		DisableSliceFlagSeparator: true,
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 1 {
				return fmt.Errorf("expected one document path, got %d arguments", ctx.NArg())
			}

			config, err := LoadConfig(ctx.String("config"), ctx.IsSet("config"))
			if err != nil {
				return err
			}

			param, err := NewParam(optionsFromContext(ctx, config), host)
			if err != nil {
				return err
			}

			sigintChan := make(chan os.Signal, 1)
			signal.Notify(sigintChan, os.Interrupt)
			defer signal.Stop(sigintChan)
			stopAll := make(chan struct{})
			done := make(chan struct{})
			defer close(done)

			go func() {
				select {
				case <-sigintChan:
					fmt.Fprintln(stderr, "\nstopping")
					close(stopAll)
				case <-done:
				}
			}()

			dispatcher := NewDispatcher(param, host, stdout, stderr)
			dispatcher.Stop = stopAll
			code, err := dispatcher.Run()
			Report(stderr, err)
			*exitCode = code
			return nil
		},
		Commands: []*cli.Command{
			{
				Name: "init",
				Action: func(ctx *cli.Context) error {
					config := NewConfig()
					return WriteConfig(ctx.String("config"), config)
				},
				Usage: "Create a new config",
			},
		},
		Flags: appFlags(),
	}
}
