// Package main implements dpll, a command-line client for the kernel's
// Digital Phase-Locked Loop generic netlink subsystem.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/orosp/dpll/cli"
	"github.com/orosp/dpll/config"
	"github.com/orosp/dpll/dpll"
	"github.com/orosp/dpll/output"

	"github.com/MatusOllah/slogcolor"
)

const version = "dpll version 1.0"

var (
	showVersion bool
	jsonOutput  bool
	prettyPrint bool
	isVerbose   = flag.Bool("verbose", false, "Enable display of DEBUG log messages")
)

func init() {
	flag.BoolVar(&showVersion, "V", false, "Print version and exit")
	flag.BoolVar(&showVersion, "Version", false, "Print version and exit")
	flag.BoolVar(&jsonOutput, "j", false, "Switch the output sink to JSON")
	flag.BoolVar(&jsonOutput, "json", false, "Switch the output sink to JSON")
	flag.BoolVar(&prettyPrint, "p", false, "Pretty-indent JSON output")
	flag.BoolVar(&prettyPrint, "pretty", false, "Pretty-indent JSON output")
}

func main() {
	// An unknown option prints the flag usage and exits 1, the same exit
	// code every other usage error gets.
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	opts := slogcolor.DefaultOptions
	if *isVerbose {
		opts.Level = slog.LevelDebug
	} else {
		opts.Level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slogcolor.NewHandler(os.Stderr, opts)))

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	prefs := config.Default()
	if fn, err := config.Path(); err == nil {
		loaded, err := config.Load(fn)
		switch {
		case err == nil:
			slog.Debug("dpll: loaded preferences", "fn", fn)
			prefs = loaded
		case os.IsNotExist(err):
			slog.Warn("dpll: preferences file does not exist", "fn", fn)
		default:
			slog.Error("dpll: unable to load preferences file", "fn", fn, "err", err)
		}
	}

	// Command-line flags always override file preferences (§4.13).
	if flagSet("j") || flagSet("json") {
		prefs.JSON = jsonOutput
	}
	if flagSet("p") || flagSet("pretty") {
		prefs.Pretty = prettyPrint
	}

	sink := output.New(os.Stdout, output.SinkConfig{JSON: prefs.JSON, Pretty: prefs.Pretty})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cur := cli.NewCursor(flag.Args())
	err := cli.Dispatch(ctx, cur, sink, dpll.Dial, prefs.PollInterval, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cli.ExitCode(err))
}

// flagSet reports whether the named flag was supplied on the command line,
// so an unset flag's false zero value doesn't clobber a preference loaded
// from the file.
func flagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
