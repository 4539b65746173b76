package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	itseasy "github.com/wiryonolau/itseasy-util"
	"github.com/wiryonolau/itseasy-util/codec"
)

func itseasyMain(cfg *MainConfig, cc *cli.Context, args []string) (err error) {
	defer func() {
		if cerr := cfg.closeOut(); err == nil {
			err = cerr
		}
	}()
	args, err = cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.J && cfg.Y {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	cfg.setupLogger()
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	if iss, ok := itseasy.AsIssues(err); ok {
		red := cfg.colorFor(os.Stderr, color.FgRed)
		for _, it := range iss {
			red.Fprintf(os.Stderr, "%s: %s\n", it.Code, it.Path)
		}
	}
	return err
}

// inputs maps no file arguments to stdin.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func readArg(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(arg)
}

func (cfg *MainConfig) readDoc(arg string) (any, error) {
	data, err := readArg(arg)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", arg, err)
	}
	doc, err := codec.Decode(cfg.inFormat(), data)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	return doc, nil
}

func (cfg *MainConfig) writeDoc(w io.Writer, v any) error {
	var (
		b   []byte
		err error
	)
	switch cfg.outFormat() {
	case outDump:
		spew.Fdump(w, v)
		return nil
	case outYAML:
		b, err = codec.EncodeYAML(v, cfg.encOpts()...)
	default:
		b, err = codec.EncodeJSON(v, cfg.encOpts()...)
		b = append(b, '\n')
	}
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	_, err = cfg.colorFor(w, color.FgCyan).Fprint(w, string(b))
	return err
}

// header separates results when several files are given.
func (cfg *MainConfig) header(w io.Writer, arg string) {
	cfg.colorFor(w, color.FgYellow).Fprintf(w, "--- %s\n", arg)
}
