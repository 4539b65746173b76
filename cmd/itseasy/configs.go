package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	itseasy "github.com/wiryonolau/itseasy-util"
	"github.com/wiryonolau/itseasy-util/codec"
)

// outFormat extends the codec formats with a go-spew dump.
type outFormat int

const (
	outJSON outFormat = iota
	outYAML
	outDump
)

func parseOutFormat(s string) (outFormat, error) {
	switch strings.ToLower(s) {
	case "dump", "d":
		return outDump, nil
	}
	f, err := codec.ParseFormat(s)
	if err != nil {
		return 0, err
	}
	if f == codec.FormatYAML {
		return outYAML, nil
	}
	return outJSON, nil
}

type MainConfig struct {
	Color   bool `cli:"name=color desc='highlight output with color'"`
	Verbose bool `cli:"name=v aliases=verbose desc='log debug events to stderr'"`
	Indent  bool `cli:"name=i aliases=indent desc='indent json output'"`

	J bool `cli:"name=j aliases=json desc='read input as json'"`
	Y bool `cli:"name=y aliases=yaml desc='read input as yaml'"`

	OutFormat *outFormat

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outFmtFunc() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := parseOutFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.OutFormat = &f
		return f, nil
	})
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// closeOut closes the -o file, if any, once.
func (cfg *MainConfig) closeOut() error {
	if cfg.CloseOut == nil {
		return nil
	}
	closeFn := cfg.CloseOut
	cfg.CloseOut = nil
	if err := closeFn(); err != nil {
		return fmt.Errorf("error closing %s: %w", cfg.Out, err)
	}
	return nil
}

func (cfg *MainConfig) inFormat() codec.Format {
	if cfg.Y {
		return codec.FormatYAML
	}
	return codec.FormatJSON
}

func (cfg *MainConfig) outFormat() outFormat {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if cfg.Y {
		return outYAML
	}
	return outJSON
}

func (cfg *MainConfig) encOpts() []codec.Option {
	if cfg.Indent {
		return []codec.Option{codec.WithIndent("  ")}
	}
	return nil
}

// useColor honors an explicit -color and otherwise colors terminals only.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name != "color" {
				continue
			}
			if opt.Value != nil {
				return false
			}
			break
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) colorFor(w io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if cfg.useColor(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (cfg *MainConfig) setupLogger() {
	if !cfg.Verbose {
		return
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	itseasy.SetLogger(slog.New(h))
}

type GetConfig struct {
	*MainConfig
	Strict  bool   `cli:"name=s aliases=strict desc='fail when the path cannot be resolved'"`
	Default string `cli:"name=d aliases=default desc='json value printed when the path is missing'"`
	Sep     string `cli:"name=sep desc='path segment separator'"`

	Get *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}

type PatchConfig struct {
	*MainConfig
	File  string `cli:"name=p aliases=patch desc='patch document file'"`
	Merge bool   `cli:"name=m aliases=merge desc='treat the patch as a json merge patch'"`

	Patch *cli.Command
}
