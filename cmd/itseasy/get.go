package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/wiryonolau/itseasy-util/codec"
	"github.com/wiryonolau/itseasy-util/pathquery"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	path := args[0]
	files := inputs(args[1:])
	for _, arg := range files {
		doc, err := cfg.readDoc(arg)
		if err != nil {
			return err
		}
		if len(files) > 1 {
			cfg.header(cc.Out, arg)
		}
		if err := cfg.getDoc(cc.Out, doc, path); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", arg, path, err)
		}
	}
	return nil
}

// queryOpts reads -d as json and falls back to the raw string.
func (cfg *GetConfig) queryOpts() []pathquery.Option {
	opts := []pathquery.Option{
		pathquery.WithStrict(cfg.Strict),
		pathquery.WithSeparator(cfg.Sep),
	}
	if cfg.Default != "" {
		var def any = cfg.Default
		if v, err := codec.DecodeJSON([]byte(cfg.Default)); err == nil {
			def = v
		}
		opts = append(opts, pathquery.WithPlaceholder(def))
	}
	return opts
}

func (cfg *GetConfig) getDoc(w io.Writer, doc any, path string) error {
	res, err := pathquery.Query(doc, path, cfg.queryOpts()...)
	if err != nil {
		return err
	}
	return cfg.writeDoc(w, res)
}
