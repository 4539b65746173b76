package main

import (
	"fmt"
	"io"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/wiryonolau/itseasy-util/codec"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.File == "" {
		return fmt.Errorf("%w: patch requires -p <patchfile>", cli.ErrUsage)
	}
	p, err := readArg(cfg.File)
	if err != nil {
		return fmt.Errorf("error reading patch %s: %w", cfg.File, err)
	}
	files := inputs(args)
	for _, arg := range files {
		doc, err := cfg.readDoc(arg)
		if err != nil {
			return err
		}
		if len(files) > 1 {
			cfg.header(cc.Out, arg)
		}
		if err := cfg.patchDoc(cc.Out, doc, p); err != nil {
			return fmt.Errorf("error patching %s: %w", arg, err)
		}
	}
	return nil
}

func (cfg *PatchConfig) patchDoc(w io.Writer, doc any, p []byte) error {
	src, err := codec.EncodeJSON(doc)
	if err != nil {
		return err
	}
	var out []byte
	if cfg.Merge {
		out, err = jsonpatch.MergePatch(src, p)
	} else {
		var ops jsonpatch.Patch
		ops, err = jsonpatch.DecodePatch(p)
		if err != nil {
			return fmt.Errorf("invalid patch: %w", err)
		}
		out, err = ops.Apply(src)
	}
	if err != nil {
		return err
	}
	res, err := codec.DecodeJSON(out)
	if err != nil {
		return err
	}
	return cfg.writeDoc(w, res)
}
