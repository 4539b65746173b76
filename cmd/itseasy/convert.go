package main

import (
	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
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
		if err := cfg.writeDoc(cc.Out, doc); err != nil {
			return err
		}
	}
	return nil
}
