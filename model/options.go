package model

import (
	itseasy "github.com/wiryonolau/itseasy-util"
	"github.com/wiryonolau/itseasy-util/codec"
)

// Option configures export and textual encoding.
type Option func(*config)

type config struct {
	maxDepth int
	indent   string
	numbers  itseasy.NumberMode
}

func newConfig(opts []Option) *config {
	c := &config{maxDepth: itseasy.DefaultMaxDepth}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithMaxDepth bounds nesting of exports and encoded text; n <= 0 restores
// the default.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = itseasy.DefaultMaxDepth
		}
		c.maxDepth = n
	}
}

// WithIndent pretty-prints encoded text.
func WithIndent(indent string) Option { return func(c *config) { c.indent = indent } }

// WithNumberMode selects how numbers decoded from text are represented
// before population.
func WithNumberMode(m itseasy.NumberMode) Option { return func(c *config) { c.numbers = m } }

func (c *config) codecOptions() []codec.Option {
	return []codec.Option{
		codec.WithMaxDepth(c.maxDepth),
		codec.WithIndent(c.indent),
		codec.WithNumberMode(c.numbers),
	}
}
