// Package codec encodes plain values (maps, slices, scalars) to their
// canonical textual form and decodes text back into plain values.
//
// JSON goes through goccy/go-json, with decoding driven by the streaming
// engine so nesting depth and duplicate keys are enforced while reading. YAML
// uses gopkg.in/yaml.v3. Every failure surfaces as itseasy.Issues carrying
// CodeEncodeFailure or CodeDecodeFailure.
package codec

import (
	"fmt"
	"strings"

	itseasy "github.com/wiryonolau/itseasy-util"
)

// Format names a textual encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts json/j and yaml/y/yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "j":
		return FormatJSON, nil
	case "yaml", "y", "yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("unknown format %q", s)
}

// Option configures encoding and decoding.
type Option func(*config)

type config struct {
	maxDepth    int
	indent      string
	numbers     itseasy.NumberMode
	onDuplicate itseasy.Severity
}

func newConfig(opts []Option) *config {
	c := &config{maxDepth: itseasy.DefaultMaxDepth, onDuplicate: itseasy.Error}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithMaxDepth bounds container nesting; n <= 0 restores the default.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = itseasy.DefaultMaxDepth
		}
		c.maxDepth = n
	}
}

// WithIndent pretty-prints output using indent per level.
func WithIndent(indent string) Option { return func(c *config) { c.indent = indent } }

// WithNumberMode selects how decoded numbers are represented.
func WithNumberMode(m itseasy.NumberMode) Option { return func(c *config) { c.numbers = m } }

// WithDuplicateKeys sets how duplicate JSON object keys are treated.
// Error (default) fails decoding, Warn logs and keeps the last value.
func WithDuplicateKeys(s itseasy.Severity) Option { return func(c *config) { c.onDuplicate = s } }

// Encode renders v in format f.
func Encode(f Format, v any, opts ...Option) ([]byte, error) {
	switch f {
	case FormatYAML:
		return EncodeYAML(v, opts...)
	default:
		return EncodeJSON(v, opts...)
	}
}

// Decode parses data in format f.
func Decode(f Format, data []byte, opts ...Option) (any, error) {
	switch f {
	case FormatYAML:
		return DecodeYAML(data, opts...)
	default:
		return DecodeJSON(data, opts...)
	}
}
