package pathquery

import itseasy "github.com/wiryonolau/itseasy-util"

// Option configures a query.
type Option func(*config)

type config struct {
	placeholder any
	strict      bool
	separator   string
	maxDepth    int
}

func newConfig(opts []Option) *config {
	c := &config{separator: ".", maxDepth: itseasy.DefaultMaxDepth}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithPlaceholder is returned by non-strict queries that cannot resolve the
// path. Defaults to nil.
func WithPlaceholder(v any) Option { return func(c *config) { c.placeholder = v } }

// WithStrict makes unresolved paths fail with a path_not_found issue.
func WithStrict(strict bool) Option { return func(c *config) { c.strict = strict } }

// WithSeparator sets the segment separator used by Query; empty keeps ".".
func WithSeparator(sep string) Option {
	return func(c *config) {
		if sep != "" {
			c.separator = sep
		}
	}
}

// WithMaxDepth bounds the number of segments; n <= 0 restores the default.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = itseasy.DefaultMaxDepth
		}
		c.maxDepth = n
	}
}
