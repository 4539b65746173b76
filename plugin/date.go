package plugin

import (
	"fmt"
	"time"

	itseasy "github.com/wiryonolau/itseasy-util"
)

// DefaultLayout is the layout tried first when none is given.
const DefaultLayout = "2006-01-02 15:04:05"

// Layouts tried after the priority layout, in order.
var fallbackLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
}

// DateOption configures date parsing and formatting.
type DateOption func(*dateConfig)

type dateConfig struct {
	loc      *time.Location
	tz       string
	explicit bool
	layout   string
}

// WithTimezone interprets dates in the IANA zone name. Defaults to UTC.
func WithTimezone(name string) DateOption {
	return func(c *dateConfig) { c.tz, c.loc, c.explicit = name, nil, true }
}

// WithLocation interprets dates in loc.
func WithLocation(loc *time.Location) DateOption {
	return func(c *dateConfig) {
		if loc != nil {
			c.loc, c.tz, c.explicit = loc, "", true
		}
	}
}

// WithLayout sets the layout tried before the fallbacks.
func WithLayout(layout string) DateOption {
	return func(c *dateConfig) {
		if layout != "" {
			c.layout = layout
		}
	}
}

func newDateConfig(opts []DateOption) (*dateConfig, error) {
	c := &dateConfig{loc: time.UTC, layout: DefaultLayout}
	for _, o := range opts {
		o(c)
	}
	if c.tz != "" {
		loc, err := time.LoadLocation(c.tz)
		if err != nil {
			return nil, itseasy.WrapIssue(itseasy.CodeValueError, "", err)
		}
		c.loc = loc
	}
	return c, nil
}

// DateToObject turns value into a time.Time. Times pass through unchanged,
// nil and the empty string mean now, and strings are parsed with the
// priority layout first, then "2006-01-02 15:04:05", "2006-01-02" and
// RFC 3339.
func DateToObject(value any, opts ...DateOption) (time.Time, error) {
	c, err := newDateConfig(opts)
	if err != nil {
		return time.Time{}, err
	}
	return c.parse(value)
}

func (c *dateConfig) parse(value any) (time.Time, error) {
	var s string
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v != nil {
			return *v, nil
		}
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return time.Time{}, itseasy.NewIssue(itseasy.CodeValueError, "", fmt.Sprintf("cannot read a date from %T", value))
	}
	if s == "" {
		return time.Now().In(c.loc), nil
	}
	for _, layout := range append([]string{c.layout}, fallbackLayouts...) {
		if t, err := time.ParseInLocation(layout, s, c.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, itseasy.NewIssue(itseasy.CodeValueError, "", fmt.Sprintf("invalid date %q", s))
}

// FormatDate reads value like DateToObject and renders it with layout
// (DefaultLayout when empty). An explicit timezone also converts the time
// into that zone.
func FormatDate(value any, layout string, opts ...DateOption) (string, error) {
	c, err := newDateConfig(opts)
	if err != nil {
		return "", err
	}
	t, err := c.parse(value)
	if err != nil {
		return "", err
	}
	if c.explicit {
		t = t.In(c.loc)
	}
	if layout == "" {
		layout = DefaultLayout
	}
	return t.Format(layout), nil
}

// locationArg accepts a zone name or a *time.Location.
func locationArg(args []any, i int) (DateOption, error) {
	if i >= len(args) || args[i] == nil {
		return func(*dateConfig) {}, nil
	}
	switch v := args[i].(type) {
	case string:
		return WithTimezone(v), nil
	case *time.Location:
		return WithLocation(v), nil
	}
	return nil, itseasy.NewIssue(itseasy.CodeValueError, "", fmt.Sprintf("argument %d must be a timezone, got %T", i, args[i]))
}

// invokeDateToObject takes (timezone, layout).
func invokeDateToObject(value any, args ...any) (any, error) {
	tz, err := locationArg(args, 0)
	if err != nil {
		return nil, err
	}
	layout, err := stringArg(args, 1, DefaultLayout)
	if err != nil {
		return nil, err
	}
	return DateToObject(value, tz, WithLayout(layout))
}

// invokeFormatDate takes (layout, timezone).
func invokeFormatDate(value any, args ...any) (any, error) {
	layout, err := stringArg(args, 0, DefaultLayout)
	if err != nil {
		return nil, err
	}
	tz, err := locationArg(args, 1)
	if err != nil {
		return nil, err
	}
	return FormatDate(value, layout, tz)
}
