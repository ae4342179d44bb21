package fmtx

import "math"

// Context is handed to custom formatters. It carries the parsed spec, the
// locale and the sink of the field being formatted.
type Context struct {
	out    Sink
	spec   Spec
	raw    string
	rawPos int
	parsed bool
	loc    Locale
	ids    idSource
	args   Args

	scratch [96]byte
	digits  [40]byte
}

func (c *Context) reset(out Sink, loc Locale, ids idSource, args Args) {
	c.out = out
	c.spec = Spec{Precision: -1}
	c.raw = ""
	c.rawPos = 0
	c.parsed = false
	c.loc = loc
	c.ids = ids
	c.args = args
}

// Spec returns the parsed standard spec of the field. Types implementing
// SpecParser get the zero spec and read RawSpec instead.
func (c *Context) Spec() Spec { return c.spec }

// RawSpec returns the text between ':' and the closing brace.
func (c *Context) RawSpec() string { return c.raw }

// Locale returns the locale of the formatting call.
func (c *Context) Locale() Locale { return c.loc }

// Sink returns the destination of the field.
func (c *Context) Sink() Sink { return c.out }

// Write appends p to the output. It never fails.
func (c *Context) Write(p []byte) (int, error) {
	c.out.Append(p)
	return len(p), nil
}

// WriteString appends s to the output. It never fails.
func (c *Context) WriteString(s string) (int, error) {
	c.out.AppendString(s)
	return len(s), nil
}

// Pad runs fn against a temporary buffer and writes the result with the
// spec's fill, alignment and width. Content is left-aligned by default.
func (c *Context) Pad(fn func(out Sink) error) error {
	var b Buffer
	if err := fn(&b); err != nil {
		return err
	}
	s := b.String()
	c.writePadded(s, displayWidth(s), AlignLeft)
	return nil
}

// FormatArg formats a with the field's spec, as if a had been the
// argument of the field.
func (c *Context) FormatArg(a Arg) error {
	if err := c.spec.validate(a.kind, c.rawPos); err != nil {
		return err
	}
	parsed := c.parsed
	c.parsed = true
	err := c.writeArg(a)
	c.parsed = parsed
	return err
}

// Format formats a nested template into the same output and locale.
func (c *Context) Format(tmpl string, args ...Arg) error {
	return VFormatTo(c.out, c.loc, tmpl, NewArgs(args...))
}

// runFormatter parses the spec for f and calls it.
func (c *Context) runFormatter(f Formatter) error {
	if sp, ok := f.(SpecParser); ok {
		n, err := sp.ParseSpec(c.raw)
		if err != nil {
			return err
		}
		if n != len(c.raw) {
			return formatErr(ErrInvalidSpec, c.rawPos+n, "unknown format specifier")
		}
	} else if err := c.parseRaw(); err != nil {
		return err
	}
	return f.Format(c)
}

// parseRaw parses the raw spec with the standard grammar unless that has
// already happened.
func (c *Context) parseRaw() error {
	if c.parsed {
		return nil
	}
	spec, end, err := parseSpec(c.raw, 0, c.ids)
	if err == nil && end != len(c.raw) {
		err = formatErr(ErrInvalidSpec, end, "unknown format specifier")
	}
	if err == nil {
		err = spec.resolve(c.args)
	}
	if err != nil {
		if fe, ok := err.(*FormatError); ok {
			fe.Pos += c.rawPos
		}
		return err
	}
	c.spec = spec
	c.parsed = true
	return nil
}

// writeArg dispatches on the argument kind.
func (c *Context) writeArg(a Arg) error {
	switch a.kind {
	case KindInt:
		c.writeSigned(int64(a.bits))
	case KindUint:
		c.writeUnsigned(a.bits)
	case KindBool:
		c.writeBool(a.bits != 0)
	case KindChar:
		switch c.spec.Type {
		case 0, '?':
			c.writeChar(rune(a.bits))
		default:
			c.writeSigned(int64(int32(uint32(a.bits))))
		}
	case KindFloat32:
		c.writeFloat(float64(math.Float32frombits(uint32(a.bits))), true)
	case KindFloat64:
		c.writeFloat(math.Float64frombits(a.bits), false)
	case KindString:
		c.writeString(a.str)
	case KindPointer:
		c.writePointer(a.bits)
	case KindCustom:
		return a.fn(a.ptr, c)
	default:
		return formatErr(ErrArgNotFound, c.rawPos, "argument not found")
	}
	return nil
}
