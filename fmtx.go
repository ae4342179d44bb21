package fmtx

import (
	"io"
	"sync"
)

// state is one run of the scanner over a template with an argument list.
type state struct {
	scanner
	args Args
	ctx  Context
}

var statePool = sync.Pool{New: func() any { return new(state) }}

func (st *state) text(s string) { st.ctx.out.AppendString(s) }

func (st *state) field(ref argRef, i int) (int, error) {
	arg, _, err := ref.lookup(st.args)
	if err != nil {
		return 0, err
	}
	c := &st.ctx
	c.reset(c.out, c.loc, &st.scanner, st.args)
	t := st.tmpl
	if t[i] == '}' {
		c.parsed = true
		return i + 1, c.writeArg(arg)
	}
	i++
	if arg.kind == KindCustom {
		end := specEnd(t, i)
		if end < 0 {
			return 0, formatErr(ErrInvalidSpec, i, "unknown format specifier")
		}
		c.raw, c.rawPos = t[i:end], i
		return end + 1, c.writeArg(arg)
	}
	spec, end, err := parseSpec(t, i, &st.scanner)
	if err != nil {
		return 0, err
	}
	if end >= len(t) || t[end] != '}' {
		return 0, formatErr(ErrInvalidSpec, end, "unknown format specifier")
	}
	if err := spec.validate(arg.kind, i); err != nil {
		return 0, err
	}
	if err := spec.resolve(st.args); err != nil {
		return 0, err
	}
	c.spec, c.parsed, c.raw, c.rawPos = spec, true, t[i:end], i
	return end + 1, c.writeArg(arg)
}

// VFormatTo formats tmpl with args into out using loc for 'L' fields. A nil
// loc means Classic.
func VFormatTo(out Sink, loc Locale, tmpl string, args Args) error {
	if loc == nil {
		loc = Classic()
	}
	st := statePool.Get().(*state)
	st.scanner = scanner{tmpl: tmpl}
	st.args = args
	st.ctx.reset(out, loc, &st.scanner, args)
	err := st.scan(st)
	st.args = Args{}
	st.ctx.reset(nil, nil, nil, Args{})
	statePool.Put(st)
	return err
}

// FormatTo formats tmpl with args into out.
func FormatTo(out Sink, tmpl string, args ...Arg) error {
	return VFormatTo(out, nil, tmpl, NewArgs(args...))
}

// Format formats tmpl with args and returns the result.
func Format(tmpl string, args ...Arg) (string, error) {
	return VFormat(tmpl, NewArgs(args...))
}

// VFormat formats tmpl with an argument view, typically Store.Args.
func VFormat(tmpl string, args Args) (string, error) {
	b := Buffer{buf: make([]byte, 0, len(tmpl)+16*args.Len())}
	if err := VFormatTo(&b, nil, tmpl, args); err != nil {
		return "", err
	}
	return b.String(), nil
}

// FormatLoc is Format with a locale for 'L' fields.
func FormatLoc(loc Locale, tmpl string, args ...Arg) (string, error) {
	var b Buffer
	if err := VFormatTo(&b, loc, tmpl, NewArgs(args...)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Append formats tmpl with args and appends the result to dst.
func Append(dst []byte, tmpl string, args ...Arg) ([]byte, error) {
	b := Buffer{buf: dst}
	err := VFormatTo(&b, nil, tmpl, NewArgs(args...))
	return b.buf, err
}

// Write formats tmpl with args to w in chunks and returns the number of
// bytes produced.
func Write(w io.Writer, tmpl string, args ...Arg) (int, error) {
	cs := WriterSink(w)
	err := VFormatTo(cs, nil, tmpl, NewArgs(args...))
	if ferr := cs.Flush(); err == nil {
		err = ferr
	}
	return cs.Size(), err
}

// FormatToN formats into dst without growing it. It returns the full size
// of the output, which exceeds len(dst) when the output was truncated.
func FormatToN(dst []byte, tmpl string, args ...Arg) (int, error) {
	fb := NewFixedBuffer(dst)
	err := VFormatTo(fb, nil, tmpl, NewArgs(args...))
	return fb.Size(), err
}

// counter is a Sink that only counts.
type counter struct{ n int }

func (c *counter) Append(p []byte)       { c.n += len(p) }
func (c *counter) AppendString(s string) { c.n += len(s) }
func (c *counter) AppendByte(byte)       { c.n++ }
func (c *counter) Size() int             { return c.n }

// FormattedSize returns the number of bytes Format would produce.
func FormattedSize(tmpl string, args ...Arg) (int, error) {
	var c counter
	err := VFormatTo(&c, nil, tmpl, NewArgs(args...))
	return c.n, err
}
