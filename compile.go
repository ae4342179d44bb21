package fmtx

import (
	"errors"
	"fmt"
)

// Template is a template checked against argument prototypes. It is safe for
// concurrent use.
type Template struct {
	src    string
	segs   []segment
	params []Kind
	size   int
}

// segment is a literal run or a replacement field. parsed means spec holds
// the standard grammar with pinned references; checked means it was also
// validated against the prototype kind.
type segment struct {
	lit     string
	field   bool
	index   int
	spec    Spec
	raw     string
	rawPos  int
	parsed  bool
	checked bool
}

// compiler is the fieldHandler used by Compile.
type compiler struct {
	scanner
	params Args
	segs   []segment
}

func (cp *compiler) text(s string) {
	if n := len(cp.segs); n > 0 && !cp.segs[n-1].field {
		cp.segs[n-1].lit += s
		return
	}
	cp.segs = append(cp.segs, segment{lit: s})
}

func (cp *compiler) field(ref argRef, i int) (int, error) {
	proto, idx, err := ref.lookup(cp.params)
	if err != nil {
		return 0, err
	}
	seg := segment{field: true, index: idx, spec: Spec{Precision: -1}, parsed: true, checked: true}
	t := cp.tmpl
	if t[i] == '}' {
		cp.segs = append(cp.segs, seg)
		return i + 1, nil
	}
	i++
	saved := cp.scanner
	spec, end, err := parseSpec(t, i, &cp.scanner)
	if err == nil && (end >= len(t) || t[end] != '}') {
		err = formatErr(ErrInvalidSpec, end, "unknown format specifier")
	}
	if err != nil {
		if !proto.kind.unchecked() || !errors.Is(err, ErrInvalidSpec) {
			return 0, err
		}
		// Not the standard grammar. A SpecParser may still accept it, and
		// it consumes no argument ids.
		cp.scanner = saved
		end = specEnd(t, i)
		if end < 0 {
			return 0, formatErr(ErrInvalidSpec, i, "unknown format specifier")
		}
		seg.raw, seg.rawPos, seg.parsed, seg.checked = t[i:end], i, false, false
		cp.segs = append(cp.segs, seg)
		return end + 1, nil
	}
	if err := spec.validate(proto.kind, i); err != nil {
		return 0, err
	}
	if err := cp.checkDynamic(spec.width, "width"); err != nil {
		return 0, err
	}
	if err := cp.checkDynamic(spec.prec, "precision"); err != nil {
		return 0, err
	}
	spec.width = cp.pin(spec.width)
	spec.prec = cp.pin(spec.prec)
	seg.spec, seg.raw, seg.rawPos = spec, t[i:end], i
	seg.checked = !proto.kind.unchecked()
	cp.segs = append(cp.segs, seg)
	return end + 1, nil
}

// checkDynamic verifies that a width or precision reference names an
// integer prototype.
func (cp *compiler) checkDynamic(r argRef, what string) error {
	if r.kind == refNone {
		return nil
	}
	a, _, err := r.lookup(cp.params)
	if err != nil {
		return err
	}
	switch a.kind {
	case KindInt, KindUint, KindNone:
		return nil
	}
	return formatErr(ErrDynamicSpec, r.pos, what+" is not integer")
}

// pin turns a named reference into a positional one.
func (cp *compiler) pin(r argRef) argRef {
	if r.kind != refName {
		return r
	}
	_, idx, _ := r.lookup(cp.params)
	return argRef{kind: refIndex, index: idx, pos: r.pos}
}

// Compile parses tmpl and checks every field against the kinds of params.
// Only the kinds and names of params matter; Param builds value-less
// prototypes. Fields whose prototype is KindNone or KindCustom still take
// their nested width and precision references from the argument list, but
// are checked against the actual argument when formatted. A spec outside
// the standard grammar is kept as text for a custom SpecParser.
func Compile(tmpl string, params ...Arg) (*Template, error) {
	cp := &compiler{scanner: scanner{tmpl: tmpl}, params: NewArgs(params...)}
	if err := cp.scan(cp); err != nil {
		return nil, err
	}
	t := &Template{src: tmpl, segs: cp.segs, params: make([]Kind, len(params))}
	for i, p := range params {
		t.params[i] = p.kind
	}
	for _, s := range t.segs {
		if s.field {
			t.size += 8
		} else {
			t.size += len(s.lit)
		}
	}
	return t, nil
}

// MustCompile is Compile that panics with a *ContractViolation on error. It
// is meant for package-level templates.
func MustCompile(tmpl string, params ...Arg) *Template {
	t, err := Compile(tmpl, params...)
	if err != nil {
		violate("compile %q: %v", tmpl, err)
	}
	return t
}

// Check reports whether tmpl is valid for params.
func Check(tmpl string, params ...Arg) error {
	_, err := Compile(tmpl, params...)
	return err
}

// String returns the source template.
func (t *Template) String() string { return t.src }

// Kinds returns the prototype kinds the template was compiled with.
func (t *Template) Kinds() []Kind { return append([]Kind(nil), t.params...) }

func (t *Template) match(args Args) error {
	if args.Len() != len(t.params) {
		return formatErr(ErrKindMismatch, 0,
			fmt.Sprintf("template takes %d arguments, got %d", len(t.params), args.Len()))
	}
	for i, k := range t.params {
		a, _ := args.Get(i)
		if k != KindNone && a.kind != k {
			return formatErr(ErrKindMismatch, 0,
				fmt.Sprintf("argument %d: want %s, got %s", i, k, a.kind))
		}
	}
	return nil
}

// VFormatTo writes the template with args to out, using loc for 'L' fields.
// The arguments must match the compiled kinds position by position.
func (t *Template) VFormatTo(out Sink, loc Locale, args Args) error {
	if err := t.match(args); err != nil {
		return err
	}
	if loc == nil {
		loc = classic
	}
	var c Context
	for i := range t.segs {
		seg := &t.segs[i]
		if !seg.field {
			out.AppendString(seg.lit)
			continue
		}
		a, _ := args.Get(seg.index)
		c.reset(out, loc, noDynamic{}, args)
		c.spec, c.raw, c.rawPos, c.parsed = seg.spec, seg.raw, seg.rawPos, seg.parsed
		switch {
		case seg.parsed:
			if err := c.spec.resolve(args); err != nil {
				return err
			}
			if !seg.checked && a.kind != KindCustom {
				if err := c.spec.validate(a.kind, seg.rawPos); err != nil {
					return err
				}
			}
		case a.kind != KindCustom:
			if err := c.parseRaw(); err != nil {
				return err
			}
			if err := c.spec.validate(a.kind, seg.rawPos); err != nil {
				return err
			}
		}
		if err := c.writeArg(a); err != nil {
			return err
		}
	}
	return nil
}

// FormatTo writes the template with args to out.
func (t *Template) FormatTo(out Sink, args ...Arg) error {
	return t.VFormatTo(out, nil, NewArgs(args...))
}

// Format returns the template formatted with args.
func (t *Template) Format(args ...Arg) (string, error) {
	b := Buffer{buf: make([]byte, 0, t.size)}
	if err := t.VFormatTo(&b, nil, NewArgs(args...)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Append appends the template formatted with args to dst.
func (t *Template) Append(dst []byte, args ...Arg) ([]byte, error) {
	b := Buffer{buf: dst}
	err := t.VFormatTo(&b, nil, NewArgs(args...))
	return b.buf, err
}

// Size returns the number of bytes Format would produce for args.
func (t *Template) Size(args ...Arg) (int, error) {
	var c counter
	err := t.VFormatTo(&c, nil, NewArgs(args...))
	return c.n, err
}
