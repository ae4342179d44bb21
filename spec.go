package fmtx

import (
	"math"
	"unicode/utf8"

	"fortio.org/safecast"
)

// Alignment controls where fill goes around a formatted value.
type Alignment uint8

const (
	AlignNone   Alignment = iota // the kind's default
	AlignLeft                    // '<'
	AlignRight                   // '>'
	AlignCenter                  // '^'
	// AlignNumeric pads with zeros between the sign or base prefix and the
	// digits. It is selected by the '0' flag.
	AlignNumeric
)

// Sign controls the sign printed for non-negative numbers.
type Sign uint8

const (
	SignNone  Sign = iota // not given
	SignMinus             // '-'
	SignPlus              // '+'
	SignSpace             // ' '
)

// Spec is the parsed form of the text after ':' in a replacement field:
//
//	[[fill]align][sign]["#"]["0"][width]["." precision]["L"][type]
type Spec struct {
	Fill      string // one code point; empty means a space
	Align     Alignment
	Sign      Sign
	Alt       bool
	Zero      bool
	Width     int
	Precision int // -1 when absent
	Type      byte
	Localized bool

	width argRef
	prec  argRef
}

type refKind uint8

const (
	refNone refKind = iota
	refIndex
	refName
)

// argRef points at an argument by position or name.
type argRef struct {
	kind  refKind
	index int
	name  string
	pos   int
}

// idSource hands out argument indexes while enforcing that automatic and
// manual indexing are not mixed.
type idSource interface {
	nextID(pos int) (int, error)
	manualID(pos int) error
}

type specState uint8

const (
	stateStart specState = iota
	stateAlign
	stateSign
	stateHash
	stateZero
	stateWidth
	statePrecision
	stateLocale
)

func alignOf(c byte) Alignment {
	switch c {
	case '<':
		return AlignLeft
	case '>':
		return AlignRight
	case '^':
		return AlignCenter
	}
	return AlignNone
}

func signOf(c byte) Sign {
	switch c {
	case '+':
		return SignPlus
	case ' ':
		return SignSpace
	}
	return SignMinus
}

func isPresentation(c byte) bool {
	switch c {
	case 'd', 'x', 'X', 'o', 'b', 'B', 'c',
		'a', 'A', 'e', 'E', 'f', 'F', 'g', 'G', '%',
		's', 'p', '?':
		return true
	}
	return false
}

// parseSpec parses the spec starting at t[i] and stops at the first
// top-level '}' or at the end of t, returning the stop position. It checks
// grammar only; validate checks the result against an argument kind.
func parseSpec(t string, i int, ids idSource) (Spec, int, error) {
	s := Spec{Precision: -1}
	st := stateStart
	enter := func(next specState, pos int) error {
		if st >= next {
			return formatErr(ErrInvalidSpec, pos, "invalid format specifier")
		}
		st = next
		return nil
	}
	for i < len(t) {
		c := t[i]
		if c == '}' {
			return s, i, nil
		}
		// A code point followed by an align character is a fill.
		r, n := utf8.DecodeRuneInString(t[i:])
		if i+n < len(t) && alignOf(t[i+n]) != AlignNone {
			if c == '{' {
				return s, i, formatErr(ErrInvalidSpec, i, "invalid fill character '{'")
			}
			if err := enter(stateAlign, i); err != nil {
				return s, i, err
			}
			s.Fill = t[i : i+n]
			if r == ' ' {
				s.Fill = ""
			}
			s.Align = alignOf(t[i+n])
			i += n + 1
			continue
		}
		var err error
		switch {
		case alignOf(c) != AlignNone:
			err = enter(stateAlign, i)
			s.Align = alignOf(c)
			i++
		case c == '+' || c == '-' || c == ' ':
			err = enter(stateSign, i)
			s.Sign = signOf(c)
			i++
		case c == '#':
			err = enter(stateHash, i)
			s.Alt = true
			i++
		case c == '0':
			err = enter(stateZero, i)
			s.Zero = true
			if s.Align == AlignNone {
				s.Align = AlignNumeric
				s.Fill = "0"
			}
			i++
		case ('1' <= c && c <= '9') || c == '{':
			if err = enter(stateWidth, i); err == nil {
				s.Width, s.width, i, err = parseCount(t, i, ids)
			}
		case c == '.':
			if err = enter(statePrecision, i); err == nil {
				i++
				if i >= len(t) || (!isDigit(t[i]) && t[i] != '{') {
					return s, i, formatErr(ErrInvalidSpec, i, "missing precision specifier")
				}
				s.Precision, s.prec, i, err = parseCount(t, i, ids)
			}
		case c == 'L':
			err = enter(stateLocale, i)
			s.Localized = true
			i++
		case isPresentation(c):
			s.Type = c
			return s, i + 1, nil
		default:
			err = formatErr(ErrInvalidSpec, i, "invalid format specifier")
		}
		if err != nil {
			return s, i, err
		}
	}
	return s, i, nil
}

// parseCount parses a literal count or a {ref} for width or precision.
// A reference leaves the value at -1 for later resolution.
func parseCount(t string, i int, ids idSource) (int, argRef, int, error) {
	if t[i] != '{' {
		v, next, err := parseNonNegative(t, i)
		return v, argRef{}, next, err
	}
	open := i
	i++
	if i >= len(t) {
		return 0, argRef{}, i, formatErr(ErrInvalidTemplate, open, "invalid format string")
	}
	var ref argRef
	if c := t[i]; c == '}' || c == ':' {
		id, err := ids.nextID(i)
		if err != nil {
			return 0, argRef{}, i, err
		}
		ref = argRef{kind: refIndex, index: id, pos: i}
	} else {
		var err error
		ref, i, err = parseArgID(t, i, ids)
		if err != nil {
			return 0, argRef{}, i, err
		}
	}
	if i >= len(t) || t[i] != '}' {
		return 0, argRef{}, i, formatErr(ErrInvalidTemplate, open, "invalid format string")
	}
	return -1, ref, i + 1, nil
}

// parseNonNegative parses decimal digits into a value that fits in int32.
func parseNonNegative(t string, i int) (int, int, error) {
	start := i
	var v uint64
	for i < len(t) && isDigit(t[i]) {
		if v <= math.MaxInt32 {
			v = v*10 + uint64(t[i]-'0')
		}
		i++
	}
	n, err := safecast.Conv[int32](v)
	if err != nil {
		return 0, i, formatErr(ErrInvalidSpec, start, "number is too big")
	}
	return int(n), i, nil
}

// parseArgID parses a positional index or an identifier at t[i].
func parseArgID(t string, i int, ids idSource) (argRef, int, error) {
	start := i
	c := t[i]
	if isDigit(c) {
		idx := 0
		if c == '0' {
			i++
		} else {
			var err error
			if idx, i, err = parseNonNegative(t, i); err != nil {
				return argRef{}, i, err
			}
		}
		if i >= len(t) || (t[i] != '}' && t[i] != ':') {
			return argRef{}, i, formatErr(ErrInvalidTemplate, start, "invalid format string")
		}
		if err := ids.manualID(start); err != nil {
			return argRef{}, i, err
		}
		return argRef{kind: refIndex, index: idx, pos: start}, i, nil
	}
	if !isNameStart(c) {
		return argRef{}, i, formatErr(ErrInvalidTemplate, start, "invalid format string")
	}
	i++
	for i < len(t) && (isNameStart(t[i]) || isDigit(t[i])) {
		i++
	}
	return argRef{kind: refName, name: t[start:i], pos: start}, i, nil
}

// validate checks a parsed spec against the kind of its argument.
func (s *Spec) validate(k Kind, pos int) error {
	if k.unchecked() {
		return nil
	}
	invalid := func() error { return formatErr(ErrInvalidSpec, pos, "invalid format specifier") }
	if k == KindChar && (s.Type == 0 || s.Type == 'c' || s.Type == '?') &&
		(s.Align == AlignNumeric || s.Sign != SignNone || s.Alt) {
		return formatErr(ErrInvalidSpec, pos, "invalid format specifier for char")
	}
	if s.Sign != SignNone && k != KindInt && !k.isFloat() {
		return invalid()
	}
	if s.Alt && !k.isArithmetic() {
		return invalid()
	}
	if s.Zero && !k.isArithmetic() {
		return formatErr(ErrInvalidSpec, pos, "format specifier requires numeric argument")
	}
	if (s.Precision >= 0 || s.prec.kind != refNone) && !k.isFloat() && k != KindString {
		return formatErr(ErrInvalidSpec, pos, "precision not allowed for this argument type")
	}
	if s.Localized && !k.isArithmetic() {
		return invalid()
	}
	ok := true
	switch s.Type {
	case 0:
	case 'd', 'x', 'X', 'o', 'b', 'B':
		ok = k.isIntegral()
	case 'c':
		ok = k.isIntegral() && k != KindBool
	case 'a', 'A', 'e', 'E', 'f', 'F', 'g', 'G', '%':
		ok = k.isFloat()
	case 's':
		ok = k == KindBool || k == KindString
	case 'p':
		ok = k == KindPointer
	case '?':
		ok = k == KindChar || k == KindString
	default:
		ok = false
	}
	if !ok {
		return invalid()
	}
	return nil
}

// lookup resolves a reference against args.
func (r argRef) lookup(args Args) (Arg, int, error) {
	if r.kind == refName {
		if a, i, ok := args.Lookup(r.name); ok {
			return a, i, nil
		}
	} else if a, ok := args.Get(r.index); ok {
		return a, r.index, nil
	}
	return Arg{}, -1, formatErr(ErrArgNotFound, r.pos, "argument not found")
}

// dynamicValue reads a width or precision from the referenced argument.
func dynamicValue(a Arg, what string, pos int) (int, error) {
	var n int32
	var err error
	switch a.kind {
	case KindInt:
		v := int64(a.bits)
		if v < 0 {
			return 0, formatErr(ErrDynamicSpec, pos, "negative "+what)
		}
		n, err = safecast.Conv[int32](v)
	case KindUint:
		n, err = safecast.Conv[int32](a.bits)
	default:
		return 0, formatErr(ErrDynamicSpec, pos, what+" is not integer")
	}
	if err != nil {
		return 0, formatErr(ErrDynamicSpec, pos, "number is too big")
	}
	return int(n), nil
}

// resolve fills in width and precision references from args.
func (s *Spec) resolve(args Args) error {
	if s.width.kind != refNone {
		a, _, err := s.width.lookup(args)
		if err != nil {
			return err
		}
		if s.Width, err = dynamicValue(a, "width", s.width.pos); err != nil {
			return err
		}
	}
	if s.prec.kind != refNone {
		a, _, err := s.prec.lookup(args)
		if err != nil {
			return err
		}
		if s.Precision, err = dynamicValue(a, "precision", s.prec.pos); err != nil {
			return err
		}
	}
	return nil
}

// noDynamic rejects width and precision references.
type noDynamic struct{}

func (noDynamic) nextID(pos int) (int, error) {
	return 0, formatErr(ErrDynamicSpec, pos, "dynamic width or precision needs an argument list")
}

func (noDynamic) manualID(pos int) error {
	return formatErr(ErrDynamicSpec, pos, "dynamic width or precision needs an argument list")
}

// ParseSpec parses a standalone spec such as ">8.3f". Dynamic width and
// precision are rejected. Custom SpecParser implementations can use it to
// handle the standard part of their grammar.
func ParseSpec(spec string) (Spec, error) {
	s, end, err := parseSpec(spec, 0, noDynamic{})
	if err != nil {
		return Spec{}, err
	}
	if end != len(spec) {
		return Spec{}, formatErr(ErrInvalidSpec, end, "unknown format specifier")
	}
	return s, nil
}

// ParseSpecFor is ParseSpec followed by the legality checks for kind k.
func ParseSpecFor(spec string, k Kind) (Spec, error) {
	s, err := ParseSpec(spec)
	if err != nil {
		return Spec{}, err
	}
	if err := s.validate(k, 0); err != nil {
		return Spec{}, err
	}
	return s, nil
}
