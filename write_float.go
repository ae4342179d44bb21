package fmtx

import (
	"math"
	"unicode/utf8"
)

// Largest decimal exponent printed in fixed notation by the shortest
// general format.
const (
	expUpper64 = 16
	expUpper32 = 7
)

// floatLayout carries the presentation decisions for one float.
type floatLayout struct {
	mode     byte // 'e', 'f' or 'g'
	prec     int  // significant digits for e/g, fraction digits for f, -1 for shortest
	alt      bool // keep the point and trailing zeros
	upper    bool
	expUpper int
	point    rune
	sep      rune
	grouping []int
}

func isUpperType(t byte) bool {
	switch t {
	case 'A', 'E', 'F', 'G':
		return true
	}
	return false
}

// writeFloat formats v. f32 marks values that came from a float32, which
// selects the float32 shortest search and exponent threshold.
func (c *Context) writeFloat(v float64, f32 bool) {
	s := c.spec
	var sign byte
	switch {
	case math.Signbit(v):
		sign = '-'
	case s.Sign == SignPlus:
		sign = '+'
	case s.Sign == SignSpace:
		sign = ' '
	}
	upper := isUpperType(s.Type)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		c.writeNonFinite(sign, math.IsNaN(v), upper, &s)
		return
	}
	v = math.Abs(v)

	if s.Align == AlignNumeric && sign != 0 {
		c.out.AppendByte(sign)
		sign = 0
		if s.Width > 0 {
			s.Width--
		}
	}

	body := c.scratch[:0]
	switch s.Type {
	case 'a', 'A':
		body = appendHexFloat(body, v, s.Precision, s.Alt, upper)
		if s.Align == AlignNumeric {
			// Zero padding goes after the 0x prefix.
			width := len(body)
			if sign != 0 {
				width++
			}
			if sign != 0 {
				c.out.AppendByte(sign)
			}
			c.out.Append(body[:2])
			if zeros := s.Width - width; zeros > 0 {
				writeRepeat(c.out, '0', zeros)
			}
			c.out.Append(body[2:])
			return
		}
	case '%':
		body = c.appendFixedOrGeneral(body, v*100, f32, &s)
		body = append(body, '%')
	default:
		body = c.appendFixedOrGeneral(body, v, f32, &s)
	}

	width := len(body)
	if s.Localized {
		width = utf8.RuneCount(body)
	}
	if sign != 0 {
		width++
	}
	left, right := padding(&s, AlignRight, width)
	writeFill(c.out, s.Fill, left)
	if sign != 0 {
		c.out.AppendByte(sign)
	}
	c.out.Append(body)
	writeFill(c.out, s.Fill, right)
}

func (c *Context) writeNonFinite(sign byte, nan, upper bool, s *Spec) {
	var text string
	switch {
	case nan && upper:
		text = "NAN"
	case nan:
		text = "nan"
	case upper:
		text = "INF"
	default:
		text = "inf"
	}
	fill := s.Fill
	if fill == "0" {
		fill = " "
	}
	width := len(text)
	if sign != 0 {
		width++
	}
	left, right := padding(s, AlignRight, width)
	writeFill(c.out, fill, left)
	if sign != 0 {
		c.out.AppendByte(sign)
	}
	c.out.AppendString(text)
	writeFill(c.out, fill, right)
}

// appendFixedOrGeneral produces the digits of a non-negative finite v for
// the decimal presentations and lays them out.
func (c *Context) appendFixedOrGeneral(dst []byte, v float64, f32 bool, s *Spec) []byte {
	l := floatLayout{
		mode:     'g',
		prec:     s.Precision,
		alt:      s.Alt,
		upper:    isUpperType(s.Type),
		expUpper: expUpper64,
		point:    '.',
	}
	if f32 {
		l.expUpper = expUpper32
	}
	if s.Localized {
		l.point = c.loc.DecimalPoint()
		l.sep = c.loc.ThousandsSep()
		l.grouping = c.loc.Grouping()
	}

	if l.prec < 0 && s.Type == 0 {
		var sig uint64
		exp := 0
		switch {
		case v == 0:
		case f32:
			sig, exp = shortest32(float32(v))
		default:
			sig, exp = shortest64(v)
		}
		var digits [24]byte
		return l.appendTo(dst, appendDecimal(digits[:0], sig), exp)
	}

	if l.prec < 0 {
		l.prec = 6
	}
	switch s.Type {
	case 'e', 'E':
		l.mode = 'e'
		l.prec++
		if s.Precision != 0 {
			l.alt = true
		}
	case 'f', 'F', '%':
		l.mode = 'f'
		if s.Precision != 0 {
			l.alt = true
		}
	default:
		if l.prec == 0 {
			l.prec = 1
		}
	}

	var d decimal
	d.setFloat64(v)
	var digits []byte
	if l.mode == 'f' {
		d.round(d.dp + l.prec)
		if d.nd == 0 {
			digits = append(c.digits[:0], '0')
		} else {
			digits = d.appendDigits(c.digits[:0], d.dp+l.prec)
		}
		return l.appendTo(dst, digits, -l.prec)
	}

	d.round(l.prec)
	exp := 0
	keepZeros := l.alt || l.mode == 'e'
	switch {
	case d.nd == 0 && keepZeros:
		digits = d.appendDigits(c.digits[:0], l.prec)
		exp = 1 - l.prec
	case d.nd == 0:
		digits = append(c.digits[:0], '0')
	case keepZeros:
		digits = d.appendDigits(c.digits[:0], l.prec)
		exp = d.dp - l.prec
	default:
		digits = append(c.digits[:0], d.d[:d.nd]...)
		exp = d.dp - d.nd
	}
	return l.appendTo(dst, digits, exp)
}

// appendTo lays out value = digits * 10^exp in fixed or exponent notation.
func (l *floatLayout) appendTo(dst, digits []byte, exp int) []byte {
	n := len(digits)
	outExp := exp + n - 1
	useExp := l.mode == 'e'
	if l.mode == 'g' {
		upper := l.expUpper
		if l.prec > 0 {
			upper = l.prec
		}
		useExp = outExp < -4 || outExp >= upper
	}

	if useExp {
		dst = append(dst, digits[0])
		if l.alt || n > 1 {
			dst = utf8.AppendRune(dst, l.point)
			dst = append(dst, digits[1:]...)
		}
		if l.alt {
			for i := n; i < l.prec; i++ {
				dst = append(dst, '0')
			}
		}
		if l.upper {
			dst = append(dst, 'E')
		} else {
			dst = append(dst, 'e')
		}
		return appendExponent(dst, outExp)
	}

	intDigits := exp + n
	switch {
	case exp >= 0:
		dst = l.appendInteger(dst, digits, exp)
		if l.alt {
			dst = utf8.AppendRune(dst, l.point)
			for i := intDigits; i < l.prec; i++ {
				dst = append(dst, '0')
			}
		}
	case intDigits > 0:
		dst = l.appendInteger(dst, digits[:intDigits], 0)
		dst = utf8.AppendRune(dst, l.point)
		dst = append(dst, digits[intDigits:]...)
		if l.alt && l.mode != 'f' {
			for i := n; i < l.prec; i++ {
				dst = append(dst, '0')
			}
		}
	default:
		dst = append(dst, '0')
		dst = utf8.AppendRune(dst, l.point)
		for i := intDigits; i < 0; i++ {
			dst = append(dst, '0')
		}
		dst = append(dst, digits...)
	}
	return dst
}

// appendInteger writes digits followed by zeros extra zeros, grouped when
// the layout carries a separator.
func (l *floatLayout) appendInteger(dst, digits []byte, zeros int) []byte {
	if l.sep == 0 || len(l.grouping) == 0 {
		dst = append(dst, digits...)
		for i := 0; i < zeros; i++ {
			dst = append(dst, '0')
		}
		return dst
	}
	all := make([]byte, 0, len(digits)+zeros)
	all = append(all, digits...)
	for i := 0; i < zeros; i++ {
		all = append(all, '0')
	}
	return appendGrouped(dst, all, l.sep, l.grouping)
}

// appendExponent writes a signed exponent with at least two digits.
func appendExponent(dst []byte, e int) []byte {
	if e < 0 {
		dst = append(dst, '-')
		e = -e
	} else {
		dst = append(dst, '+')
	}
	if e < 10 {
		dst = append(dst, '0')
	}
	return appendDecimal(dst, uint64(e))
}

// appendHexFloat writes v in hexadecimal scientific notation. A
// non-negative prec rounds the fraction to prec hex digits, half up.
func appendHexFloat(dst []byte, v float64, prec int, alt, upper bool) []byte {
	digits := lowerDigits
	x, p := byte('x'), byte('p')
	if upper {
		digits = upperDigits
		x, p = 'X', 'P'
	}
	b := math.Float64bits(v)
	f := b & (1<<52 - 1)
	e := int(b>>52) & 0x7ff
	switch {
	case v == 0:
		e = 0
	case e == 0:
		e = -1022
	default:
		f |= 1 << 52
		e -= 1023
	}

	const fracDigits = 13
	printed := fracDigits
	if prec >= 0 && printed > prec {
		shift := uint(fracDigits-prec-1) * 4
		if (f>>shift)&0xf >= 8 {
			inc := uint64(1) << (shift + 4)
			f += inc
			f &^= inc - 1
		}
		printed = prec
	}

	var xd [fracDigits + 1]byte
	for i := range xd {
		xd[fracDigits-i] = digits[(f>>(4*uint(i)))&0xf]
	}
	for printed > 0 && xd[printed] == '0' {
		printed--
	}

	dst = append(dst, '0', x, xd[0])
	if alt || printed > 0 || printed < prec {
		dst = append(dst, '.')
	}
	dst = append(dst, xd[1:1+printed]...)
	for ; printed < prec; printed++ {
		dst = append(dst, '0')
	}
	dst = append(dst, p)
	if e < 0 {
		dst = append(dst, '-')
		e = -e
	} else {
		dst = append(dst, '+')
	}
	return appendDecimal(dst, uint64(e))
}
