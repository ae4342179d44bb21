package fmtx

import "unicode/utf8"

const (
	digitPairs = "00010203040506070809" +
		"10111213141516171819" +
		"20212223242526272829" +
		"30313233343536373839" +
		"40414243444546474849" +
		"50515253545556575859" +
		"60616263646566676869" +
		"70717273747576777879" +
		"80818283848586878889" +
		"90919293949596979899"
	lowerDigits = "0123456789abcdef"
	upperDigits = "0123456789ABCDEF"
)

// intBuf fits a 64-bit value in base 2.
type intBuf [64]byte

// formatDecimal writes u right-aligned into buf, two digits per division,
// and returns the index of the first digit.
func formatDecimal(buf *intBuf, u uint64) int {
	i := len(buf)
	for u >= 100 {
		q := u / 100
		r := (u - q*100) * 2
		i -= 2
		buf[i] = digitPairs[r]
		buf[i+1] = digitPairs[r+1]
		u = q
	}
	if u >= 10 {
		r := u * 2
		i -= 2
		buf[i] = digitPairs[r]
		buf[i+1] = digitPairs[r+1]
		return i
	}
	i--
	buf[i] = byte('0' + u)
	return i
}

// formatBase2e writes u in base 1<<shift (2, 8 or 16).
func formatBase2e(buf *intBuf, u uint64, shift uint, upper bool) int {
	digits := lowerDigits
	if upper {
		digits = upperDigits
	}
	mask := uint64(1)<<shift - 1
	i := len(buf)
	for {
		i--
		buf[i] = digits[u&mask]
		u >>= shift
		if u == 0 {
			return i
		}
	}
}

// appendDecimal appends the decimal digits of u.
func appendDecimal(dst []byte, u uint64) []byte {
	var buf intBuf
	return append(dst, buf[formatDecimal(&buf, u):]...)
}

// appendGrouped appends digits with sep inserted according to grouping.
// Group sizes are read right to left; the last size repeats and a size of
// zero or less stops grouping.
func appendGrouped(dst, digits []byte, sep rune, grouping []int) []byte {
	if sep == 0 || len(grouping) == 0 {
		return append(dst, digits...)
	}
	var cutBuf [32]int
	cuts := cutBuf[:0]
	pos := len(digits)
	for gi := 0; ; {
		g := grouping[gi]
		if g <= 0 || pos-g <= 0 {
			break
		}
		pos -= g
		cuts = append(cuts, pos)
		if gi < len(grouping)-1 {
			gi++
		}
	}
	prev := 0
	for j := len(cuts) - 1; j >= 0; j-- {
		dst = append(dst, digits[prev:cuts[j]]...)
		dst = utf8.AppendRune(dst, sep)
		prev = cuts[j]
	}
	return append(dst, digits[prev:]...)
}

// writeInt writes an integer magnitude with its sign, base prefix, optional
// locale grouping and padding.
func (c *Context) writeInt(abs uint64, neg bool) {
	s := &c.spec
	var prefix [3]byte
	np := 0
	switch {
	case neg:
		prefix[np] = '-'
		np++
	case s.Sign == SignPlus:
		prefix[np] = '+'
		np++
	case s.Sign == SignSpace:
		prefix[np] = ' '
		np++
	}

	var buf intBuf
	var i int
	switch s.Type {
	case 'x', 'X':
		if s.Alt {
			prefix[np], prefix[np+1] = '0', s.Type
			np += 2
		}
		i = formatBase2e(&buf, abs, 4, s.Type == 'X')
	case 'b', 'B':
		if s.Alt {
			prefix[np], prefix[np+1] = '0', s.Type
			np += 2
		}
		i = formatBase2e(&buf, abs, 1, false)
	case 'o':
		if s.Alt && abs != 0 {
			prefix[np] = '0'
			np++
		}
		i = formatBase2e(&buf, abs, 3, false)
	default:
		i = formatDecimal(&buf, abs)
	}

	body := buf[i:]
	width := np + len(body)
	if s.Localized {
		body = appendGrouped(c.scratch[:0], body, c.loc.ThousandsSep(), c.loc.Grouping())
		width = np + utf8.RuneCount(body)
	}

	if s.Align == AlignNumeric {
		c.out.Append(prefix[:np])
		if zeros := s.Width - width; zeros > 0 {
			writeRepeat(c.out, '0', zeros)
		}
		c.out.Append(body)
		return
	}
	left, right := padding(s, AlignRight, width)
	writeFill(c.out, s.Fill, left)
	c.out.Append(prefix[:np])
	c.out.Append(body)
	writeFill(c.out, s.Fill, right)
}

// writeSigned writes v honouring the 'c' presentation.
func (c *Context) writeSigned(v int64) {
	if c.spec.Type == 'c' {
		c.writeChar(rune(v))
		return
	}
	abs := uint64(v)
	if v < 0 {
		abs = -abs
	}
	c.writeInt(abs, v < 0)
}

func (c *Context) writeUnsigned(v uint64) {
	if c.spec.Type == 'c' {
		c.writeChar(rune(v))
		return
	}
	c.writeInt(v, false)
}
