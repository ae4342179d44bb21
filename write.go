package fmtx

import (
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// widthCond measures terminal cells. Every code point counts at least one
// cell, wide and emoji code points count two.
var widthCond = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

func runeWidth(r rune) int {
	if w := widthCond.RuneWidth(r); w > 1 {
		return w
	}
	return 1
}

// displayWidth returns the number of cells s occupies.
func displayWidth(s string) int {
	w := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			w++
			i++
			continue
		}
		r, n := utf8.DecodeRuneInString(s[i:])
		w += runeWidth(r)
		i += n
	}
	return w
}

// truncateRunes cuts s after n code points.
func truncateRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

// padding splits the fill needed to bring content of the given width up to
// the spec width. Odd center padding puts the extra cell on the right.
func padding(s *Spec, def Alignment, width int) (left, right int) {
	if s.Width <= width {
		return 0, 0
	}
	pad := s.Width - width
	align := s.Align
	if align == AlignNone {
		align = def
	}
	switch align {
	case AlignLeft:
		return 0, pad
	case AlignCenter:
		left = pad / 2
		return left, pad - left
	default:
		return pad, 0
	}
}

// writeFill writes the fill n times; an empty fill is a space.
func writeFill(out Sink, fill string, n int) {
	if n <= 0 {
		return
	}
	if len(fill) <= 1 {
		c := byte(' ')
		if fill != "" {
			c = fill[0]
		}
		writeRepeat(out, c, n)
		return
	}
	for ; n > 0; n-- {
		out.AppendString(fill)
	}
}

const spaces = "                                "

func writeRepeat(out Sink, c byte, n int) {
	if c == ' ' {
		for n > len(spaces) {
			out.AppendString(spaces)
			n -= len(spaces)
		}
		out.AppendString(spaces[:n])
		return
	}
	for ; n > 0; n-- {
		out.AppendByte(c)
	}
}

// writePadded writes body surrounded by the fill the spec asks for.
func (c *Context) writePadded(body string, width int, def Alignment) {
	left, right := padding(&c.spec, def, width)
	writeFill(c.out, c.spec.Fill, left)
	c.out.AppendString(body)
	writeFill(c.out, c.spec.Fill, right)
}

func (c *Context) writeString(s string) {
	if c.spec.Type == '?' {
		// Debug output escapes the whole string; precision does not cut it.
		esc := appendQuoted(c.scratch[:0], s, '"')
		c.writePadded(string(esc), displayWidth(string(esc)), AlignLeft)
		return
	}
	if c.spec.Precision >= 0 {
		s = truncateRunes(s, c.spec.Precision)
	}
	c.writePadded(s, displayWidth(s), AlignLeft)
}

func (c *Context) writeChar(r rune) {
	if c.spec.Type == '?' {
		esc := appendQuoted(c.scratch[:0], string(r), '\'')
		c.writePadded(string(esc), displayWidth(string(esc)), AlignLeft)
		return
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	c.writePadded(string(buf[:n]), runeWidth(r), AlignLeft)
}

func (c *Context) writeBool(b bool) {
	switch c.spec.Type {
	case 0, 's':
		if b {
			c.writePadded("true", 4, AlignLeft)
		} else {
			c.writePadded("false", 5, AlignLeft)
		}
	default:
		var v uint64
		if b {
			v = 1
		}
		c.writeInt(v, false)
	}
}

func (c *Context) writePointer(p uint64) {
	var buf intBuf
	i := formatBase2e(&buf, p, 4, false)
	i -= 2
	buf[i], buf[i+1] = '0', 'x'
	c.writePadded(string(buf[i:]), len(buf)-i, AlignRight)
}

// appendQuoted appends s between quote characters, escaping control
// characters, non-printable code points, backslashes and the quote itself.
// Invalid UTF-8 bytes are written as \x escapes.
func appendQuoted(dst []byte, s string, quote byte) []byte {
	dst = append(dst, quote)
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && n <= 1 {
			dst = appendEscape(dst, 'x', uint32(s[i]), 2)
			i++
			continue
		}
		i += n
		switch {
		case r == '\n':
			dst = append(dst, '\\', 'n')
		case r == '\r':
			dst = append(dst, '\\', 'r')
		case r == '\t':
			dst = append(dst, '\\', 't')
		case r == '\\', r == rune(quote):
			dst = append(dst, '\\', byte(r))
		case unicode.IsPrint(r):
			dst = utf8.AppendRune(dst, r)
		case r < 0x100:
			dst = appendEscape(dst, 'x', uint32(r), 2)
		case r < 0x10000:
			dst = appendEscape(dst, 'u', uint32(r), 4)
		default:
			dst = appendEscape(dst, 'U', uint32(r), 8)
		}
	}
	return append(dst, quote)
}

func appendEscape(dst []byte, prefix byte, cp uint32, width int) []byte {
	dst = append(dst, '\\', prefix)
	for shift := (width - 1) * 4; shift >= 0; shift -= 4 {
		dst = append(dst, lowerDigits[(cp>>uint(shift))&0xf])
	}
	return dst
}
