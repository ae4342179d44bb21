package fmtx

import "math"

// maxShift is the largest shift applied in one step so that the running
// value in the shift loops fits in 64 bits.
const maxShift = 60

// decimal is the exact decimal expansion of a binary float:
// value = 0.d[0]d[1]...d[nd-1] * 10^dp. Every float64 fits in 800 digits.
type decimal struct {
	d     [800]byte
	nd    int
	dp    int
	trunc bool // nonzero digits were dropped past the end of d
}

// setFloat64 loads the exact value of |v| for a finite v.
func (a *decimal) setFloat64(v float64) {
	b := math.Float64bits(v)
	exp := int(b>>52) & 0x7ff
	mant := b & (1<<52 - 1)
	if exp == 0 {
		exp = 1
	} else {
		mant |= 1 << 52
	}
	a.assign(mant)
	a.shift(exp - 1075)
}

func (a *decimal) assign(v uint64) {
	var buf intBuf
	i := formatDecimal(&buf, v)
	a.nd = copy(a.d[:], buf[i:])
	a.dp = a.nd
	a.trunc = false
	if v == 0 {
		a.nd = 0
		a.dp = 0
	}
	a.trim()
}

// shift multiplies the value by 2^k.
func (a *decimal) shift(k int) {
	switch {
	case a.nd == 0:
	case k > 0:
		for k > maxShift {
			a.leftShift(maxShift)
			k -= maxShift
		}
		a.leftShift(uint(k))
	case k < 0:
		for k < -maxShift {
			a.rightShift(maxShift)
			k += maxShift
		}
		a.rightShift(uint(-k))
	}
}

// leftShift multiplies by 2^k, producing digits from the least significant
// end into a scratch buffer.
func (a *decimal) leftShift(k uint) {
	var tmp [len(a.d) + 20]byte
	w := len(tmp)
	var n uint64
	for r := a.nd - 1; r >= 0; r-- {
		n += uint64(a.d[r]-'0') << k
		q := n / 10
		w--
		tmp[w] = byte(n-10*q) + '0'
		n = q
	}
	for n > 0 {
		q := n / 10
		w--
		tmp[w] = byte(n-10*q) + '0'
		n = q
	}
	produced := len(tmp) - w
	a.dp += produced - a.nd
	a.nd = copy(a.d[:], tmp[w:])
	for _, c := range tmp[w+a.nd:] {
		if c != '0' {
			a.trunc = true
			break
		}
	}
	a.trim()
}

// rightShift divides by 2^k.
func (a *decimal) rightShift(k uint) {
	r, w := 0, 0
	var n uint64
	for ; n>>k == 0; r++ {
		if r >= a.nd {
			if n == 0 {
				a.nd = 0
				return
			}
			for n>>k == 0 {
				n *= 10
				r++
			}
			break
		}
		n = n*10 + uint64(a.d[r]-'0')
	}
	a.dp -= r - 1

	mask := uint64(1)<<k - 1
	for ; r < a.nd; r++ {
		c := a.d[r]
		dig := n >> k
		n &= mask
		a.d[w] = byte(dig) + '0'
		w++
		n = n*10 + uint64(c-'0')
	}
	for n > 0 {
		dig := n >> k
		n &= mask
		if w < len(a.d) {
			a.d[w] = byte(dig) + '0'
			w++
		} else if dig > 0 {
			a.trunc = true
		}
		n *= 10
	}
	a.nd = w
	a.trim()
}

func (a *decimal) trim() {
	for a.nd > 0 && a.d[a.nd-1] == '0' {
		a.nd--
	}
	if a.nd == 0 {
		a.dp = 0
	}
}

// shouldRoundUp reports whether rounding to nd digits goes up, breaking an
// exact tie toward an even last digit.
func (a *decimal) shouldRoundUp(nd int) bool {
	if nd < 0 || nd >= a.nd {
		return false
	}
	if a.d[nd] == '5' && nd+1 == a.nd {
		if a.trunc {
			return true
		}
		return nd > 0 && (a.d[nd-1]-'0')%2 == 1
	}
	return a.d[nd] >= '5'
}

// round keeps nd significant digits. A negative nd rounds to zero.
func (a *decimal) round(nd int) {
	if nd < 0 {
		a.nd = 0
		a.dp = 0
		return
	}
	if nd >= a.nd {
		return
	}
	if !a.shouldRoundUp(nd) {
		a.nd = nd
		a.trim()
		return
	}
	for i := nd - 1; i >= 0; i-- {
		if a.d[i] < '9' {
			a.d[i]++
			a.nd = i + 1
			return
		}
	}
	// All nines: carry into a new leading digit.
	a.d[0] = '1'
	a.nd = 1
	a.dp++
}

// appendDigits appends the first n digits, padding with zeros past nd.
func (a *decimal) appendDigits(dst []byte, n int) []byte {
	if n <= a.nd {
		return append(dst, a.d[:n]...)
	}
	dst = append(dst, a.d[:a.nd]...)
	for i := a.nd; i < n; i++ {
		dst = append(dst, '0')
	}
	return dst
}
