package fmtx

import (
	"math"
	"math/bits"
)

//go:generate go run ./internal/pow10gen -o shortest_table.go

// floatInfo describes a binary floating-point format for the shortest
// conversion.
type floatInfo struct {
	mantBits uint  // explicit significand bits
	expBits  uint  // exponent field width
	qMin     int64 // exponent of the smallest subnormal
}

var (
	float64Info = floatInfo{mantBits: 52, expBits: 11, qMin: -1074}
	float32Info = floatInfo{mantBits: 23, expBits: 8, qMin: -149}
)

// floorLog10Pow2 returns floor(e * log10(2)) for |e| <= 5456721.
func floorLog10Pow2(e int64) int64 { return (e * 661971961083) >> 41 }

// floorLog10ThreeQuartersPow2 returns floor(log10(3/4 * 2^e)).
func floorLog10ThreeQuartersPow2(e int64) int64 {
	return (e*661971961083 - 274743187321) >> 41
}

// floorLog2Pow10 returns floor(e * log2(10)).
func floorLog2Pow10(e int64) int64 { return (e * 913124641741) >> 38 }

// roundToOdd returns (g * cp) >> 128 with the lowest bit set when any
// discarded bit is set. g is split as g1<<63 | g0.
func roundToOdd(g1, g0, cp uint64) uint64 {
	x1, _ := bits.Mul64(g0, cp)
	y1, y0 := bits.Mul64(g1, cp)
	z := (y0 >> 1) + x1
	vbp := y1 + z>>63
	return vbp | ((z&(1<<63-1))+(1<<63-1))>>63
}

// shortest64 returns the decimal significand and exponent of the shortest
// representation of the positive finite value v that rounds back to v.
func shortest64(v float64) (uint64, int) {
	return float64Info.shortest(math.Float64bits(v))
}

// shortest32 is shortest64 for float32 values.
func shortest32(v float32) (uint64, int) {
	return float32Info.shortest(uint64(math.Float32bits(v)))
}

func (fi floatInfo) shortest(b uint64) (uint64, int) {
	t := b & (1<<fi.mantBits - 1)
	bq := int64(b>>fi.mantBits) & (1<<fi.expBits - 1)
	var f uint64
	var e int
	if bq != 0 {
		mq := -fi.qMin + 1 - bq
		c := 1<<fi.mantBits | t
		if 0 < mq && mq <= int64(fi.mantBits) {
			// Small integers need no search.
			if x := c >> uint(mq); x<<uint(mq) == c {
				return stripZeros(x, 0)
			}
		}
		f, e = fi.toDecimal(-mq, c)
	} else {
		f, e = fi.toDecimal(fi.qMin, t)
	}
	return stripZeros(f, e)
}

func stripZeros(f uint64, e int) (uint64, int) {
	for f != 0 && f%10 == 0 {
		f /= 10
		e++
	}
	return f, e
}

// toDecimal runs the Schubfach search for c * 2^q.
func (fi floatInfo) toDecimal(q int64, c uint64) (uint64, int) {
	out := c & 1
	cb := c << 2
	cbr := cb + 2
	var cbl uint64
	var k int64
	if c != 1<<fi.mantBits || q == fi.qMin {
		cbl = cb - 2
		k = floorLog10Pow2(q)
	} else {
		// Lower boundary is closer at a power of two.
		cbl = cb - 1
		k = floorLog10ThreeQuartersPow2(q)
	}
	h := uint(q + floorLog2Pow10(-k) + 2)

	g := &g128[k-pow10Min]
	g1, g0 := g[0], g[1]
	vb := roundToOdd(g1, g0, cb<<h)
	vbl := roundToOdd(g1, g0, cbl<<h)
	vbr := roundToOdd(g1, g0, cbr<<h)

	s := vb >> 2
	if s >= 10 {
		sp10 := 10 * (s / 10)
		tp10 := sp10 + 10
		upin := vbl+out <= sp10<<2
		wpin := tp10<<2+out <= vbr
		if upin != wpin {
			if upin {
				return sp10, int(k)
			}
			return tp10, int(k)
		}
	}

	t := s + 1
	uin := vbl+out <= s<<2
	win := t<<2+out <= vbr
	if uin != win {
		if uin {
			return s, int(k)
		}
		return t, int(k)
	}
	cmp := int64(vb - (s+t)<<1)
	if cmp < 0 || (cmp == 0 && s&1 == 0) {
		return s, int(k)
	}
	return t, int(k)
}
