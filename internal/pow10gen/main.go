// Command pow10gen writes the table of 126-bit scaled powers of ten used by
// the shortest float-to-decimal conversion.
package main

import (
	"bytes"
	"fmt"
	"go/format"
	"math/big"
	"os"

	"github.com/spf13/cobra"
)

const (
	kMin = -324
	kMax = 292
)

func main() {
	var out string
	cmd := &cobra.Command{
		Use:   "pow10gen",
		Short: "Generate the power-of-ten table for shortest float formatting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := generate()
			if err != nil {
				return err
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			return os.WriteFile(out, src, 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "shortest_table.go", "output file, - for stdout")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// floorLog2Pow10 matches the estimate used by the conversion code.
func floorLog2Pow10(e int64) int64 { return (e * 913124641741) >> 38 }

// entry returns g = floor(10^-k / 2^r) + 1 split into 63-bit halves, where r
// puts 10^-k / 2^r in [2^125, 2^126).
func entry(k int64) (hi, lo uint64, err error) {
	num, den := big.NewInt(1), big.NewInt(1)
	ten := big.NewInt(10)
	if k <= 0 {
		num.Exp(ten, big.NewInt(-k), nil)
	} else {
		den.Exp(ten, big.NewInt(k), nil)
	}
	r := floorLog2Pow10(-k) - 125
	if r >= 0 {
		den.Lsh(den, uint(r))
	} else {
		num.Lsh(num, uint(-r))
	}
	g := new(big.Int).Quo(num, den)
	if n := g.BitLen(); n != 126 {
		return 0, 0, fmt.Errorf("k=%d: scaled power has %d bits", k, n)
	}
	g.Add(g, big.NewInt(1))
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 63), big.NewInt(1))
	lo = new(big.Int).And(g, mask).Uint64()
	hi = new(big.Int).Rsh(g, 63).Uint64()
	return hi, lo, nil
}

func generate() ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("// Code generated by internal/pow10gen; DO NOT EDIT.\n\n")
	b.WriteString("package fmtx\n\n")
	b.WriteString("// pow10Min and pow10Max bound the decimal exponents k covered by g128.\n")
	fmt.Fprintf(&b, "const (\n\tpow10Min = %d\n\tpow10Max = %d\n)\n\n", kMin, kMax)
	b.WriteString("// g128[k-pow10Min] holds {g1, g0} with g = g1<<63 | g0 = floor(10^-k / 2^r) + 1,\n")
	b.WriteString("// r chosen so that 2^125 <= 10^-k / 2^r < 2^126.\n")
	b.WriteString("var g128 = [pow10Max - pow10Min + 1][2]uint64{\n")
	for k := int64(kMin); k <= kMax; k++ {
		hi, lo, err := entry(k)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "\t{0x%016x, 0x%016x}, // %d\n", hi, lo, k)
	}
	b.WriteString("}\n")
	return format.Source(b.Bytes())
}
