package fmtx_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/fmtx"
)

type point struct{ x, y int }

func (p point) Format(ctx *fmtx.Context) error {
	return ctx.Pad(func(out fmtx.Sink) error {
		return fmtx.FormatTo(out, "({}, {})", fmtx.Int(p.x), fmtx.Int(p.y))
	})
}

// money owns its spec: an optional currency letter, "$" or "E".
type money struct {
	cents  int64
	symbol string
}

func (m *money) ParseSpec(spec string) (int, error) {
	switch spec {
	case "":
		m.symbol = "$"
		return 0, nil
	case "$", "E":
		m.symbol = spec
		return 1, nil
	}
	return 0, errors.New("bad money spec")
}

func (m *money) Format(ctx *fmtx.Context) error {
	return ctx.Format("{}{}.{:02}", fmtx.Str(m.symbol), fmtx.Int64(m.cents/100), fmtx.Int64(m.cents%100))
}

// upper writes its string in upper case and honours the standard spec.
type upper string

func (u upper) Format(ctx *fmtx.Context) error {
	return ctx.FormatArg(fmtx.Str(strings.ToUpper(string(u))))
}

// failing always returns an error.
type failing struct{}

var errFailing = errors.New("failing formatter")

func (failing) Format(*fmtx.Context) error { return errFailing }

// raw echoes the raw spec it receives.
type raw struct{}

func (raw) ParseSpec(spec string) (int, error) { return len(spec), nil }

func (raw) Format(ctx *fmtx.Context) error {
	_, err := ctx.WriteString("<" + ctx.RawSpec() + ">")
	return err
}

func TestCustomFormatters(t *testing.T) {
	t.Parallel()
	runFormatCases(t, map[string]formatCase{
		"plain":             {tmpl: "{}", args: args(fmtx.Custom(point{1, 2})), want: "(1, 2)"},
		"padded default":    {tmpl: "{:10}|", args: args(fmtx.Custom(point{1, 2})), want: "(1, 2)    |"},
		"padded center":     {tmpl: "{:*^10}", args: args(fmtx.Custom(point{1, 2})), want: "**(1, 2)**"},
		"dynamic width":     {tmpl: "{:>{}}", args: args(fmtx.Custom(point{3, 4}), fmtx.Int(8)), want: "  (3, 4)"},
		"dynamic manual":    {tmpl: "{0:>{1}}", args: args(fmtx.Custom(point{3, 4}), fmtx.Int(7)), want: " (3, 4)"},
		"own grammar":       {tmpl: "{:E}", args: args(fmtx.Custom(money{cents: 1205})), want: "E12.05"},
		"own grammar empty": {tmpl: "{}", args: args(fmtx.Custom(money{cents: 7})), want: "$0.07"},
		"raw spec":          {tmpl: "{:%Y-%m{x}}", args: args(fmtx.Custom(raw{})), want: "<%Y-%m{x}>"},
		"standard spec":     {tmpl: "{:>6.3}", args: args(fmtx.Custom(upper("hello"))), want: "   HEL"},
		"by reference":      {tmpl: "{}", args: args(fmtx.Ref(&point{5, 6})), want: "(5, 6)"},
		"mixed":             {tmpl: "{} at {:.1f}", args: args(fmtx.Custom(point{0, 0}), fmtx.Float64(0.25)), want: "(0, 0) at 0.2"},
	})
}

func TestCustomErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		tmpl string
		arg  fmtx.Arg
		is   error
	}{
		"formatter error":    {tmpl: "{}", arg: fmtx.Custom(failing{}), is: errFailing},
		"own grammar reject": {tmpl: "{:X}", arg: fmtx.Custom(money{}), is: nil},
		"standard reject":    {tmpl: "{:q}", arg: fmtx.Custom(upper("x")), is: fmtx.ErrInvalidSpec},
		"kind reject":        {tmpl: "{:d}", arg: fmtx.Custom(upper("x")), is: fmtx.ErrInvalidSpec},
		"unclosed":           {tmpl: "{:>5", arg: fmtx.Custom(point{}), is: fmtx.ErrInvalidSpec},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := fmtx.Format(tt.tmpl, tt.arg)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestCustomPartialSpec(t *testing.T) {
	t.Parallel()
	_, err := fmtx.Format("{:$$}", fmtx.Custom(money{}))
	require.Error(t, err)
}

func TestJoin(t *testing.T) {
	t.Parallel()
	runFormatCases(t, map[string]formatCase{
		"ints":    {tmpl: "[{}]", args: args(fmtx.Join(", ", fmtx.Int(1), fmtx.Int(2), fmtx.Int(3))), want: "[1, 2, 3]"},
		"spec":    {tmpl: "{:03}", args: args(fmtx.Join("|", fmtx.Int(1), fmtx.Int(22))), want: "001|022"},
		"floats":  {tmpl: "{:.1f}", args: args(fmtx.Join(" ", fmtx.Float64(1), fmtx.Float64(2.25))), want: "1.0 2.2"},
		"strings": {tmpl: "{:>3}", args: args(fmtx.Join(",", fmtx.Str("a"), fmtx.Str("b"))), want: "  a,  b"},
		"empty":   {tmpl: "<{}>", args: args(fmtx.Join(",")), want: "<>"},
	})
}

func TestJoinRejectsElement(t *testing.T) {
	t.Parallel()
	_, err := fmtx.Format("{:.2}", fmtx.Join(",", fmtx.Float64(1), fmtx.Int(2)))
	assert.ErrorIs(t, err, fmtx.ErrInvalidSpec)
}

func TestNestedFormatUsesLocale(t *testing.T) {
	t.Parallel()
	loc := fmtx.NewLocale(',', '.', 3)
	got, err := fmtx.FormatLoc(loc, "{}", fmtx.Custom(total{1234567}))
	require.NoError(t, err)
	assert.Equal(t, "total: 1.234.567", got)
}

type total struct{ n int }

func (t total) Format(ctx *fmtx.Context) error {
	return ctx.Format("total: {:L}", fmtx.Int(t.n))
}

func TestContextAccessors(t *testing.T) {
	t.Parallel()
	var seen fmtx.Spec
	var sink fmtx.Sink
	probe := probeFormatter(func(ctx *fmtx.Context) error {
		seen = ctx.Spec()
		sink = ctx.Sink()
		assert.Equal(t, fmtx.Classic(), ctx.Locale())
		_, err := ctx.Write([]byte("ok"))
		return err
	})
	b := fmtx.NewBuffer(8)
	require.NoError(t, fmtx.FormatTo(b, "{:_<+#08.3L}", fmtx.Custom(probe)))
	assert.Equal(t, "ok", b.String())
	assert.Equal(t, fmtx.Sink(b), sink)
	assert.Equal(t, "_", seen.Fill)
	assert.Equal(t, fmtx.AlignLeft, seen.Align)
	assert.Equal(t, fmtx.SignPlus, seen.Sign)
	assert.True(t, seen.Alt)
	assert.True(t, seen.Zero)
	assert.Equal(t, 8, seen.Width)
	assert.Equal(t, 3, seen.Precision)
	assert.True(t, seen.Localized)
}

type probeFormatter func(ctx *fmtx.Context) error

func (p probeFormatter) Format(ctx *fmtx.Context) error { return p(ctx) }
