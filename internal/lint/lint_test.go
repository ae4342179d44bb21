package lint_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/fmtx/internal/lint"
)

const header = "package p\n\nimport \"github.com/bjaus/fmtx\"\n\n"

func check(t *testing.T, body string, functions ...string) []lint.Diagnostic {
	t.Helper()
	c := lint.NewChecker(zerolog.Nop(), functions...)
	d, err := c.CheckSource("p.go", []byte(header+body))
	require.NoError(t, err)
	return d
}

func TestCheckSource(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		body string
		want []string
	}{
		"valid": {
			body: `var _, _ = fmtx.Format("{} {:>8.2f}", fmtx.Int(1), fmtx.Float64(2))`,
		},
		"float spec on string": {
			body: `var _, _ = fmtx.Format("{:.2f}", fmtx.Str("x"))`,
			want: []string{"invalid format specifier"},
		},
		"missing argument": {
			body: `var _, _ = fmtx.Format("{} {}", fmtx.Int(1))`,
			want: []string{"argument not found"},
		},
		"unmatched brace": {
			body: `var _, _ = fmtx.Format("oops }", fmtx.Int(1))`,
			want: []string{"unmatched '}' in format string"},
		},
		"template not first": {
			body: `var _, _ = fmtx.Append(nil, "{:x}", fmtx.Float32(1))`,
			want: []string{"invalid format specifier"},
		},
		"concatenated literal": {
			body: `var _, _ = fmtx.Format("{0}" + " {}", fmtx.Int(1))`,
			want: []string{"cannot switch from manual to automatic argument indexing"},
		},
		"named argument": {
			body: `var _, _ = fmtx.Format("{n:d}", fmtx.Named("n", fmtx.Str("x")))`,
			want: []string{"invalid format specifier"},
		},
		"unknown argument accepts any spec": {
			body: `var _, _ = fmtx.Format("{:d}", fmtx.Of(v))`,
		},
		"custom argument accepts any spec": {
			body: `var _, _ = fmtx.Format("{:%Y}", fmtx.Custom(v))`,
		},
		"unknown argument with nested width": {
			body: `var _, _ = fmtx.Format("{:>{}} {:s}", name, fmtx.Int(4), fmtx.Str("s"))`,
		},
		"unknown argument with mixed nested indexing": {
			body: `var _, _ = fmtx.Format("{:>{0}} {}", name, fmtx.Int(4))`,
			want: []string{"cannot switch from automatic to manual argument indexing"},
		},
		"compile prototypes": {
			body: `var _ = fmtx.MustCompile("{:s}", fmtx.Param(fmtx.KindFloat64))`,
			want: []string{"invalid format specifier"},
		},
		"non-literal template": {
			body: `var _, _ = fmtx.Format(tmpl, fmtx.Int(1))`,
		},
		"spread arguments": {
			body: `var _, _ = fmtx.Format("{} {}", args...)`,
		},
		"other package": {
			body: `var _ = fmt.Sprintf("{:q}", 1)`,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var got []string
			for _, d := range check(t, tt.body) {
				got = append(got, d.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckSourcePosition(t *testing.T) {
	t.Parallel()
	d := check(t, "var _, _ = fmtx.Format(\"ab{:.2f}\", fmtx.Int(1))")
	require.Len(t, d, 1)
	assert.Equal(t, "p.go", d[0].File)
	assert.Equal(t, 5, d[0].Line)
	assert.Equal(t, 24, d[0].Column)
	assert.Equal(t, "fmtx.Format", d[0].Call)
	assert.Equal(t, "ab{:.2f}", d[0].Template)
	assert.Equal(t, "precision not allowed for this argument type", d[0].Message)
}

func TestCheckSourceRenamedImport(t *testing.T) {
	t.Parallel()
	src := "package p\n\nimport f \"github.com/bjaus/fmtx\"\n\nvar _, _ = f.Format(\"{:p}\", f.Int(1))\n"
	d, err := lint.NewChecker(zerolog.Nop()).CheckSource("p.go", []byte(src))
	require.NoError(t, err)
	require.Len(t, d, 1)
	assert.Equal(t, "f.Format", d[0].Call)
}

func TestCheckSourceExtraFunctions(t *testing.T) {
	t.Parallel()
	d := check(t, `func f() { logf("{:x}", fmtx.Str("s")) }`, "logf")
	require.Len(t, d, 1)
	assert.Equal(t, "logf", d[0].Call)
}

func TestCheckSourceParseError(t *testing.T) {
	t.Parallel()
	_, err := lint.NewChecker(zerolog.Nop()).CheckSource("bad.go", []byte("package"))
	assert.Error(t, err)
}

func TestCheckFilesSortsAcrossFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bad := header + "var _, _ = fmtx.Format(\"{\", fmtx.Int(1))\n"
	for _, name := range []string{"b.go", "a.go", "c.go"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(bad), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "testdata"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "testdata", "x.go"), []byte(bad), 0o600))

	paths, err := lint.Expand([]string{dir}, func(p string) bool { return filepath.Base(p) == "c.go" })
	require.NoError(t, err)
	require.Len(t, paths, 2)

	d, err := lint.NewChecker(zerolog.Nop()).CheckFiles(context.Background(), paths, 1)
	require.NoError(t, err)
	require.Len(t, d, 2)
	assert.Equal(t, filepath.Join(dir, "a.go"), d[0].File)
	assert.Equal(t, filepath.Join(dir, "b.go"), d[1].File)
	assert.Equal(t, "invalid format string", d[0].Message)
}

func TestCheckFilesMissingFile(t *testing.T) {
	t.Parallel()
	_, err := lint.NewChecker(zerolog.Nop()).CheckFiles(context.Background(), []string{"/does/not/exist.go"}, 0)
	assert.Error(t, err)
}

func TestDiagnosticRendering(t *testing.T) {
	t.Parallel()
	d := lint.Diagnostic{File: "a.go", Line: 3, Column: 7, Call: "fmtx.Format", Template: "{", Offset: 0, Message: "invalid format string"}
	assert.Equal(t, `a.go:3:7: fmtx.Format: invalid format string (at offset 0 in "{")`, d.String())
	assert.Equal(t, []string{"a.go", "3", "7", "fmtx.Format", "0", "invalid format string"}, d.Row())
	assert.Len(t, d.Header(), len(d.Row()))
}
