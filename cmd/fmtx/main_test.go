package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/fmtx"
)

// run executes the root command. Commands install the global logger, so
// tests using it do not run in parallel.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseArg(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    fmtx.Arg
		wantErr require.ErrorAssertionFunc
	}{
		"bare string":    {input: "hello", want: fmtx.Str("hello"), wantErr: require.NoError},
		"unknown prefix": {input: "a:b", want: fmtx.Str("a:b"), wantErr: require.NoError},
		"int":            {input: "int:-42", want: fmtx.Int64(-42), wantErr: require.NoError},
		"hex int":        {input: "int:0x4a", want: fmtx.Int64(0x4a), wantErr: require.NoError},
		"uint":           {input: "uint:7", want: fmtx.Uint64(7), wantErr: require.NoError},
		"bool":           {input: "bool:true", want: fmtx.Bool(true), wantErr: require.NoError},
		"char":           {input: "char:é", want: fmtx.Char('é'), wantErr: require.NoError},
		"float32":        {input: "float32:1.5", want: fmtx.Float32(1.5), wantErr: require.NoError},
		"float64":        {input: "float64:392.65", want: fmtx.Float64(392.65), wantErr: require.NoError},
		"string":         {input: "string:int:1", want: fmtx.Str("int:1"), wantErr: require.NoError},
		"pointer":        {input: "pointer:0x10", want: fmtx.Addr(0x10), wantErr: require.NoError},
		"named":          {input: "a=int:1", want: fmtx.Named("a", fmtx.Int64(1)), wantErr: require.NoError},
		"named string":   {input: "who=world", want: fmtx.Named("who", fmtx.Str("world")), wantErr: require.NoError},
		"not a name":     {input: "1=x", want: fmtx.Str("1=x"), wantErr: require.NoError},
		"bad int":        {input: "int:x", want: fmtx.Int64(0), wantErr: require.Error},
		"two chars":      {input: "char:ab", want: fmtx.Arg{}, wantErr: require.Error},
		"custom":         {input: "custom:x", want: fmtx.Arg{}, wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := parseArg(tt.input)
			tt.wantErr(t, err)
			if err == nil {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormatCommand(t *testing.T) {
	tests := map[string]struct {
		args []string
		want string
	}{
		"mixed":       {args: []string{"format", "{} and {} and {}", "int:42", "abc1", "float32:1.5"}, want: "42 and abc1 and 1.5\n"},
		"named":       {args: []string{"format", "{} and {a}", "float64:1.5", "a=int:42"}, want: "1.5 and 42\n"},
		"no newline":  {args: []string{"format", "-n", "{:*^6}", "abc"}, want: "*abc**"},
		"locale":      {args: []string{"format", "--locale", "de", "{:L}", "int:1234567"}, want: "1.234.567\n"},
		"escapes":     {args: []string{"format", "{{}}"}, want: "{}\n"},
		"zero padded": {args: []string{"format", "{:+010.4g}", "float64:392.65"}, want: "+0000392.6\n"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFormatCommandErrors(t *testing.T) {
	_, err := run(t, "format", "{:d}", "abc")
	var fe *fmtx.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "invalid format specifier", fe.Msg)

	_, err = run(t, "format", "{}", "--locale", "!!")
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := "package p\n\nimport \"github.com/bjaus/fmtx\"\n\nvar _, _ = fmtx.Format(\"{:x}\", fmtx.Int(1))\n"
	bad := "package p\n\nimport \"github.com/bjaus/fmtx\"\n\nvar _, _ = fmtx.Format(\"{:x}\", fmtx.Str(\"s\"))\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.go"), []byte(good), 0o600))

	out, err := run(t, "check", "--color", "never", dir)
	require.NoError(t, err)
	assert.Empty(t, out)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.go"), []byte(bad), 0o600))
	out, err = run(t, "check", "--color", "never", "-o", "tsv", dir)
	require.ErrorIs(t, err, errFound)
	assert.Equal(t,
		"FILE\tLINE\tCOL\tCALL\tOFFSET\tMESSAGE\n"+
			filepath.Join(dir, "bad.go")+"\t5\t24\tfmtx.Format\t2\tinvalid format specifier\n",
		out)

	out, err = run(t, "check", "--exclude", "bad.go", dir)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCheckCommandConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cfg.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output = \"xml\"\n"), 0o600))
	_, err := run(t, "--config", cfgPath, "check", dir)
	assert.Error(t, err)
}

func TestLocalesCommand(t *testing.T) {
	out, err := run(t, "locales", "-o", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "en\t1,234,567.89\n")
	assert.Contains(t, out, "de\t1.234.567,89\n")
	assert.Contains(t, out, "en-IN\t12,34,567.89\n")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fmtx dev (")
}

func TestUseColor(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	assert.True(t, useColor("always", &buf))
	assert.False(t, useColor("never", &buf))
	assert.False(t, useColor("auto", &buf))
}
