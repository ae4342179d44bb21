package report_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/fmtx/internal/report"
)

type entry struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

func (e entry) Row() []string    { return []string{e.Name, e.Value} }
func (e entry) Header() []string { return []string{"NAME", "VALUE"} }
func (e entry) String() string   { return e.Name + "=" + e.Value }

type styledEntry struct{ entry }

func (e styledEntry) Styled() string { return "*" + e.Name }

type alignedEntry struct{ entry }

func (alignedEntry) Alignments() []report.Alignment {
	return []report.Alignment{report.AlignLeft, report.AlignRight}
}

type headless struct{ name string }

func (h headless) Row() []string { return []string{h.name} }

type errWriter struct{}

var errWrite = errors.New("write failed")

func (e *errWriter) Write([]byte) (int, error) { return 0, errWrite }

var sample = []entry{{Name: "a", Value: "1"}, {Name: "long-name", Value: "22"}}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    report.Format
		wantErr require.ErrorAssertionFunc
	}{
		"plain":    {input: "plain", want: report.Plain, wantErr: require.NoError},
		"table":    {input: "table", want: report.Table, wantErr: require.NoError},
		"json":     {input: "json", want: report.JSON, wantErr: require.NoError},
		"jsonl":    {input: "jsonl", want: report.JSONL, wantErr: require.NoError},
		"yaml":     {input: "yaml", want: report.YAML, wantErr: require.NoError},
		"tsv":      {input: "tsv", want: report.TSV, wantErr: require.NoError},
		"csv":      {input: "csv", want: report.CSV, wantErr: require.NoError},
		"markdown": {input: "markdown", want: report.Markdown, wantErr: require.NoError},
		"msgpack":  {input: "msgpack", want: report.MsgPack, wantErr: require.NoError},
		"unknown":  {input: "xml", want: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := report.ParseFormat(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormatWrapsSentinel(t *testing.T) {
	t.Parallel()
	_, err := report.ParseFormat("xml")
	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

func TestFormatsIsCopy(t *testing.T) {
	t.Parallel()
	f := report.Formats()
	require.Len(t, f, 9)
	f[0] = "mutated"
	assert.Equal(t, report.Plain, report.Formats()[0])
}

func TestWriteText(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format report.Format
		want   string
	}{
		"plain": {
			format: report.Plain,
			want:   "a=1\nlong-name=22\n",
		},
		"table": {
			format: report.Table,
			want: "NAME       VALUE\n" +
				"---------  -----\n" +
				"a          1\n" +
				"long-name  22\n",
		},
		"json": {
			format: report.JSON,
			want: "[\n  {\n    \"name\": \"a\",\n    \"value\": \"1\"\n  },\n" +
				"  {\n    \"name\": \"long-name\",\n    \"value\": \"22\"\n  }\n]\n",
		},
		"jsonl": {
			format: report.JSONL,
			want:   "{\"name\":\"a\",\"value\":\"1\"}\n{\"name\":\"long-name\",\"value\":\"22\"}\n",
		},
		"tsv": {
			format: report.TSV,
			want:   "NAME\tVALUE\na\t1\nlong-name\t22\n",
		},
		"csv": {
			format: report.CSV,
			want:   "NAME,VALUE\na,1\nlong-name,22\n",
		},
		"markdown": {
			format: report.Markdown,
			want: "| NAME      | VALUE |\n" +
				"| --------- | ----- |\n" +
				"| a         | 1     |\n" +
				"| long-name | 22    |\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, report.Write(&buf, tt.format, sample...))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	t.Parallel()
	out, err := report.Marshal(report.YAML, sample...)
	require.NoError(t, err)
	var got []entry
	require.NoError(t, yaml.Unmarshal(out, &got))
	assert.Equal(t, sample, got)
}

func TestWriteMsgPackUsesJSONNames(t *testing.T) {
	t.Parallel()
	out, err := report.Marshal(report.MsgPack, sample...)
	require.NoError(t, err)
	var got []map[string]string
	require.NoError(t, msgpack.Unmarshal(out, &got))
	assert.Equal(t, []map[string]string{
		{"name": "a", "value": "1"},
		{"name": "long-name", "value": "22"},
	}, got)
}

func TestWriteEmpty(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format report.Format
		want   string
	}{
		"plain":    {format: report.Plain, want: ""},
		"table":    {format: report.Table, want: ""},
		"tsv":      {format: report.TSV, want: ""},
		"csv":      {format: report.CSV, want: ""},
		"markdown": {format: report.Markdown, want: ""},
		"json":     {format: report.JSON, want: "[]\n"},
		"jsonl":    {format: report.JSONL, want: ""},
		"yaml":     {format: report.YAML, want: "[]\n"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, report.Write[entry](&buf, tt.format))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPlainPrefersStyled(t *testing.T) {
	t.Parallel()
	out, err := report.Marshal(report.Plain, styledEntry{entry{Name: "x"}})
	require.NoError(t, err)
	assert.Equal(t, "*x\n", string(out))
}

func TestTSVEscapesControlCharacters(t *testing.T) {
	t.Parallel()
	out, err := report.Marshal(report.TSV, entry{Name: "a\tb", Value: "c\nd"})
	require.NoError(t, err)
	assert.Equal(t, "NAME\tVALUE\na\\tb\tc\\nd\n", string(out))
}

func TestTableWideCharacters(t *testing.T) {
	t.Parallel()
	out, err := report.Marshal(report.Table, entry{Name: "你好", Value: "x"}, entry{Name: "a", Value: "y"})
	require.NoError(t, err)
	assert.Equal(t, "NAME  VALUE\n----  -----\n你好  x\na     y\n", string(out))
}

func TestRowFormatsRequireRower(t *testing.T) {
	t.Parallel()
	for _, f := range []report.Format{report.Table, report.TSV, report.CSV, report.Markdown} {
		t.Run(f.String(), func(t *testing.T) {
			t.Parallel()
			_, err := report.Marshal(f, "no rows")
			assert.ErrorIs(t, err, report.ErrMissingInterface)
		})
	}
}

func TestWriteUnsupported(t *testing.T) {
	t.Parallel()
	err := report.Write(&bytes.Buffer{}, report.Format("xml"), sample...)
	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

func TestWritePropagatesWriterErrors(t *testing.T) {
	t.Parallel()
	for _, f := range report.Formats() {
		t.Run(f.String(), func(t *testing.T) {
			t.Parallel()
			err := report.Write(&errWriter{}, f, sample...)
			assert.Error(t, err)
		})
	}
}

func TestAlignedColumns(t *testing.T) {
	t.Parallel()
	items := []alignedEntry{{entry{Name: "a", Value: "1"}}, {entry{Name: "long-name", Value: "22"}}}
	tests := map[string]struct {
		format report.Format
		want   string
	}{
		"table": {
			format: report.Table,
			want: "NAME       VALUE\n" +
				"---------  -----\n" +
				"a              1\n" +
				"long-name     22\n",
		},
		"markdown": {
			format: report.Markdown,
			want: "| NAME      | VALUE |\n" +
				"| --------- | ----: |\n" +
				"| a         |     1 |\n" +
				"| long-name |    22 |\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, err := report.Marshal(tt.format, items...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestMarkdownRequiresHeader(t *testing.T) {
	t.Parallel()
	_, err := report.Marshal(report.Markdown, headless{name: "a"})
	assert.ErrorIs(t, err, report.ErrMissingInterface)
}

func TestMarkdownEscapesPipes(t *testing.T) {
	t.Parallel()
	out, err := report.Marshal(report.Markdown, entry{Name: "a|b", Value: "c"})
	require.NoError(t, err)
	assert.Equal(t, "| NAME | VALUE |\n| ---- | ----- |\n| a\\|b | c     |\n", string(out))
}

func TestCSVQuotes(t *testing.T) {
	t.Parallel()
	out, err := report.Marshal(report.CSV, entry{Name: "a,b", Value: `say "hi"`})
	require.NoError(t, err)
	assert.Equal(t, "NAME,VALUE\n\"a,b\",\"say \"\"hi\"\"\"\n", string(out))
}
