package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/fmtx/internal/config"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		name string
		body string
		want config.Config
	}{
		"yaml": {
			name: ".fmtx.yaml",
			body: "locale: de-CH\noutput: json\njobs: 4\ncolor: never\nfunctions: [Logf]\nexclude: ['*_gen.go']\n",
			want: config.Config{
				Locale:    "de-CH",
				Output:    "json",
				Jobs:      4,
				Color:     "never",
				Functions: []string{"Logf"},
				Exclude:   []string{"*_gen.go"},
			},
		},
		"toml": {
			name: ".fmtx.toml",
			body: "locale = \"fr\"\noutput = \"tsv\"\njobs = 2\n",
			want: config.Config{Locale: "fr", Output: "tsv", Jobs: 2, Color: "auto"},
		},
		"defaults fill gaps": {
			name: ".fmtx.yml",
			body: "jobs: 1\n",
			want: config.Config{Output: "plain", Color: "auto", Jobs: 1},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p := writeFile(t, t.TempDir(), tt.name, tt.body)
			got, err := config.Load(p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadRejects(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		name string
		body string
	}{
		"bad output":    {name: ".fmtx.yaml", body: "output: xml\n"},
		"bad color":     {name: ".fmtx.yaml", body: "color: sometimes\n"},
		"too many jobs": {name: ".fmtx.toml", body: "jobs = 1000\n"},
		"negative jobs": {name: ".fmtx.toml", body: "jobs = -1\n"},
		"bad locale":    {name: ".fmtx.yaml", body: "locale: not_a_tag!\n"},
		"empty func":    {name: ".fmtx.yaml", body: "functions: ['']\n"},
		"bad glob":      {name: ".fmtx.yaml", body: "exclude: ['[']\n"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p := writeFile(t, t.TempDir(), tt.name, tt.body)
			_, err := config.Load(p)
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestLoadSyntaxError(t *testing.T) {
	t.Parallel()
	p := writeFile(t, t.TempDir(), ".fmtx.toml", "jobs = [\n")
	_, err := config.Load(p)
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrInvalid)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	t.Parallel()
	p := writeFile(t, t.TempDir(), "fmtx.json", "{}")
	_, err := config.Load(p)
	assert.ErrorIs(t, err, config.ErrUnsupportedFile)
}

func TestDiscover(t *testing.T) {
	t.Parallel()
	t.Run("none", func(t *testing.T) {
		t.Parallel()
		cfg, path, err := config.Discover(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, config.Default(), cfg)
	})
	t.Run("yaml wins over toml", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		yml := writeFile(t, dir, ".fmtx.yaml", "output: yaml\n")
		writeFile(t, dir, ".fmtx.toml", "output = \"json\"\n")
		cfg, path, err := config.Discover(dir)
		require.NoError(t, err)
		assert.Equal(t, yml, path)
		assert.Equal(t, "yaml", cfg.Output)
	})
}

func TestExcluded(t *testing.T) {
	t.Parallel()
	cfg := config.Config{Exclude: []string{"*_gen.go", "vendor/*"}}
	tests := map[string]struct {
		path string
		want bool
	}{
		"base match": {path: "pkg/a_gen.go", want: true},
		"full match": {path: "vendor/x.go", want: true},
		"no match":   {path: "pkg/a.go", want: false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cfg.Excluded(tt.path))
		})
	}
}
