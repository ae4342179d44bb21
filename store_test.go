package fmtx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/fmtx"
)

// label is a custom value holding a byte slice, which a plain copy would
// share with the original.
type label struct{ text []byte }

func (l label) Format(ctx *fmtx.Context) error {
	return ctx.FormatArg(fmtx.Str(string(l.text)))
}

func (l label) Clone() label { return label{text: append([]byte(nil), l.text...)} }

type exploding struct{}

func (exploding) Format(*fmtx.Context) error { return nil }

func (exploding) Clone() exploding { panic("clone failed") }

func TestStore(t *testing.T) {
	t.Parallel()
	var s fmtx.Store
	s.Push(fmtx.Float64(1.5))
	s.Push(fmtx.Int(42))
	got, err := fmtx.VFormat("{} and {}", s.Args())
	require.NoError(t, err)
	assert.Equal(t, "1.5 and 42", got)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	s.Push(fmtx.Int(44))
	got, err = fmtx.VFormat("{}", s.Args())
	require.NoError(t, err)
	assert.Equal(t, "44", got)
}

func TestStoreNamed(t *testing.T) {
	t.Parallel()
	s := fmtx.NewStore()
	s.Reserve(3, 2)
	s.Push(fmtx.Int(1))
	s.PushNamed("width", fmtx.Int(6))
	s.Push(fmtx.Named("who", fmtx.Str("world")))
	assert.Equal(t, 3, s.Len())

	a, idx, ok := s.Lookup("who")
	require.True(t, ok)
	assert.Equal(t, 2, idx)
	assert.Equal(t, fmtx.KindString, a.Kind())

	first, ok := s.Get(0)
	require.True(t, ok)
	assert.Equal(t, fmtx.KindInt, first.Kind())

	got, err := fmtx.VFormat("{who:>{width}} {0} {1}", s.Args())
	require.NoError(t, err)
	assert.Equal(t, " world 1 6", got)

	_, _, ok = s.Lookup("missing")
	assert.False(t, ok)
}

func TestStoreNamedNameCopied(t *testing.T) {
	t.Parallel()
	name := []byte("abc")
	var s fmtx.Store
	s.PushNamed(string(name), fmtx.Int(1))
	name[0] = 'x'
	got, err := fmtx.VFormat("{abc}", s.Args())
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}

func TestStoreBytes(t *testing.T) {
	t.Parallel()
	b := []byte("abc")
	var s fmtx.Store
	s.Push(fmtx.Bytes(b))
	s.Push(fmtx.RefBytes(b))
	b[0] = 'x'
	got, err := fmtx.VFormat("{} {}", s.Args())
	require.NoError(t, err)
	assert.Equal(t, "abc xbc", got)
}

func TestStoreCustom(t *testing.T) {
	t.Parallel()
	v := label{text: []byte("one")}
	var s fmtx.Store
	s.Push(fmtx.Custom(v))
	s.Push(fmtx.Ref(&v))
	v.text[0] = 'O'
	v.text = []byte("two")
	got, err := fmtx.VFormat("{} {}", s.Args())
	require.NoError(t, err)
	assert.Equal(t, "one two", got)
}

func TestStoreBigStrings(t *testing.T) {
	t.Parallel()
	var s fmtx.Store
	want := ""
	for i := 0; i < 40; i++ {
		chunk := make([]byte, 100)
		for j := range chunk {
			chunk[j] = byte('a' + i%26)
		}
		s.Push(fmtx.Bytes(chunk))
		want += string(chunk)
	}
	tmpl := ""
	for i := 0; i < 40; i++ {
		tmpl += "{}"
	}
	got, err := fmtx.VFormat(tmpl, s.Args())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStoreRollback(t *testing.T) {
	t.Parallel()
	tests := map[string]func(s *fmtx.Store){
		"bad name":        func(s *fmtx.Store) { s.PushNamed("1x", fmtx.Int(1)) },
		"empty name":      func(s *fmtx.Store) { s.PushNamed("", fmtx.Int(1)) },
		"panicking clone": func(s *fmtx.Store) { s.PushNamed("boom", fmtx.Custom(exploding{})) },
	}
	for name, push := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var s fmtx.Store
			s.Push(fmtx.Int(7))
			s.Push(fmtx.Bytes([]byte("kept")))

			assert.Panics(t, func() { push(&s) })

			assert.Equal(t, 2, s.Len())
			_, _, ok := s.Lookup("boom")
			assert.False(t, ok)
			got, err := fmtx.VFormat("{} {}", s.Args())
			require.NoError(t, err)
			assert.Equal(t, "7 kept", got)
		})
	}
}

func TestStoreRollbackKeepsNamed(t *testing.T) {
	t.Parallel()
	var s fmtx.Store
	s.PushNamed("a", fmtx.Int(1))
	assert.Panics(t, func() { s.PushNamed("b c", fmtx.Int(2)) })
	assert.Equal(t, 1, s.Len())
	got, err := fmtx.VFormat("{a}", s.Args())
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}

func TestStoreContractViolation(t *testing.T) {
	t.Parallel()
	tests := map[string]func(){
		"reserve":  func() { fmtx.NewStore().Reserve(1, 2) },
		"bad name": func() { fmtx.NewStore().PushNamed("x-y", fmtx.Int(1)) },
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			defer func() {
				r := recover()
				require.NotNil(t, r)
				cv, ok := r.(*fmtx.ContractViolation)
				require.True(t, ok, "got %T", r)
				assert.Contains(t, cv.Error(), "contract violation")
			}()
			fn()
		})
	}
}

func TestArgsLookup(t *testing.T) {
	t.Parallel()
	args := fmtx.NewArgs(fmtx.Int(1), fmtx.Named("n", fmtx.Str("x")))
	assert.Equal(t, 2, args.Len())
	a, i, ok := args.Lookup("n")
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, "n", a.Name())
	_, ok = args.Get(2)
	assert.False(t, ok)
	_, ok = args.Get(-1)
	assert.False(t, ok)
}
