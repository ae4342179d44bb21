package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bjaus/fmtx"
)

// parseArg turns a command-line argument into an fmtx.Arg. The accepted
// forms are "kind:value", "name=kind:value", "name=value" and a bare value,
// which is a string.
func parseArg(s string) (fmtx.Arg, error) {
	if name, rest, ok := strings.Cut(s, "="); ok && isName(name) {
		a, err := parseValue(rest)
		if err != nil {
			return fmtx.Arg{}, fmt.Errorf("argument %q: %w", name, err)
		}
		return fmtx.Named(name, a), nil
	}
	return parseValue(s)
}

func parseValue(s string) (fmtx.Arg, error) {
	prefix, value, ok := strings.Cut(s, ":")
	if !ok {
		return fmtx.Str(s), nil
	}
	kind, err := fmtx.ParseKind(prefix)
	if err != nil {
		return fmtx.Str(s), nil
	}
	switch kind {
	case fmtx.KindInt:
		v, err := strconv.ParseInt(value, 0, 64)
		return fmtx.Int64(v), err
	case fmtx.KindUint:
		v, err := strconv.ParseUint(value, 0, 64)
		return fmtx.Uint64(v), err
	case fmtx.KindBool:
		v, err := strconv.ParseBool(value)
		return fmtx.Bool(v), err
	case fmtx.KindChar:
		r, n := utf8.DecodeRuneInString(value)
		if n == 0 || n != len(value) {
			return fmtx.Arg{}, fmt.Errorf("char %q: want exactly one character", value)
		}
		return fmtx.Char(r), nil
	case fmtx.KindFloat32:
		v, err := strconv.ParseFloat(value, 32)
		return fmtx.Float32(float32(v)), err
	case fmtx.KindFloat64:
		v, err := strconv.ParseFloat(value, 64)
		return fmtx.Float64(v), err
	case fmtx.KindString:
		return fmtx.Str(value), nil
	case fmtx.KindPointer:
		v, err := strconv.ParseUint(value, 0, 64)
		return fmtx.Addr(uintptr(v)), err
	default:
		return fmtx.Arg{}, fmt.Errorf("kind %s cannot be given on the command line", kind)
	}
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && '0' <= c && c <= '9':
		default:
			return false
		}
	}
	return true
}
