package fmtx

import (
	"fmt"
	"math"
	"unsafe"
)

// Kind tags the payload of an Arg.
type Kind uint8

const (
	// KindNone is the zero Arg. As a Compile prototype it accepts any
	// argument.
	KindNone Kind = iota
	KindInt     // signed integers
	KindUint    // unsigned integers
	KindBool    // booleans
	KindChar    // code points
	KindFloat32 // single precision floats
	KindFloat64 // double precision floats
	KindString  // strings and byte slices
	KindPointer // addresses
	KindCustom  // Formatter values
	// KindNamedMarker occupies index 0 of a Store holding named arguments.
	KindNamedMarker
)

var kindNames = [...]string{
	KindNone:        "none",
	KindInt:         "int",
	KindUint:        "uint",
	KindBool:        "bool",
	KindChar:        "char",
	KindFloat32:     "float32",
	KindFloat64:     "float64",
	KindString:      "string",
	KindPointer:     "pointer",
	KindCustom:      "custom",
	KindNamedMarker: "named-args",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind is the inverse of Kind.String for the kinds a caller can build.
func ParseKind(s string) (Kind, error) {
	for k := KindInt; k <= KindCustom; k++ {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("%w: unknown kind %q", ErrKindMismatch, s)
}

func (k Kind) isIntegral() bool {
	switch k {
	case KindInt, KindUint, KindBool, KindChar:
		return true
	}
	return false
}

func (k Kind) isFloat() bool { return k == KindFloat32 || k == KindFloat64 }

func (k Kind) isArithmetic() bool { return k.isIntegral() || k.isFloat() }

// unchecked kinds accept any spec; custom formatters validate their own.
func (k Kind) unchecked() bool { return k == KindNone || k == KindCustom }

type argFlags uint8

// flagCopy marks values a Store must copy into its arena.
const flagCopy argFlags = 1 << iota

// formatFunc formats the custom value at p.
type formatFunc func(p unsafe.Pointer, ctx *Context) error

// cloneFunc copies the custom value at p into a.
type cloneFunc func(p unsafe.Pointer, a *arena) unsafe.Pointer

// Arg is a type-erased formatting argument. Built-in kinds carry their value
// inline; strings are views; custom values are a pointer plus the function
// that formats them. An Arg never owns the memory it refers to.
type Arg struct {
	kind  Kind
	flags argFlags
	bits  uint64
	str   string
	ptr   unsafe.Pointer
	fn    formatFunc
	clone cloneFunc
	name  string
}

// Kind returns the argument kind.
func (a Arg) Kind() Kind { return a.kind }

// Name returns the name given by Named, if any.
func (a Arg) Name() string { return a.name }

// Int returns a KindInt argument.
func Int(v int) Arg { return Arg{kind: KindInt, bits: uint64(int64(v))} }

// Int8 returns a KindInt argument.
func Int8(v int8) Arg { return Arg{kind: KindInt, bits: uint64(int64(v))} }

// Int16 returns a KindInt argument.
func Int16(v int16) Arg { return Arg{kind: KindInt, bits: uint64(int64(v))} }

// Int32 returns a KindInt argument.
func Int32(v int32) Arg { return Arg{kind: KindInt, bits: uint64(int64(v))} }

// Int64 returns a KindInt argument.
func Int64(v int64) Arg { return Arg{kind: KindInt, bits: uint64(v)} }

// Uint returns a KindUint argument.
func Uint(v uint) Arg { return Arg{kind: KindUint, bits: uint64(v)} }

// Uint8 returns a KindUint argument.
func Uint8(v uint8) Arg { return Arg{kind: KindUint, bits: uint64(v)} }

// Uint16 returns a KindUint argument.
func Uint16(v uint16) Arg { return Arg{kind: KindUint, bits: uint64(v)} }

// Uint32 returns a KindUint argument.
func Uint32(v uint32) Arg { return Arg{kind: KindUint, bits: uint64(v)} }

// Uint64 returns a KindUint argument.
func Uint64(v uint64) Arg { return Arg{kind: KindUint, bits: v} }

// Uintptr returns a KindUint argument. Use Addr to format it as a pointer.
func Uintptr(v uintptr) Arg { return Arg{kind: KindUint, bits: uint64(v)} }

// Bool formats as true or false, or as 1 or 0 with an integer presentation.
func Bool(v bool) Arg {
	a := Arg{kind: KindBool}
	if v {
		a.bits = 1
	}
	return a
}

// Char formats as a character by default and as its code point with an
// integer presentation.
func Char(r rune) Arg { return Arg{kind: KindChar, bits: uint64(uint32(r))} }

// Float32 returns a KindFloat32 argument. Its shortest form is computed
// in single precision.
func Float32(v float32) Arg { return Arg{kind: KindFloat32, bits: uint64(math.Float32bits(v))} }

// Float64 returns a KindFloat64 argument.
func Float64(v float64) Arg { return Arg{kind: KindFloat64, bits: math.Float64bits(v)} }

// Str is a string view. Go strings are immutable, so a Store keeps the view
// without copying.
func Str(s string) Arg { return Arg{kind: KindString, str: s} }

// Bytes formats b as a string. A Store copies the bytes into its arena; a
// direct formatting call reads them in place.
func Bytes(b []byte) Arg {
	return Arg{kind: KindString, flags: flagCopy, str: unsafe.String(unsafe.SliceData(b), len(b))}
}

// RefBytes is Bytes without the Store copy. The caller keeps b unchanged
// while the store is in use.
func RefBytes[B ~[]byte](b B) Arg {
	return Arg{kind: KindString, str: unsafe.String(unsafe.SliceData(b), len(b))}
}

// Ptr formats the address of p as 0x followed by lowercase hex digits.
func Ptr[T any](p *T) Arg { return Addr(uintptr(unsafe.Pointer(p))) }

// Addr formats a raw address like Ptr.
func Addr(p uintptr) Arg { return Arg{kind: KindPointer, bits: uint64(p)} }

// Named attaches a name so templates can refer to the argument as {name}.
func Named(name string, a Arg) Arg {
	a.name = name
	return a
}

// Param returns a value-less argument of the given kind, used as a
// prototype for Compile.
func Param(k Kind) Arg { return Arg{kind: k} }

// Formatter is implemented by types that render themselves. Format reads the
// parsed spec from ctx and writes through it.
type Formatter interface {
	Format(ctx *Context) error
}

// SpecParser lets a Formatter own its spec grammar. ParseSpec receives the
// text between ':' and the closing brace and returns how many bytes it
// consumed; anything left over is an error. Types without it get the
// standard grammar.
type SpecParser interface {
	ParseSpec(spec string) (int, error)
}

// Cloner controls how a Store copies a custom value into its arena. Without
// it the value is copied with a plain assignment.
type Cloner[T any] interface {
	Clone() T
}

// Custom captures a user value by copy. PT is inferred from T.
func Custom[T any, PT interface {
	*T
	Formatter
}](v T) Arg {
	return Arg{
		kind:  KindCustom,
		flags: flagCopy,
		ptr:   unsafe.Pointer(&v),
		fn:    formatCustom[T, PT],
		clone: cloneCustom[T, PT],
	}
}

// Ref captures a user value by reference; a Store keeps the pointer instead
// of copying. Only Formatter types are accepted, so forcing a reference on a
// built-in value does not compile.
func Ref[T any, PT interface {
	*T
	Formatter
}](v PT) Arg {
	return Arg{
		kind:  KindCustom,
		ptr:   unsafe.Pointer(v),
		fn:    formatCustom[T, PT],
		clone: cloneCustom[T, PT],
	}
}

func formatCustom[T any, PT interface {
	*T
	Formatter
}](p unsafe.Pointer, ctx *Context) error {
	v := *(*T)(p)
	return ctx.runFormatter(PT(&v))
}

func cloneCustom[T any, PT interface {
	*T
	Formatter
}](p unsafe.Pointer, a *arena) unsafe.Pointer {
	src := (*T)(p)
	dst := new(T)
	if c, ok := any(PT(src)).(Cloner[T]); ok {
		*dst = c.Clone()
	} else {
		*dst = *src
	}
	return a.keep(unsafe.Pointer(dst))
}

// boxed holds a Formatter reached through an interface value.
type boxed struct{ f Formatter }

func formatBoxed(p unsafe.Pointer, ctx *Context) error {
	return ctx.runFormatter((*boxed)(p).f)
}

func cloneBoxed(p unsafe.Pointer, a *arena) unsafe.Pointer {
	dst := &boxed{f: (*boxed)(p).f}
	return a.keep(unsafe.Pointer(dst))
}

// Of converts an arbitrary Go value. Built-in numbers, strings, byte slices
// and booleans map to their kinds; Formatter values become custom
// arguments; fmt.Stringer and error values format as their text; anything
// else formats as with %v.
func Of(v any) Arg {
	switch x := v.(type) {
	case Arg:
		return x
	case int:
		return Int(x)
	case int8:
		return Int8(x)
	case int16:
		return Int16(x)
	case int32:
		return Int32(x)
	case int64:
		return Int64(x)
	case uint:
		return Uint(x)
	case uint8:
		return Uint8(x)
	case uint16:
		return Uint16(x)
	case uint32:
		return Uint32(x)
	case uint64:
		return Uint64(x)
	case uintptr:
		return Uintptr(x)
	case bool:
		return Bool(x)
	case float32:
		return Float32(x)
	case float64:
		return Float64(x)
	case string:
		return Str(x)
	case []byte:
		return Bytes(x)
	case unsafe.Pointer:
		return Addr(uintptr(x))
	case Formatter:
		return Arg{
			kind:  KindCustom,
			flags: flagCopy,
			ptr:   unsafe.Pointer(&boxed{f: x}),
			fn:    formatBoxed,
			clone: cloneBoxed,
		}
	case fmt.Stringer:
		return Str(x.String())
	case error:
		return Str(x.Error())
	case nil:
		return Str("<nil>")
	default:
		return Str(fmt.Sprintf("%v", x))
	}
}

// ArgsOf converts each value with Of.
func ArgsOf(values ...any) []Arg {
	out := make([]Arg, len(values))
	for i, v := range values {
		out[i] = Of(v)
	}
	return out
}

// joined formats a list of arguments with one spec and a separator.
type joined struct {
	sep  string
	args []Arg
}

func (j joined) Format(ctx *Context) error {
	for i, a := range j.args {
		if i > 0 {
			ctx.out.AppendString(j.sep)
		}
		if err := ctx.FormatArg(a); err != nil {
			return err
		}
	}
	return nil
}

// Join formats every element with the field's spec, separated by sep.
func Join(sep string, args ...Arg) Arg {
	return Custom(joined{sep: sep, args: args})
}
