// Package fmtx formats values with brace-delimited templates.
//
// A template mixes literal text with replacement fields such as "{}",
// "{1}", "{name}" or "{:>8.3f}". Arguments are passed as [Arg] values built
// with typed constructors, so formatting a built-in value does not box it:
//
//	s, err := fmtx.Format("{} and {} and {}", fmtx.Int(42), fmtx.Str("abc1"), fmtx.Float32(1.5))
//	// "42 and abc1 and 1.5"
//
// # Entry Points
//
//   - [Format] and [VFormat] return a string
//   - [Append] appends to a byte slice
//   - [Write] streams to an [io.Writer] in chunks
//   - [FormatTo] and [VFormatTo] write to any [Sink]
//   - [FormatToN] writes into a fixed slice and reports the full size
//   - [FormattedSize] only counts
//   - [FormatLoc] applies a [Locale] to fields with the 'L' flag
//
// # Spec Grammar
//
// The text after ':' follows
//
//	[[fill]align][sign]["#"]["0"][width]["." precision]["L"][type]
//
// Align is '<', '>' or '^'. Sign is '+', '-' or ' '. Width and precision
// are literal numbers or nested fields ("{}", "{2}", "{w}") naming an
// integer argument. Types:
//
//   - integers: d x X o b B c
//   - floats: a A e E f F g G %
//   - strings: s ?
//   - pointers: p
//
// Illegal combinations fail with a [*FormatError] wrapping [ErrInvalidSpec].
// Floats without precision or type print the shortest text that parses back
// to the same value.
//
// # Dynamic Arguments
//
// A [Store] builds an argument list at run time. Byte slices and custom
// values are copied into an arena owned by the store; [Store.Clear]
// releases everything at once:
//
//	var st fmtx.Store
//	st.Reserve(2, 1)
//	st.Push(fmtx.Float64(1.5))
//	st.PushNamed("a", fmtx.Int(42))
//	s, _ := fmtx.VFormat("{} and {a}", st.Args())
//
// # Custom Types
//
// A type implementing [Formatter] is passed with [Custom] (by copy) or
// [Ref] (by reference). Its Format method reads the parsed spec from the
// [Context] and can use [Context.Pad] for fill and alignment. Implement
// [SpecParser] to take over the spec grammar.
//
// # Compiled Templates
//
// [Compile] checks a template once against argument prototypes made with
// [Param] and returns a reusable [Template]. [MustCompile] suits
// package-level variables:
//
//	var row = fmtx.MustCompile("{:<10} {:>8.2f}", fmtx.Param(fmtx.KindString), fmtx.Param(fmtx.KindFloat64))
//
// # Errors
//
// Formatting errors are [*FormatError] values carrying a message and the
// byte offset. They wrap one of:
//
//   - [ErrInvalidTemplate]: braces that do not form a field
//   - [ErrInvalidSpec]: a spec that does not parse or does not fit the argument
//   - [ErrArgNotFound]: an index or name with no argument
//   - [ErrIndexingMode]: automatic and manual indexing mixed
//   - [ErrDynamicSpec]: a bad dynamic width or precision
//   - [ErrKindMismatch]: arguments that do not match a compiled template
//
// Programming errors panic with a [*ContractViolation].
package fmtx
