// Package lint finds template literals passed to fmtx calls in Go source
// and checks them with the same parser the formatter uses.
package lint

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bjaus/fmtx"
)

// ImportPath is the package whose calls are checked.
const ImportPath = "github.com/bjaus/fmtx"

// templateArg maps fmtx functions to the position of their template
// argument. Arguments follow the template.
var templateArg = map[string]int{
	"Format":        0,
	"FormatLoc":     1,
	"FormattedSize": 0,
	"Append":        1,
	"Write":         1,
	"FormatTo":      1,
	"FormatToN":     1,
	"Compile":       0,
	"MustCompile":   0,
	"Check":         0,
}

var kindOf = map[string]fmtx.Kind{
	"Int": fmtx.KindInt, "Int8": fmtx.KindInt, "Int16": fmtx.KindInt,
	"Int32": fmtx.KindInt, "Int64": fmtx.KindInt,
	"Uint": fmtx.KindUint, "Uint8": fmtx.KindUint, "Uint16": fmtx.KindUint,
	"Uint32": fmtx.KindUint, "Uint64": fmtx.KindUint, "Uintptr": fmtx.KindUint,
	"Bool":    fmtx.KindBool,
	"Char":    fmtx.KindChar,
	"Float32": fmtx.KindFloat32,
	"Float64": fmtx.KindFloat64,
	"Str":     fmtx.KindString, "Bytes": fmtx.KindString, "RefBytes": fmtx.KindString,
	"Ptr": fmtx.KindPointer, "Addr": fmtx.KindPointer,
	"Custom": fmtx.KindCustom, "Ref": fmtx.KindCustom, "Join": fmtx.KindCustom,
}

// Checker checks template literals. It is safe for concurrent use once
// built.
type Checker struct {
	extra map[string]bool
	log   zerolog.Logger
}

// NewChecker returns a Checker. Functions names extra calls, matched by
// their bare or selector name, whose first argument is a template followed
// by fmtx arguments.
func NewChecker(log zerolog.Logger, functions ...string) *Checker {
	c := &Checker{extra: make(map[string]bool, len(functions)), log: log}
	for _, f := range functions {
		c.extra[f] = true
	}
	return c
}

// CheckSource parses src and checks every recognised call in it.
func (c *Checker) CheckSource(filename string, src []byte) ([]Diagnostic, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	pkgName := importName(file)
	var diags []Diagnostic
	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		name, at, ok := c.match(call, pkgName)
		if !ok || at >= len(call.Args) {
			return true
		}
		if d, ok := c.checkCall(fset, call, name, at, pkgName); ok {
			diags = append(diags, d)
		}
		return true
	})
	return diags, nil
}

// CheckFile reads and checks one file.
func (c *Checker) CheckFile(path string) ([]Diagnostic, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.CheckSource(path, src)
}

// CheckFiles checks paths with at most jobs files in flight and returns
// the diagnostics sorted by position. jobs <= 0 means no limit.
func (c *Checker) CheckFiles(ctx context.Context, paths []string, jobs int) ([]Diagnostic, error) {
	results := make([][]Diagnostic, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := c.CheckFile(p)
			if err != nil {
				return err
			}
			c.log.Debug().Str("file", p).Int("diagnostics", len(d)).Msg("checked")
			results[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var all []Diagnostic
	for _, r := range results {
		all = append(all, r...)
	}
	slices.SortStableFunc(all, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.File, b.File),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
		)
	})
	return all, nil
}

// importName returns the local name of the fmtx import, or "" when the
// file does not import it.
func importName(file *ast.File) string {
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil || p != ImportPath {
			continue
		}
		if imp.Name != nil {
			return imp.Name.Name
		}
		return "fmtx"
	}
	return ""
}

// match reports the function name and template position of a call.
func (c *Checker) match(call *ast.CallExpr, pkgName string) (string, int, bool) {
	switch fn := call.Fun.(type) {
	case *ast.SelectorExpr:
		if x, ok := fn.X.(*ast.Ident); ok && pkgName != "" && x.Name == pkgName {
			if at, ok := templateArg[fn.Sel.Name]; ok {
				return pkgName + "." + fn.Sel.Name, at, true
			}
		}
		if c.extra[fn.Sel.Name] {
			return fn.Sel.Name, 0, true
		}
	case *ast.Ident:
		if c.extra[fn.Name] {
			return fn.Name, 0, true
		}
		if pkgName == "." {
			if at, ok := templateArg[fn.Name]; ok {
				return fn.Name, at, true
			}
		}
	}
	return "", 0, false
}

func (c *Checker) checkCall(fset *token.FileSet, call *ast.CallExpr, name string, at int, pkgName string) (Diagnostic, bool) {
	tmpl, ok := stringConst(call.Args[at])
	if !ok {
		return Diagnostic{}, false
	}
	if call.Ellipsis.IsValid() {
		c.log.Trace().Str("call", name).Msg("skipping call with spread arguments")
		return Diagnostic{}, false
	}
	rest := call.Args[at+1:]
	params := make([]fmtx.Arg, len(rest))
	for i, e := range rest {
		params[i] = prototype(e, pkgName)
	}
	err := fmtx.Check(tmpl, params...)
	if err == nil {
		return Diagnostic{}, false
	}
	p := fset.Position(call.Args[at].Pos())
	d := Diagnostic{
		File:     p.Filename,
		Line:     p.Line,
		Column:   p.Column,
		Call:     name,
		Template: tmpl,
		Message:  err.Error(),
	}
	var fe *fmtx.FormatError
	if errors.As(err, &fe) {
		d.Offset = fe.Pos
	}
	return d, true
}

// stringConst evaluates a string literal or a '+' concatenation of them.
func stringConst(e ast.Expr) (string, bool) {
	switch x := e.(type) {
	case *ast.BasicLit:
		if x.Kind != token.STRING {
			return "", false
		}
		s, err := strconv.Unquote(x.Value)
		return s, err == nil
	case *ast.ParenExpr:
		return stringConst(x.X)
	case *ast.BinaryExpr:
		if x.Op != token.ADD {
			return "", false
		}
		l, ok := stringConst(x.X)
		if !ok {
			return "", false
		}
		r, ok := stringConst(x.Y)
		return l + r, ok
	}
	return "", false
}

// prototype infers the argument an expression builds. Unknown expressions
// become KindNone, which accepts any spec.
func prototype(e ast.Expr, pkgName string) fmtx.Arg {
	call, ok := e.(*ast.CallExpr)
	if !ok {
		return fmtx.Param(fmtx.KindNone)
	}
	name := calleeName(call.Fun, pkgName)
	switch name {
	case "":
		return fmtx.Param(fmtx.KindNone)
	case "Named":
		if len(call.Args) != 2 {
			return fmtx.Param(fmtx.KindNone)
		}
		n, ok := stringConst(call.Args[0])
		if !ok {
			return fmtx.Param(fmtx.KindNone)
		}
		return fmtx.Named(n, prototype(call.Args[1], pkgName))
	case "Param":
		if len(call.Args) == 1 {
			if k, ok := kindConst(call.Args[0], pkgName); ok {
				return fmtx.Param(k)
			}
		}
		return fmtx.Param(fmtx.KindNone)
	}
	if k, ok := kindOf[name]; ok {
		return fmtx.Param(k)
	}
	return fmtx.Param(fmtx.KindNone)
}

// calleeName returns the fmtx function a call expression names, looking
// through generic instantiation.
func calleeName(fun ast.Expr, pkgName string) string {
	switch f := fun.(type) {
	case *ast.IndexExpr:
		return calleeName(f.X, pkgName)
	case *ast.IndexListExpr:
		return calleeName(f.X, pkgName)
	case *ast.SelectorExpr:
		if x, ok := f.X.(*ast.Ident); ok && pkgName != "" && x.Name == pkgName {
			return f.Sel.Name
		}
	case *ast.Ident:
		if pkgName == "." {
			return f.Name
		}
	}
	return ""
}

// kindConst resolves fmtx.KindX selectors.
func kindConst(e ast.Expr, pkgName string) (fmtx.Kind, bool) {
	name := calleeName(e, pkgName)
	if !strings.HasPrefix(name, "Kind") {
		return fmtx.KindNone, false
	}
	k, err := fmtx.ParseKind(strings.ToLower(strings.TrimPrefix(name, "Kind")))
	if err != nil {
		return fmtx.KindNone, false
	}
	return k, true
}
