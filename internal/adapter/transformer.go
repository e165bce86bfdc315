// Package adapter contains infrastructure adapters for the formprobe CLI:
// filesystem access, the memoizing transformer, report persistence and
// child-process execution.
package adapter

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"strconv"
	"strings"

	m "formprobe.dev/pkg/formprobe/internal/model"
)

// Transformer is the compiler under test, reduced to the one capability
// the harness consumes: an opaque source-to-source function. Alternate
// compiler versions or entirely different optimizing transforms can be
// substituted here without touching the gate or the loader.
type Transformer interface {
	Transform(path m.Path, src []byte, opts m.TransformOptions) ([]byte, error)
}

const (
	memoImportPath = "formprobe.dev/pkg/formprobe/pkg/memo"
	memoAlias      = "__memo"

	// skipDirective is the opt-out marker. Placed at the top of a
	// component literal's body it excludes that component from the
	// memoization pass, the way workaround scenarios neutralize the
	// transform.
	skipDirective = "memo:skip"
)

// supportedTargets are the runtime compatibility levels the transformer
// can emit for.
var supportedTargets = map[string]bool{
	"go1.24": true,
	"go1.25": true,
}

// MemoTransformer rewrites component-shaped function literals into calls
// through the memo runtime. It is pure: same input, same output, no state
// between invocations.
type MemoTransformer struct{}

// NewMemoTransformer constructs a MemoTransformer.
func NewMemoTransformer() *MemoTransformer {
	return &MemoTransformer{}
}

// Transform parses src, wraps every component literal that does not carry
// the skip directive in __memo.Wrap, injects the runtime import and prints
// the emitted code. Comments are dropped from the output, as compiler
// emissions do. Parse or emit failures propagate; there is no silent
// fallback to the untransformed source.
func (t *MemoTransformer) Transform(path m.Path, src []byte, opts m.TransformOptions) ([]byte, error) {
	if !supportedTargets[opts.TargetVersion] {
		return nil, fmt.Errorf("unsupported target version %q", opts.TargetVersion)
	}

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, string(path), src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	parents := buildParentMap(file)
	wrapped := 0

	var literals []*ast.FuncLit

	ast.Inspect(file, func(n ast.Node) bool {
		lit, ok := n.(*ast.FuncLit)
		if !ok {
			return true
		}

		if !isComponentSignature(lit.Type) {
			return true
		}

		if isWrapCall(parents[lit]) {
			return true
		}

		if hasSkipDirective(file, fset, lit) {
			return true
		}

		literals = append(literals, lit)

		return true
	})

	for _, lit := range literals {
		// A literal in a position the rewriter does not understand is
		// left alone; the memoization pass bails out rather than guess.
		if replaceChild(parents[lit], lit, wrapCall(lit)) {
			wrapped++
		}
	}

	if wrapped > 0 {
		ensureMemoImport(file)
	}

	file.Comments = nil

	var buf bytes.Buffer

	cfg := printer.Config{Mode: printer.UseSpaces | printer.TabIndent, Tabwidth: 8}
	if err := cfg.Fprint(&buf, fset, file); err != nil {
		return nil, fmt.Errorf("emit %s: %w", path, err)
	}

	return buf.Bytes(), nil
}

// isComponentSignature matches func(rc *render.Ctx, props render.Props)
// render.Node, by shape rather than by resolved type: two parameters, the
// first a pointer to a Ctx, the second a Props, one Node result.
func isComponentSignature(ft *ast.FuncType) bool {
	if ft.Params == nil || len(ft.Params.List) != 2 {
		return false
	}

	if ft.Results == nil || len(ft.Results.List) != 1 {
		return false
	}

	star, ok := ft.Params.List[0].Type.(*ast.StarExpr)
	if !ok || !typeNameIs(star.X, "Ctx") {
		return false
	}

	if !typeNameIs(ft.Params.List[1].Type, "Props") {
		return false
	}

	return typeNameIs(ft.Results.List[0].Type, "Node")
}

func typeNameIs(expr ast.Expr, name string) bool {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name == name
	case *ast.SelectorExpr:
		return e.Sel.Name == name
	default:
		return false
	}
}

// isWrapCall reports whether parent is already a __memo.Wrap invocation,
// which keeps the transform idempotent.
func isWrapCall(parent ast.Node) bool {
	call, ok := parent.(*ast.CallExpr)
	if !ok {
		return false
	}

	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}

	pkg, ok := sel.X.(*ast.Ident)

	return ok && pkg.Name == memoAlias && sel.Sel.Name == "Wrap"
}

// hasSkipDirective looks for the opt-out comment opening the literal's
// body: it must start on the brace line or the line after it.
func hasSkipDirective(file *ast.File, fset *token.FileSet, lit *ast.FuncLit) bool {
	if lit.Body == nil {
		return false
	}

	braceLine := fset.Position(lit.Body.Lbrace).Line

	for _, group := range file.Comments {
		if group.Pos() <= lit.Body.Lbrace || group.End() >= lit.Body.Rbrace {
			continue
		}

		line := fset.Position(group.Pos()).Line
		if line > braceLine+1 {
			continue
		}

		if strings.Contains(group.Text(), skipDirective) {
			return true
		}
	}

	return false
}

func wrapCall(lit *ast.FuncLit) ast.Expr {
	return &ast.CallExpr{
		Fun: &ast.SelectorExpr{
			X:   ast.NewIdent(memoAlias),
			Sel: ast.NewIdent("Wrap"),
		},
		Args: []ast.Expr{lit},
	}
}

// replaceChild swaps old for new inside parent for the expression
// positions component literals occur in. Returns false when the parent
// shape is not handled.
func replaceChild(parent ast.Node, old, repl ast.Expr) bool {
	switch p := parent.(type) {
	case *ast.CallExpr:
		for i, arg := range p.Args {
			if arg == old {
				p.Args[i] = repl
				return true
			}
		}
	case *ast.AssignStmt:
		for i, rhs := range p.Rhs {
			if rhs == old {
				p.Rhs[i] = repl
				return true
			}
		}
	case *ast.ValueSpec:
		for i, v := range p.Values {
			if v == old {
				p.Values[i] = repl
				return true
			}
		}
	case *ast.ReturnStmt:
		for i, r := range p.Results {
			if r == old {
				p.Results[i] = repl
				return true
			}
		}
	case *ast.KeyValueExpr:
		if p.Value == old {
			p.Value = repl
			return true
		}
	case *ast.CompositeLit:
		for i, e := range p.Elts {
			if e == old {
				p.Elts[i] = repl
				return true
			}
		}
	case *ast.ParenExpr:
		if p.X == old {
			p.X = repl
			return true
		}
	}

	return false
}

func ensureMemoImport(file *ast.File) {
	for _, imp := range file.Imports {
		if imp.Path != nil && imp.Path.Value == strconv.Quote(memoImportPath) {
			return
		}
	}

	spec := &ast.ImportSpec{
		Name: ast.NewIdent(memoAlias),
		Path: &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(memoImportPath)},
	}

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.IMPORT {
			continue
		}

		// A single-line import decl has to become a block before it can
		// hold a second spec.
		if !gen.Lparen.IsValid() {
			gen.Lparen = gen.TokPos + token.Pos(len("import"))
			gen.Rparen = gen.End()
		}

		gen.Specs = append(gen.Specs, spec)
		file.Imports = append(file.Imports, spec)

		return
	}

	file.Decls = append([]ast.Decl{&ast.GenDecl{Tok: token.IMPORT, Specs: []ast.Spec{spec}}}, file.Decls...)
	file.Imports = append(file.Imports, spec)
}

// buildParentMap records each node's syntactic parent in one walk.
func buildParentMap(root ast.Node) map[ast.Node]ast.Node {
	parents := map[ast.Node]ast.Node{}

	var stack []ast.Node

	ast.Inspect(root, func(n ast.Node) bool {
		if n == nil {
			stack = stack[:len(stack)-1]
			return true
		}

		if len(stack) > 0 {
			parents[n] = stack[len(stack)-1]
		}

		stack = append(stack, n)

		return true
	})

	return parents
}
