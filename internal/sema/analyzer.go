package sema

import (
	"fmt"

	"github.com/parl-lang/parlc/internal/ast"
	"github.com/parl-lang/parlc/internal/errors"
)

type analyzer struct {
	symtab *SymbolTable

	expectedReturn TypeTag
	inFunctionBody bool

	trace func(string)
}

// Analyze runs the single semantic pass over prog and returns the
// first rule violation encountered, or nil if the program type-checks.
// Rule violations are raised as panics inside the analyzer (grounded
// on the teacher's own panic-based parser error signaling) and
// recovered here, at this package's boundary, so no panic escapes to
// a caller. trace, when non-nil, receives one line per scope push/pop
// — purely a debugging aid, never consulted by the analyzer itself.
func Analyze(prog *ast.Program, trace func(string)) (err error) {
	a := &analyzer{symtab: NewSymbolTable(), trace: trace}
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*errors.CompileError); ok {
				err = ce
				return
			}
			panic(r)
		}
	}()
	a.analyzeBlock(prog.Root)
	return nil
}

func (a *analyzer) pushScope(isolated bool) {
	a.symtab.PushScope(isolated)
	if a.trace != nil {
		a.trace(fmt.Sprintf("sema: push scope depth=%d isolated=%v", a.symtab.Size(), isolated))
	}
}

func (a *analyzer) popScope() {
	if a.trace != nil {
		a.trace(fmt.Sprintf("sema: pop scope depth=%d", a.symtab.Size()))
	}
	a.symtab.PopScope()
}

func fail(line int, message string) {
	panic(errors.NewSemantic(line, message))
}

func notFound(name string, line int) {
	panic(errors.NewNotFound(name, line))
}

// analyzeBlock implements spec.md §4.3 "Block entry": push an
// unisolated scope, pre-pass top-level function declarations so
// forward/mutual references resolve, then visit every statement.
func (a *analyzer) analyzeBlock(b *ast.Block) {
	a.pushScope(false)
	for _, s := range b.Stmts {
		if fd, ok := s.(*ast.FuncDecl); ok {
			a.registerFuncSignature(fd)
		}
	}
	for _, s := range b.Stmts {
		a.analyzeStmt(s)
	}
	a.popScope()
}

func paramTag(p ast.Param) TypeTag {
	return TypeTag{Kind: p.Kind, IsArray: p.IsArray, ArraySize: p.ArraySize}
}

func (a *analyzer) registerFuncSignature(fd *ast.FuncDecl) {
	if !a.symtab.InRoot() {
		fail(fd.Line, "Functions may only be declared at the root scope")
	}
	if fd.Name == "main" {
		fail(fd.Line, "Cannot call function 'main'")
	}
	params := make([]TypeTag, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = paramTag(p)
	}
	entry := &Entry{
		Name:       fd.Name,
		Type:       TypeTag{Kind: fd.ReturnKind, IsArray: fd.ReturnIsArray, ArraySize: fd.ReturnArraySize},
		IsFunction: true,
		Params:     params,
	}
	if !a.symtab.Insert(fd.Name, entry) {
		fail(fd.Line, "'"+fd.Name+"' is already declared in this scope")
	}
}

func (a *analyzer) analyzeStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.VarDecl:
		a.analyzeVarDecl(st)
	case *ast.Assignment:
		a.analyzeAssignment(st)
	case *ast.If:
		a.requireBoolScalar(st.Cond)
		a.analyzeBlock(st.Then)
		if st.Else != nil {
			a.analyzeBlock(st.Else)
		}
	case *ast.While:
		a.requireBoolScalar(st.Cond)
		a.analyzeBlock(st.Body)
	case *ast.For:
		a.analyzeFor(st)
	case *ast.Return:
		a.analyzeReturn(st)
	case *ast.FuncDecl:
		a.analyzeFuncBody(st)
	case *ast.PrintStmt:
		a.typeOfExpr(st.Value)
	case *ast.DelayStmt:
		a.requireTag(st.Value, TypeTag{Kind: ast.KindInt})
	case *ast.WriteStmt:
		a.requireTag(st.X, TypeTag{Kind: ast.KindInt})
		a.requireTag(st.Y, TypeTag{Kind: ast.KindInt})
		a.requireTag(st.Colour, TypeTag{Kind: ast.KindColour})
	case *ast.WriteBoxStmt:
		a.requireTag(st.X, TypeTag{Kind: ast.KindInt})
		a.requireTag(st.Y, TypeTag{Kind: ast.KindInt})
		a.requireTag(st.W, TypeTag{Kind: ast.KindInt})
		a.requireTag(st.H, TypeTag{Kind: ast.KindInt})
		a.requireTag(st.Colour, TypeTag{Kind: ast.KindColour})
	case *ast.ClearStmt:
		a.requireTag(st.Colour, TypeTag{Kind: ast.KindColour})
	default:
		errors.Internal("sema: unhandled statement type %T", s)
	}
}

func (a *analyzer) requireBoolScalar(e ast.Expr) {
	t := a.typeOfExpr(e)
	if t.IsArray || t.Kind != ast.KindBool {
		fail(lineOf(e), "Condition must be a bool")
	}
}

func (a *analyzer) requireTag(e ast.Expr, want TypeTag) {
	got := a.typeOfExpr(e)
	if !got.Equal(want) {
		fail(lineOf(e), "Assigned types are different. Use 'as' to cast types")
	}
}

func (a *analyzer) analyzeVarDecl(vd *ast.VarDecl) {
	declTag := TypeTag{Kind: vd.Kind, IsArray: vd.IsArray}

	if vd.IsArray {
		size := vd.DeclaredSize
		if vd.IsRepeat {
			if size <= 0 {
				fail(vd.Line, "Array size must be greater than zero")
			}
		} else if size == -1 {
			size = len(vd.ArrayElems)
		} else if size != len(vd.ArrayElems) {
			fail(vd.Line, "Declared array size does not match the literal's element count")
		}
		if size <= 0 {
			fail(vd.Line, "Array size must be greater than zero")
		}
		declTag.ArraySize = size
	}

	if !a.symtab.Insert(vd.Name, &Entry{Name: vd.Name, Type: declTag}) {
		fail(vd.Line, "'"+vd.Name+"' is already declared in this scope")
	}

	if vd.IsArray {
		elemTag := TypeTag{Kind: vd.Kind}
		for _, el := range vd.ArrayElems {
			if t := a.typeOfExpr(el); !t.Equal(elemTag) {
				fail(lineOf(el), "Array elements must all have the declared element type")
			}
		}
		return
	}

	initTag := a.typeOfExpr(vd.Init)
	if !initTag.Equal(declTag) {
		fail(vd.Line, "Assigned types are different. Use 'as' to cast types")
	}
}

func (a *analyzer) analyzeAssignment(asn *ast.Assignment) {
	entry, ok := a.symtab.Lookup(asn.Name)
	if !ok || entry.IsFunction {
		notFound(asn.Name, asn.Line)
	}

	target := entry.Type
	if asn.Index != nil {
		if !entry.Type.IsArray {
			fail(asn.Line, "'"+asn.Name+"' is not an array")
		}
		a.typeOfExpr(asn.Index)
		target = TypeTag{Kind: entry.Type.Kind}
	}

	valTag := a.typeOfExpr(asn.Value)
	if !valTag.Equal(target) {
		fail(asn.Line, "Assigned types are different. Use 'as' to cast types")
	}
}

func (a *analyzer) analyzeFor(f *ast.For) {
	a.pushScope(false)
	if f.Decl != nil {
		a.analyzeVarDecl(f.Decl)
	}
	a.requireBoolScalar(f.Cond)
	if f.Step != nil {
		a.analyzeAssignment(f.Step)
	}
	a.analyzeBlock(f.Body)
	a.popScope()
}

func (a *analyzer) analyzeReturn(r *ast.Return) {
	if !a.inFunctionBody {
		fail(r.Line, "'return' outside a function body")
	}
	got := a.typeOfExpr(r.Value)
	if !got.Equal(a.expectedReturn) {
		fail(r.Line, "Assigned types are different. Use 'as' to cast types")
	}
}

func (a *analyzer) analyzeFuncBody(fd *ast.FuncDecl) {
	savedReturn, savedIn := a.expectedReturn, a.inFunctionBody
	a.expectedReturn = TypeTag{Kind: fd.ReturnKind, IsArray: fd.ReturnIsArray, ArraySize: fd.ReturnArraySize}
	a.inFunctionBody = true

	a.pushScope(true)
	for _, p := range fd.Params {
		if !a.symtab.Insert(p.Name, &Entry{Name: p.Name, Type: paramTag(p)}) {
			fail(fd.Line, "'"+p.Name+"' is already declared in this scope")
		}
	}
	a.analyzeBlock(fd.Body)
	if !definiteReturn(fd.Body) {
		fail(fd.Line, "Function '"+fd.Name+"' does not definitely return")
	}
	a.popScope()

	a.expectedReturn, a.inFunctionBody = savedReturn, savedIn
}

// definiteReturn implements spec.md §4.3's definite-return rule: a
// top-level `return`, or an if/else whose both branches definitely
// return. While/for bodies never count, since they may not execute.
func definiteReturn(b *ast.Block) bool {
	for _, s := range b.Stmts {
		switch st := s.(type) {
		case *ast.Return:
			return true
		case *ast.If:
			if st.Else != nil && definiteReturn(st.Then) && definiteReturn(st.Else) {
				return true
			}
		}
	}
	return false
}

func lineOf(e ast.Expr) int {
	switch n := e.(type) {
	case *ast.IntLit:
		return n.Line
	case *ast.FloatLit:
		return n.Line
	case *ast.BoolLit:
		return n.Line
	case *ast.ColourLit:
		return n.Line
	case *ast.Ident:
		return n.Line
	case *ast.Index:
		return n.Line
	case *ast.Call:
		return n.Line
	case *ast.Binary:
		return n.Line
	case *ast.Unary:
		return n.Line
	case *ast.Cast:
		return n.Line
	case *ast.BuiltinExpr:
		return n.Line
	default:
		return 0
	}
}
