package parser

import (
	"testing"

	"github.com/parl-lang/parlc/internal/ast"
)

func TestParse_VarDeclAndPrint(t *testing.T) {
	prog, err := Parse(`let a : int = 1 + 2; __print a;`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Root.Stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Root.Stmts))
	}
	vd, ok := prog.Root.Stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("stmt 0 = %T, want *ast.VarDecl", prog.Root.Stmts[0])
	}
	if vd.Name != "a" || vd.Kind != ast.KindInt || vd.IsArray {
		t.Fatalf("unexpected VarDecl: %+v", vd)
	}
	bin, ok := vd.Init.(*ast.Binary)
	if !ok || bin.Op != "+" {
		t.Fatalf("Init = %#v, want Binary +", vd.Init)
	}
	if _, ok := prog.Root.Stmts[1].(*ast.PrintStmt); !ok {
		t.Fatalf("stmt 1 = %T, want *ast.PrintStmt", prog.Root.Stmts[1])
	}
}

func TestParse_ArrayLiteralOrderedAndRepeat(t *testing.T) {
	prog, err := Parse(`let a : int[] = [10, 20, 30]; let b : int[3] = [7];`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a := prog.Root.Stmts[0].(*ast.VarDecl)
	if a.IsRepeat || a.DeclaredSize != 3 || len(a.ArrayElems) != 3 {
		t.Fatalf("ordered array decl: %+v", a)
	}
	b := prog.Root.Stmts[1].(*ast.VarDecl)
	if !b.IsRepeat || b.DeclaredSize != 3 || len(b.ArrayElems) != 1 {
		t.Fatalf("repeat array decl: %+v", b)
	}
}

func TestParse_Precedence(t *testing.T) {
	prog, err := Parse(`let a : int = 1 + 2 * 3;`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	vd := prog.Root.Stmts[0].(*ast.VarDecl)
	top, ok := vd.Init.(*ast.Binary)
	if !ok || top.Op != "+" {
		t.Fatalf("top-level op = %#v, want +", vd.Init)
	}
	rhs, ok := top.Right.(*ast.Binary)
	if !ok || rhs.Op != "*" {
		t.Fatalf("multiplication should nest under addition, got %#v", top.Right)
	}
}

func TestParse_IfElse(t *testing.T) {
	src := `
fun abs(x: int) -> int {
  if (x < 0) { return -x; } else { return x; }
}
`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fn := prog.Root.Stmts[0].(*ast.FuncDecl)
	if fn.Name != "abs" || len(fn.Params) != 1 || fn.Params[0].Name != "x" {
		t.Fatalf("unexpected FuncDecl: %+v", fn)
	}
	ifStmt := fn.Body.Stmts[0].(*ast.If)
	if ifStmt.Else == nil {
		t.Fatalf("expected else branch")
	}
}

func TestParse_ForwardFunctionReference(t *testing.T) {
	src := `
fun a() -> int { return b(); }
fun b() -> int { return 42; }
`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Root.Stmts) != 2 {
		t.Fatalf("got %d top-level statements, want 2", len(prog.Root.Stmts))
	}
}

func TestParse_BuiltinStatements(t *testing.T) {
	src := `__write 1, 2, #ff0000; __write_box 1, 2, 3, 4, #00ff00; __delay 10; __clear #000000;`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Root.Stmts) != 4 {
		t.Fatalf("got %d statements, want 4", len(prog.Root.Stmts))
	}
	if _, ok := prog.Root.Stmts[0].(*ast.WriteStmt); !ok {
		t.Fatalf("stmt 0 = %T", prog.Root.Stmts[0])
	}
	if _, ok := prog.Root.Stmts[1].(*ast.WriteBoxStmt); !ok {
		t.Fatalf("stmt 1 = %T", prog.Root.Stmts[1])
	}
}

func TestParse_BuiltinExpressions(t *testing.T) {
	prog, err := Parse(`let x : int = __read __width, __height;`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	vd := prog.Root.Stmts[0].(*ast.VarDecl)
	call, ok := vd.Init.(*ast.BuiltinExpr)
	if !ok || call.Name != "__read" || len(call.Args) != 2 {
		t.Fatalf("unexpected builtin expr: %#v", vd.Init)
	}
}

func TestParse_SyntaxErrorReportsPosition(t *testing.T) {
	_, err := Parse("let a : int = ;")
	if err == nil {
		t.Fatalf("expected a syntax error")
	}
	if got, want := err.Error(), "Syntax error at line 1 character 14"; got != want {
		t.Fatalf("err = %q, want %q", got, want)
	}
}

func TestParse_ForLoop(t *testing.T) {
	src := `for (let i : int = 0; i < 10; i = i + 1) { __print i; }`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	f, ok := prog.Root.Stmts[0].(*ast.For)
	if !ok {
		t.Fatalf("stmt 0 = %T, want *ast.For", prog.Root.Stmts[0])
	}
	if f.Decl == nil || f.Step == nil {
		t.Fatalf("expected decl and step to be present: %+v", f)
	}
}
