package codegen

import (
	"strings"
	"testing"

	"github.com/parl-lang/parlc/internal/parser"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	asm, err := Generate(prog, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return asm
}

func lines(asm string) []string {
	return strings.Split(asm, "\n")
}

func TestGenerate_ScalarDeclAndPrint(t *testing.T) {
	asm := generate(t, `let a : int = 1 + 2; __print a;`)
	ls := lines(asm)

	want := []string{".main", "oframe", "push 2", "push 1", "add", "st", "print", "cframe", "halt"}
	idx := 0
	for _, l := range ls {
		if idx < len(want) && strings.HasPrefix(l, want[idx]) {
			idx++
		}
	}
	if idx != len(want) {
		t.Fatalf("expected lines %v to appear in order within:\n%s", want, asm)
	}
	if ls[0] != ".main" {
		t.Fatalf("program must open with .main, got %q", ls[0])
	}
	if !strings.Contains(asm, "halt\n.__Reverse") {
		t.Fatalf("main section must end with halt, directly followed by the appended .__Reverse section:\n%s", asm)
	}
}

func TestGenerate_ArrayDeclUsesOrderedLiteralAndSta(t *testing.T) {
	asm := generate(t, `let a : int[] = [10, 20, 30]; __print a;`)
	if !strings.Contains(asm, "push 30\npush 20\npush 10\npush 3") {
		t.Fatalf("array literal must push elements in reverse source order, then size 3:\n%s", asm)
	}
	if !strings.Contains(asm, "sta") {
		t.Fatalf("array declaration must store with sta:\n%s", asm)
	}
	if !strings.Contains(asm, "push .__Reverse") || !strings.Contains(asm, "printa") {
		t.Fatalf("array print must route through __Reverse before printa:\n%s", asm)
	}
}

func TestGenerate_ArrayRepeatUsesDupa(t *testing.T) {
	asm := generate(t, `let a : int[3] = [7];`)
	if !strings.Contains(asm, "push 7") || !strings.Contains(asm, "dupa") {
		t.Fatalf("repeat array must emit its one value then dupa:\n%s", asm)
	}
}

func TestGenerate_IfElseShape(t *testing.T) {
	asm := generate(t, `
fun abs(x: int) -> int {
  if (x < 0) { return -x; } else { return x; }
}
`)
	if !strings.Contains(asm, ".abs") {
		t.Fatalf("expected a .abs function section:\n%s", asm)
	}
	if !strings.Contains(asm, "cjmp") || !strings.Contains(asm, "jmp") {
		t.Fatalf("if/else must emit a conditional and an unconditional jump:\n%s", asm)
	}
	if strings.Count(asm, "ret") < 2 {
		t.Fatalf("both branches must end in ret:\n%s", asm)
	}
}

func TestGenerate_WhileLoopJumpsBackToCondition(t *testing.T) {
	asm := generate(t, `
let i : int = 0;
while (i < 3) {
  i = i + 1;
}
`)
	if !strings.Contains(asm, "push #PC-") {
		t.Fatalf("while must jump backward to retest its condition:\n%s", asm)
	}
}

func TestGenerate_ForLoopOpensOwnScope(t *testing.T) {
	asm := generate(t, `
for (let i : int = 0; i < 5; i = i + 1) {
  __print i;
}
`)
	if strings.Count(asm, "oframe") < 2 {
		t.Fatalf("for must open its own bracketing scope in addition to its body block:\n%s", asm)
	}
}

func TestGenerate_CallPushesArgsInReverseOrder(t *testing.T) {
	asm := generate(t, `
fun add(a: int, b: int) -> int { return a + b; }
let x : int = add(1, 2);
`)
	if !strings.Contains(asm, "push 2\npush 1\npush 2\npush .add\ncall") {
		t.Fatalf("call must push args in reverse source order, then arg count, then function label:\n%s", asm)
	}
}

func TestGenerate_ForwardReferenceCallResolves(t *testing.T) {
	asm := generate(t, `
fun a() -> int { return b(); }
fun b() -> int { return 42; }
`)
	if !strings.Contains(asm, "push .b") {
		t.Fatalf("forward call to b must resolve to its label:\n%s", asm)
	}
}

func TestGenerate_ArrayParamPrologueStoresWithSta(t *testing.T) {
	asm := generate(t, `
fun sum(xs: int[3]) -> int {
  return xs[0];
}
`)
	if !strings.Contains(asm, ".sum\npush 0\npush 0\nsta") {
		t.Fatalf("array parameter prologue must re-store the incoming words with sta right after the label:\n%s", asm)
	}
}

func TestGenerate_ArrayReturnUsesDropAndReta(t *testing.T) {
	asm := generate(t, `
fun first3() -> int[3] {
  let xs : int[] = [1, 2, 3];
  return xs;
}
`)
	if !strings.Contains(asm, "push 3") {
		t.Fatalf("array return must push its element count before the value:\n%s", asm)
	}
	if !strings.Contains(asm, "drop\npush 4\nreta") {
		t.Fatalf("array return must drop then push size+1 then reta:\n%s", asm)
	}
}

func TestGenerate_IndexAssignmentComputesOffsetAndStores(t *testing.T) {
	asm := generate(t, `
let a : int[] = [1, 2, 3];
a[1] = 9;
`)
	if !strings.Contains(asm, "push 9\npush 1\npush 2\nsub\npush 0\nadd") {
		t.Fatalf("index assignment must compute (size-1 - index) + base before storing:\n%s", asm)
	}
	if !strings.Contains(asm, "add\npush 0\nst") {
		t.Fatalf("index assignment must store the computed address with st:\n%s", asm)
	}
}

func TestGenerate_WholeArrayAssignmentCopiesThenReemitsTarget(t *testing.T) {
	asm := generate(t, `
let a : int[] = [1, 2, 3];
let b : int[] = [4, 5, 6];
a = b;
`)
	if !strings.Contains(asm, "push 0\npush 0\nsta") {
		t.Fatalf("whole-array assignment must store b's three-piece form into a's slot with sta:\n%s", asm)
	}
	if !strings.Contains(asm, "sta\npush 3\npusha") {
		t.Fatalf("whole-array assignment must re-emit a's own three-piece form after the store:\n%s", asm)
	}
}

func TestGenerate_BuiltinStatementsEmitExpectedMnemonics(t *testing.T) {
	asm := generate(t, `
__write 1, 2, #ff0000;
__write_box 1, 2, 3, 4, #00ff00;
__delay 100;
__clear #000000;
`)
	for _, op := range []string{"write", "writebox", "delay", "clear"} {
		if !strings.Contains(asm, "\n"+op+"\n") && !strings.HasSuffix(asm, "\n"+op) {
			t.Fatalf("expected builtin mnemonic %q in:\n%s", op, asm)
		}
	}
}

func TestGenerate_BuiltinExpressionsEmitExpectedMnemonics(t *testing.T) {
	asm := generate(t, `
let w : int = __width;
let h : int = __height;
let p : int = __read 1, 2;
let r : int = __random_int 10;
`)
	for _, op := range []string{"width", "height", "read", "irnd"} {
		if !strings.Contains(asm, op) {
			t.Fatalf("expected builtin expression mnemonic %q in:\n%s", op, asm)
		}
	}
}

func TestGenerate_IntCastTruncatesFloat(t *testing.T) {
	asm := generate(t, `let a : int = 3.7 as int;`)
	if !strings.Contains(asm, "mod") || !strings.Contains(asm, "sub") {
		t.Fatalf("float-to-int cast must emit the truncation sequence:\n%s", asm)
	}
}

func TestGenerate_IdentityCastEmitsNoExtraArithmetic(t *testing.T) {
	asm := generate(t, `let a : float = 3 as float;`)
	if strings.Contains(asm, "mod") {
		t.Fatalf("casting int to float is an identity emit, no mod expected:\n%s", asm)
	}
}

func TestGenerate_MainSectionEndsWithHaltBeforeReverseStub(t *testing.T) {
	// The __Reverse helper is always pre-inserted, even when the
	// program never prints an array, so it trails main's halt.
	asm := generate(t, `__print 1;`)
	if strings.HasSuffix(asm, "\n") {
		t.Fatalf("assembled program must not end with a trailing newline")
	}
	if !strings.Contains(asm, "halt\n.__Reverse\nret") {
		t.Fatalf("expected main's halt followed by the .__Reverse section:\n%s", asm)
	}
}
