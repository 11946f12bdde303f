package codegen

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/parl-lang/parlc/internal/parser"
)

// TestGenerate_AssemblySnapshots pins the exact generated text for a
// handful of representative programs, one per shape: scalar arithmetic,
// array literals, if/else, while, and a user-defined function call.
// Unlike the structural assertions in generator_test.go, these compare
// the full assembled output byte-for-byte against a stored snapshot.
func TestGenerate_AssemblySnapshots(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"scalar_arithmetic", `let a : int = 1 + 2 * 3; __print a;`},
		{"array_literal", `let a : int[] = [1, 2, 3]; __print a;`},
		{"if_else", `
fun sign(x: int) -> int {
  if (x < 0) { return -1; } else { return 1; }
}
`},
		{"while_loop", `
let i : int = 0;
while (i < 3) { i = i + 1; }
`},
		{"function_call", `
fun add(a: int, b: int) -> int { return a + b; }
let x : int = add(1, 2);
__print x;
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prog, err := parser.Parse(tc.src)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			asm, err := Generate(prog, nil)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			snaps.MatchSnapshot(t, asm)
		})
	}
}
