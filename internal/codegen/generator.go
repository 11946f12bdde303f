package codegen

import (
	"fmt"

	"github.com/parl-lang/parlc/internal/ast"
	"github.com/parl-lang/parlc/internal/errors"
)

// generator holds the mutable state of one code-generation run: the
// open-frame stack (mirroring sema's scope stack, minus the isolation
// bookkeeping sema already enforced), the function signature table,
// and the instruction list currently being appended to.
type generator struct {
	mainList  *InstrList
	funcLists []*InstrList
	current   *InstrList

	scopes       []*cgScope
	funcBoundary int // len(scopes) just inside the active function's param scope
	funcs        map[string]*funcSig
	tmpCounter   int

	trace func(string)
}

// pushFramedScope implements spec.md §4.4.2's scope-open: a
// placeholder variable-count push, then oframe. The placeholder is
// patched in place every time a new slot is declared directly inside
// it (see declare) and finalized at popScope.
func (g *generator) pushFramedScope() {
	idx := g.current.emit("push 0")
	g.current.emit("oframe")
	g.scopes = append(g.scopes, &cgScope{vars: map[string]*cgEntry{}, framed: true, placeholderIdx: idx})
	if g.trace != nil {
		g.trace(fmt.Sprintf("codegen: push framed scope depth=%d", len(g.scopes)))
	}
}

// pushParamScope opens a function's parameter scope. Unlike sema's, it
// records no isolation barrier (lookup searches every open scope; sema
// has already rejected references across the barrier), and — since the
// call convention already laid the argument words down — it emits no
// oframe of its own.
func (g *generator) pushParamScope() {
	g.scopes = append(g.scopes, &cgScope{vars: map[string]*cgEntry{}})
	if g.trace != nil {
		g.trace(fmt.Sprintf("codegen: push param scope depth=%d", len(g.scopes)))
	}
}

func (g *generator) popScope() {
	top := g.scopes[len(g.scopes)-1]
	if top.framed {
		g.current.emit("cframe")
		g.current.patch(top.placeholderIdx, fmt.Sprintf("push %d", top.varCount))
	}
	g.scopes = g.scopes[:len(g.scopes)-1]
	if g.trace != nil {
		g.trace(fmt.Sprintf("codegen: pop scope depth=%d", len(g.scopes)))
	}
}

// declare assigns a fresh slot for name in the innermost open scope.
func (g *generator) declare(name string, size int, isArray bool, kind ast.TypeKind) *cgEntry {
	top := g.scopes[len(g.scopes)-1]
	e := &cgEntry{Index: top.varCount, FramePos: len(g.scopes) - 1, IsArray: isArray, ArraySize: size, Kind: kind}
	top.vars[name] = e
	top.varCount += size
	if top.framed {
		g.current.patch(top.placeholderIdx, fmt.Sprintf("push %d", top.varCount))
	}
	return e
}

// declareTemp introduces a synthesized scratch scalar slot, used by
// the int-cast truncation sequence (spec.md §4.4.5).
func (g *generator) declareTemp() *cgEntry {
	name := fmt.Sprintf("__tmp%d", g.tmpCounter)
	g.tmpCounter++
	return g.declare(name, 1, false, ast.KindInt)
}

// lookup resolves name against currently open scopes, innermost
// first. By the time codegen runs the program has already passed
// sema, so every reference here is guaranteed resolvable.
func (g *generator) lookup(name string) *cgEntry {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if e, ok := g.scopes[i].vars[name]; ok {
			return e
		}
	}
	errors.Internal("codegen: unresolved identifier %q", name)
	panic("unreachable")
}

func (g *generator) depthOf(e *cgEntry) int {
	return len(g.scopes) - e.FramePos - 1
}

func (g *generator) addr(e *cgEntry) string {
	return fmt.Sprintf("[%d:%d]", e.Index, g.depthOf(e))
}

// renderRelative formats a `push #PC+n` / `push #PC-n` relative jump
// operand, per spec.md §6.2's PushRelativeInstruction mnemonic.
func renderRelative(n int) string {
	if n >= 0 {
		return fmt.Sprintf("push #PC+%d", n)
	}
	return fmt.Sprintf("push #PC%d", n)
}

// resultIsArray reports whether e statically produces an array value,
// and its size — needed to choose the scalar vs. array emission path
// for prints, calls, returns and whole-array assignment.
func (g *generator) resultIsArray(e ast.Expr) (bool, int) {
	switch n := e.(type) {
	case *ast.Ident:
		entry := g.lookup(n.Name)
		return entry.IsArray, entry.ArraySize
	case *ast.Call:
		if sig, ok := g.funcs[n.Name]; ok {
			return sig.ReturnIsArray, sig.ReturnArraySize
		}
	}
	return false, 0
}

// kindOf recovers an expression's static type tag without
// re-validating it — sema already did that. It exists purely so the
// int-cast truncation sequence knows whether a cast is trivial.
func (g *generator) kindOf(e ast.Expr) ast.TypeKind {
	switch n := e.(type) {
	case *ast.IntLit:
		return ast.KindInt
	case *ast.FloatLit:
		return ast.KindFloat
	case *ast.BoolLit:
		return ast.KindBool
	case *ast.ColourLit:
		return ast.KindColour
	case *ast.Ident:
		return g.lookup(n.Name).Kind
	case *ast.Index:
		return g.lookup(n.Name).Kind
	case *ast.Binary:
		switch n.Op {
		case "/":
			return ast.KindFloat
		case "and", "or", "==", "!=", "<", "<=", ">", ">=":
			return ast.KindBool
		default:
			return g.kindOf(n.Left)
		}
	case *ast.Unary:
		if n.Op == "not" {
			return ast.KindBool
		}
		return g.kindOf(n.Operand)
	case *ast.Cast:
		return n.Target
	case *ast.Call:
		if sig, ok := g.funcs[n.Name]; ok {
			return sig.ReturnKind
		}
		return ast.KindInt
	case *ast.BuiltinExpr:
		return ast.KindInt
	default:
		return ast.KindInt
	}
}
