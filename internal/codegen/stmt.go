package codegen

import (
	"fmt"

	"github.com/parl-lang/parlc/internal/ast"
)

// emitBlock implements spec.md §4.4.2: every block — the program
// root, an if/while/for body, a function body — opens its own framed
// scope around its statements.
func (g *generator) emitBlock(b *ast.Block) {
	g.pushFramedScope()
	for _, s := range b.Stmts {
		g.emitStmt(s)
	}
	g.popScope()
}

func (g *generator) emitStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.VarDecl:
		g.emitVarDecl(st)
	case *ast.Assignment:
		g.emitAssignment(st)
	case *ast.If:
		g.emitIf(st)
	case *ast.While:
		g.emitWhile(st)
	case *ast.For:
		g.emitFor(st)
	case *ast.Return:
		g.emitReturn(st)
	case *ast.FuncDecl:
		g.emitFuncDecl(st)
	case *ast.PrintStmt:
		g.emitPrint(st)
	case *ast.DelayStmt:
		g.emitExpr(st.Value)
		g.current.emit("delay")
	case *ast.WriteStmt:
		g.emitExpr(st.Colour)
		g.emitExpr(st.Y)
		g.emitExpr(st.X)
		g.current.emit("write")
	case *ast.WriteBoxStmt:
		g.emitExpr(st.Colour)
		g.emitExpr(st.H)
		g.emitExpr(st.W)
		g.emitExpr(st.Y)
		g.emitExpr(st.X)
		g.current.emit("writebox")
	case *ast.ClearStmt:
		g.emitExpr(st.Colour)
		g.current.emit("clear")
	}
}

// emitVarDecl implements spec.md §4.4.3: the slot is assigned first
// (fixing its index and frame position), then the initializer is
// evaluated, then the store is emitted.
func (g *generator) emitVarDecl(vd *ast.VarDecl) {
	if vd.IsArray {
		size := vd.DeclaredSize
		if size <= 0 {
			size = len(vd.ArrayElems)
		}
		entry := g.declare(vd.Name, size, true, vd.Kind)
		if vd.IsRepeat {
			g.emitExpr(vd.ArrayElems[0])
			g.current.emit(fmt.Sprintf("push %d", size-1))
			g.current.emit("dupa")
			g.current.emit(fmt.Sprintf("push %d", size))
		} else {
			for i := len(vd.ArrayElems) - 1; i >= 0; i-- {
				g.emitExpr(vd.ArrayElems[i])
			}
			g.current.emit(fmt.Sprintf("push %d", len(vd.ArrayElems)))
		}
		g.current.emit(fmt.Sprintf("push %d", entry.Index))
		g.current.emit(fmt.Sprintf("push %d", g.depthOf(entry)))
		g.current.emit("sta")
		return
	}

	entry := g.declare(vd.Name, 1, false, vd.Kind)
	g.emitExpr(vd.Init)
	g.current.emit(fmt.Sprintf("push %d", entry.Index))
	g.current.emit(fmt.Sprintf("push %d", g.depthOf(entry)))
	g.current.emit("st")
}

// emitAssignment implements spec.md §4.4.6's three target shapes:
// plain scalar, array element by index, and whole-array copy.
func (g *generator) emitAssignment(asn *ast.Assignment) {
	entry := g.lookup(asn.Name)

	if asn.Index != nil {
		g.emitExpr(asn.Value)
		g.emitExpr(asn.Index)
		g.current.emit(fmt.Sprintf("push %d", entry.ArraySize-1))
		g.current.emit("sub")
		g.current.emit(fmt.Sprintf("push %d", entry.Index))
		g.current.emit("add")
		g.current.emit(fmt.Sprintf("push %d", g.depthOf(entry)))
		g.current.emit("st")
		return
	}

	if entry.IsArray {
		g.emitExpr(asn.Value)
		g.current.emit(fmt.Sprintf("push %d", entry.Index))
		g.current.emit(fmt.Sprintf("push %d", g.depthOf(entry)))
		g.current.emit("sta")
		g.emitArrayIdent(entry)
		return
	}

	g.emitExpr(asn.Value)
	g.current.emit(fmt.Sprintf("push %d", entry.Index))
	g.current.emit(fmt.Sprintf("push %d", g.depthOf(entry)))
	g.current.emit("st")
}

// emitIf implements spec.md §4.4.7. The else-less form negates the
// condition and skips the body on false. The else form lays the false
// branch first and jumps forward past an unconditional jmp on a true
// (un-negated) condition, avoiding a second negation.
func (g *generator) emitIf(s *ast.If) {
	g.emitExpr(s.Cond)

	if s.Else == nil {
		g.current.emit("not")
		p := g.current.emit("push #PC+0")
		g.current.emit("cjmp")
		g.emitBlock(s.Then)
		size := len(g.current.Lines)
		g.current.patch(p, renderRelative(size-p))
		return
	}

	p1 := g.current.emit("push #PC+0")
	g.current.emit("cjmp")
	g.emitBlock(s.Else)
	p2 := g.current.emit("push #PC+0")
	jmpIdx := g.current.emit("jmp")
	g.current.patch(p1, renderRelative((jmpIdx+1)-p1))
	g.emitBlock(s.Then)
	size := len(g.current.Lines)
	g.current.patch(p2, renderRelative(size-p2))
}

// emitWhile implements spec.md §4.4.7's loop shape: test, negate,
// conditional skip, body, unconditional jump back to the test.
func (g *generator) emitWhile(s *ast.While) {
	condPC := len(g.current.Lines)
	g.emitExpr(s.Cond)
	g.current.emit("not")
	p := g.current.emit("push #PC+0")
	g.current.emit("cjmp")
	g.emitBlock(s.Body)
	backFrom := len(g.current.Lines)
	g.current.emit(renderRelative(condPC - backFrom))
	g.current.emit("jmp")
	size := len(g.current.Lines)
	g.current.patch(p, renderRelative(size-p))
}

// emitFor implements spec.md §4.4.7: the declaration, condition and
// step bracket their own scope around a while-shaped loop whose body
// is the for-body followed by the step assignment.
func (g *generator) emitFor(s *ast.For) {
	g.pushFramedScope()
	if s.Decl != nil {
		g.emitVarDecl(s.Decl)
	}
	condPC := len(g.current.Lines)
	g.emitExpr(s.Cond)
	g.current.emit("not")
	p := g.current.emit("push #PC+0")
	g.current.emit("cjmp")
	g.emitBlock(s.Body)
	if s.Step != nil {
		g.emitAssignment(s.Step)
	}
	backFrom := len(g.current.Lines)
	g.current.emit(renderRelative(condPC - backFrom))
	g.current.emit("jmp")
	size := len(g.current.Lines)
	g.current.patch(p, renderRelative(size-p))
	g.popScope()
}

// emitReturn implements spec.md §4.4.8: one cframe per scope opened
// since the function's own parameter scope, then ret (or, for an
// array result, the drop/push(K+1)/reta sequence that re-balances the
// stack around the size word array values leave behind).
func (g *generator) emitReturn(r *ast.Return) {
	n := len(g.scopes) - g.funcBoundary

	if isArr, size := g.resultIsArray(r.Value); isArr {
		g.current.emit(fmt.Sprintf("push %d", size))
		g.emitExpr(r.Value)
		for i := 0; i < n; i++ {
			g.current.emit("cframe")
		}
		g.current.emit("drop")
		g.current.emit(fmt.Sprintf("push %d", size+1))
		g.current.emit("reta")
		return
	}

	g.emitExpr(r.Value)
	for i := 0; i < n; i++ {
		g.current.emit("cframe")
	}
	g.current.emit("ret")
}

// emitPrint implements spec.md §4.4.9's two print forms. An array
// print pushes the value's words, drops the size word on top, calls
// the __Reverse helper with size+1 argument words, then emits printa.
// The helper is the bare single-ret stub emitted by emitReverseStub;
// it contains no reordering instructions of its own.
func (g *generator) emitPrint(p *ast.PrintStmt) {
	if isArr, size := g.resultIsArray(p.Value); isArr {
		g.emitExpr(p.Value)
		g.current.emit("drop")
		g.current.emit(fmt.Sprintf("push %d", size+1))
		g.current.emit("push .__Reverse")
		g.current.emit("call")
		g.current.emit("printa")
		return
	}
	g.emitExpr(p.Value)
	g.current.emit("print")
}

// emitFuncDecl implements spec.md §4.4.8: a new instruction list,
// an isolated unframed parameter scope, prologue normalization of
// array parameters (the call convention delivers them as
// values-reversed, size; they are stored into their frame slots with
// a single sta), then the body as an ordinary framed block.
func (g *generator) emitFuncDecl(fd *ast.FuncDecl) {
	list := &InstrList{Name: fd.Name}
	g.funcLists = append(g.funcLists, list)
	prevCurrent := g.current
	g.current = list
	g.current.emit("." + fd.Name)

	prevBoundary := g.funcBoundary
	g.pushParamScope()
	for _, p := range fd.Params {
		size := 1
		if p.IsArray {
			size = p.ArraySize
		}
		g.declare(p.Name, size, p.IsArray, p.Kind)
	}
	g.funcBoundary = len(g.scopes)

	for _, p := range fd.Params {
		if !p.IsArray {
			continue
		}
		e := g.lookup(p.Name)
		g.current.emit(fmt.Sprintf("push %d", e.Index))
		g.current.emit(fmt.Sprintf("push %d", g.depthOf(e)))
		g.current.emit("sta")
	}

	g.emitBlock(fd.Body)

	g.popScope()
	g.funcBoundary = prevBoundary
	g.current = prevCurrent
}
