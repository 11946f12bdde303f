package codegen

import (
	"fmt"
	"strconv"

	"github.com/parl-lang/parlc/internal/ast"
)

// emitExpr implements spec.md §4.4.5's expression emission.
func (g *generator) emitExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.IntLit:
		g.current.emit(fmt.Sprintf("push %d", n.Value))
	case *ast.FloatLit:
		g.current.emit("push " + formatFloat(n.Value))
	case *ast.BoolLit:
		v := 0
		if n.Value {
			v = 1
		}
		g.current.emit(fmt.Sprintf("push %d", v))
	case *ast.ColourLit:
		g.current.emit(fmt.Sprintf("push %d", n.Value))
	case *ast.Ident:
		entry := g.lookup(n.Name)
		if entry.IsArray {
			g.emitArrayIdent(entry)
			return
		}
		g.current.emit("push " + g.addr(entry))
	case *ast.Index:
		entry := g.lookup(n.Name)
		g.emitExpr(n.Index)
		g.current.emit("push +" + g.addr(entry))
	case *ast.Binary:
		g.emitBinary(n)
	case *ast.Unary:
		g.emitUnary(n)
	case *ast.Cast:
		g.emitCast(n)
	case *ast.Call:
		g.emitCall(n)
	case *ast.BuiltinExpr:
		g.emitBuiltinExpr(n)
	}
}

// emitArrayIdent implements the array-evaluation convention of spec.md
// §4.4.4: an array used as a value pushes (size, elements-reversed,
// size) — the leading and trailing size words bracket the reversed
// payload that pusha reads off the frame.
func (g *generator) emitArrayIdent(e *cgEntry) {
	g.current.emit(fmt.Sprintf("push %d", e.ArraySize))
	g.current.emit("pusha " + g.addr(e))
	g.current.emit(fmt.Sprintf("push %d", e.ArraySize))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (g *generator) emitBinary(b *ast.Binary) {
	// Right, then left: the binary consumes top-first as (left, right),
	// so left must land on top.
	g.emitExpr(b.Right)
	g.emitExpr(b.Left)
	switch b.Op {
	case "+":
		g.current.emit("add")
	case "-":
		g.current.emit("sub")
	case "*":
		g.current.emit("mul")
	case "/":
		g.current.emit("div")
	case "%":
		g.current.emit("mod")
	case "and":
		g.current.emit("and")
	case "or":
		g.current.emit("or")
	case "==":
		g.current.emit("eq")
	case "!=":
		g.current.emit("eq")
		g.current.emit("not")
	case "<":
		g.current.emit("lt")
	case "<=":
		g.current.emit("le")
	case ">":
		g.current.emit("gt")
	case ">=":
		g.current.emit("ge")
	}
}

func (g *generator) emitUnary(u *ast.Unary) {
	switch u.Op {
	case "-":
		g.emitExpr(u.Operand)
		g.current.emit("push 0")
		g.current.emit("sub")
	case "not":
		g.emitExpr(u.Operand)
		g.current.emit("not")
	}
}

// emitCast implements spec.md §4.4.5: every cast other than
// float-to-int is an identity emit. Casting a float to int stores the
// value into a scratch slot and subtracts its own fractional part
// (tmp mod 1) from itself, truncating toward zero without a dedicated
// truncation instruction.
func (g *generator) emitCast(c *ast.Cast) {
	if c.Target == ast.KindInt && g.kindOf(c.Operand) == ast.KindFloat {
		g.emitExpr(c.Operand)
		tmp := g.declareTemp()
		g.current.emit(fmt.Sprintf("push %d", tmp.Index))
		g.current.emit(fmt.Sprintf("push %d", g.depthOf(tmp)))
		g.current.emit("st")
		g.current.emit("push 1")
		g.current.emit("push " + g.addr(tmp))
		g.current.emit("mod")
		g.current.emit("push " + g.addr(tmp))
		g.current.emit("sub")
		return
	}
	g.emitExpr(c.Operand)
}

// emitCall implements spec.md §4.4.8's call convention: arguments in
// reverse source order, array arguments with the size word left on top
// of their three-piece form dropped, then the total word count, the
// function label, and call.
func (g *generator) emitCall(c *ast.Call) {
	wordCount := 0
	for i := len(c.Args) - 1; i >= 0; i-- {
		arg := c.Args[i]
		if isArr, size := g.resultIsArray(arg); isArr {
			g.emitExpr(arg)
			g.current.emit("drop")
			wordCount += size + 1
		} else {
			g.emitExpr(arg)
			wordCount++
		}
	}
	g.current.emit(fmt.Sprintf("push %d", wordCount))
	g.current.emit("push ." + c.Name)
	g.current.emit("call")
}

func (g *generator) emitBuiltinExpr(b *ast.BuiltinExpr) {
	switch b.Name {
	case "__width":
		g.current.emit("width")
	case "__height":
		g.current.emit("height")
	case "__read":
		g.emitExpr(b.Args[1])
		g.emitExpr(b.Args[0])
		g.current.emit("read")
	case "__random_int":
		g.emitExpr(b.Args[0])
		g.current.emit("irnd")
	}
}
