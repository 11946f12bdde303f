package sema

import (
	"github.com/parl-lang/parlc/internal/ast"
	"github.com/parl-lang/parlc/internal/errors"
)

// typeOfExpr implements spec.md §4.3's "expression typing": each
// expression visit yields exactly one type tag, computed bottom-up.
// The explicit type-tag stack spec.md describes collapses into an
// ordinary recursive return value here — the same "push one, pop two
// preserving order" discipline falls out of two sequential calls
// (left, then right) rather than needing a separate stack structure.
func (a *analyzer) typeOfExpr(e ast.Expr) TypeTag {
	switch n := e.(type) {
	case *ast.IntLit:
		return TypeTag{Kind: ast.KindInt}
	case *ast.FloatLit:
		return TypeTag{Kind: ast.KindFloat}
	case *ast.BoolLit:
		return TypeTag{Kind: ast.KindBool}
	case *ast.ColourLit:
		return TypeTag{Kind: ast.KindColour}
	case *ast.Ident:
		entry, ok := a.symtab.Lookup(n.Name)
		if !ok || entry.IsFunction {
			notFound(n.Name, n.Line)
		}
		return entry.Type
	case *ast.Index:
		entry, ok := a.symtab.Lookup(n.Name)
		if !ok || entry.IsFunction {
			notFound(n.Name, n.Line)
		}
		if !entry.Type.IsArray {
			fail(n.Line, "'"+n.Name+"' is not an array")
		}
		a.typeOfExpr(n.Index)
		return TypeTag{Kind: entry.Type.Kind}
	case *ast.Binary:
		return a.typeOfBinary(n)
	case *ast.Unary:
		return a.typeOfUnary(n)
	case *ast.Cast:
		operand := a.typeOfExpr(n.Operand)
		if operand.IsArray {
			fail(n.Line, "Cannot cast an array")
		}
		return TypeTag{Kind: n.Target}
	case *ast.Call:
		return a.typeOfCall(n)
	case *ast.BuiltinExpr:
		return a.typeOfBuiltinExpr(n)
	default:
		errors.Internal("sema: unhandled expression type %T", e)
		panic("unreachable")
	}
}

func (a *analyzer) typeOfBinary(b *ast.Binary) TypeTag {
	left := a.typeOfExpr(b.Left)
	right := a.typeOfExpr(b.Right)

	switch b.Op {
	case "+", "-", "*", "%":
		if left.IsArray || right.IsArray || left.Kind == ast.KindBool || !left.Equal(right) {
			fail(b.Line, "Operands must be the same non-bool scalar type")
		}
		return left
	case "/":
		if left.IsArray || right.IsArray || left.Kind == ast.KindBool || !left.Equal(right) {
			fail(b.Line, "Operands must be the same non-bool scalar type")
		}
		return TypeTag{Kind: ast.KindFloat}
	case "and", "or":
		if left.IsArray || right.IsArray || left.Kind != ast.KindBool || right.Kind != ast.KindBool {
			fail(b.Line, "Operands of 'and'/'or' must be bool")
		}
		return TypeTag{Kind: ast.KindBool}
	case "==", "!=":
		if left.IsArray || right.IsArray || !left.Equal(right) {
			fail(b.Line, "Operands of '=='/'!=' must have the same type")
		}
		return TypeTag{Kind: ast.KindBool}
	case "<", "<=", ">", ">=":
		if left.IsArray || right.IsArray || left.Kind == ast.KindBool || !left.Equal(right) {
			fail(b.Line, "Operands of a comparison must be the same non-bool scalar type")
		}
		return TypeTag{Kind: ast.KindBool}
	default:
		errors.Internal("sema: unknown binary operator %q", b.Op)
		panic("unreachable")
	}
}

func (a *analyzer) typeOfUnary(u *ast.Unary) TypeTag {
	operand := a.typeOfExpr(u.Operand)
	switch u.Op {
	case "-":
		if operand.IsArray || (operand.Kind != ast.KindInt && operand.Kind != ast.KindFloat) {
			fail(u.Line, "Unary '-' requires an int or float operand")
		}
		return operand
	case "not":
		if operand.IsArray || operand.Kind != ast.KindBool {
			fail(u.Line, "'not' requires a bool operand")
		}
		return TypeTag{Kind: ast.KindBool}
	default:
		errors.Internal("sema: unknown unary operator %q", u.Op)
		panic("unreachable")
	}
}

func (a *analyzer) typeOfCall(c *ast.Call) TypeTag {
	entry, ok := a.symtab.Lookup(c.Name)
	if !ok || !entry.IsFunction {
		notFound(c.Name, c.Line)
	}
	if len(c.Args) != len(entry.Params) {
		fail(c.Line, "'"+c.Name+"' called with the wrong number of arguments")
	}
	for i, argExpr := range c.Args {
		argTag := a.typeOfExpr(argExpr)
		if !argTag.Equal(entry.Params[i]) {
			fail(c.Line, "Assigned types are different. Use 'as' to cast types")
		}
	}
	return entry.Type
}

func (a *analyzer) typeOfBuiltinExpr(b *ast.BuiltinExpr) TypeTag {
	intScalar := TypeTag{Kind: ast.KindInt}
	switch b.Name {
	case "__width", "__height":
		return intScalar
	case "__read":
		a.requireTag(b.Args[0], intScalar)
		a.requireTag(b.Args[1], intScalar)
		return intScalar
	case "__random_int":
		a.requireTag(b.Args[0], intScalar)
		return intScalar
	default:
		errors.Internal("sema: unknown builtin expression %q", b.Name)
		panic("unreachable")
	}
}
