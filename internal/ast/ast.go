// Package ast defines the PArL abstract syntax tree as a closed set of
// plain structs tagged by Go's own type system: Expr and Stmt are
// marker interfaces, and consumers (parser, sema, codegen) switch on
// the concrete type rather than calling a virtual Accept method. This
// replaces the teacher's Visitor/Accept hierarchy (internal/parser/ast.go,
// internal/parser/stmt.go in the reference lexer/parser this package's
// shape is drawn from) with a tagged-variant match, which is the
// idiomatic Go rendering of a closed, non-extensible node set.
package ast

// TypeKind is one of the four primitive value kinds a PArL expression
// can carry.
type TypeKind int

const (
	KindInt TypeKind = iota
	KindFloat
	KindBool
	KindColour
)

func (k TypeKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindColour:
		return "colour"
	default:
		return "?"
	}
}

// Expr is implemented by every expression node.
type Expr interface{ exprNode() }

// Stmt is implemented by every statement node.
type Stmt interface{ stmtNode() }

// Block is an ordered sequence of statements; the parser preserves
// source order verbatim (spec §8.1 "AST preserves order").
type Block struct {
	Stmts []Stmt
}

// Program is the parser's single output: one root block.
type Program struct {
	Root *Block
}

// Param is one function parameter: a name, declared kind, and whether
// it is an array (and of what declared size).
type Param struct {
	Name      string
	Kind      TypeKind
	IsArray   bool
	ArraySize int // -1 when not an array
}
