package ast

// VarDecl is `let name : Kind [ '[' [n] ']' ] = initializer`.
//
// Scalar form sets Init and leaves ArrayElems nil. Array form sets
// ArrayElems (the bracketed literal list the grammar calls ArrLit) and
// leaves Init nil. DeclaredSize is -1 for a scalar declaration; when
// an array declaration omits the bracketed size, the parser sets it to
// len(ArrayElems).
// IsRepeat marks the `[v]` single-literal-repeated-DeclaredSize-times
// form versus the `[v0, v1, ...]` ordered form.
type VarDecl struct {
	Line         int
	Name         string
	Kind         TypeKind
	IsArray      bool
	DeclaredSize int
	ArrayElems   []Expr
	IsRepeat     bool
	Init         Expr
}

// Assignment is `Target = Value` where Target is `name` or `name[Index]`.
type Assignment struct {
	Line  int
	Name  string
	Index Expr // nil for a plain scalar/whole-array target
	Value Expr
}

// If is `if (Cond) Then [else Else]`.
type If struct {
	Line int
	Cond Expr
	Then *Block
	Else *Block // nil when no else clause
}

// While is `while (Cond) Body`.
type While struct {
	Line int
	Cond Expr
	Body *Block
}

// For is `for ([Decl]; Cond; [Step]) Body`.
type For struct {
	Line int
	Decl *VarDecl
	Cond Expr
	Step *Assignment
	Body *Block
}

// Return is `return Value`.
type Return struct {
	Line  int
	Value Expr
}

// FuncDecl is a function declaration. ReturnArraySize is -1 for a
// scalar return type.
type FuncDecl struct {
	Line             int
	Name             string
	Params           []Param
	ReturnKind       TypeKind
	ReturnIsArray    bool
	ReturnArraySize  int
	Body             *Block
}

// PrintStmt is `__print Value`.
type PrintStmt struct {
	Line  int
	Value Expr
}

// DelayStmt is `__delay Value`.
type DelayStmt struct {
	Line  int
	Value Expr
}

// WriteStmt is `__write X, Y, Colour`.
type WriteStmt struct {
	Line   int
	X, Y   Expr
	Colour Expr
}

// WriteBoxStmt is `__write_box X, Y, W, H, Colour`.
type WriteBoxStmt struct {
	Line   int
	X, Y   Expr
	W, H   Expr
	Colour Expr
}

// ClearStmt is `__clear Colour`.
type ClearStmt struct {
	Line   int
	Colour Expr
}

func (*VarDecl) stmtNode()     {}
func (*Assignment) stmtNode()  {}
func (*If) stmtNode()          {}
func (*While) stmtNode()       {}
func (*For) stmtNode()         {}
func (*Return) stmtNode()      {}
func (*FuncDecl) stmtNode()    {}
func (*PrintStmt) stmtNode()   {}
func (*DelayStmt) stmtNode()   {}
func (*WriteStmt) stmtNode()   {}
func (*WriteBoxStmt) stmtNode() {}
func (*ClearStmt) stmtNode()   {}
