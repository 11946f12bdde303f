package ast

// IntLit is an integer literal.
type IntLit struct {
	Line  int
	Value int64
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	Line  int
	Value float64
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Line  int
	Value bool
}

// ColourLit is a `#RRGGBB` literal. Text keeps the original six-hex-digit
// spelling (without the `#`); Value is its 24-bit unsigned encoding.
type ColourLit struct {
	Line  int
	Text  string
	Value uint32
}

// Ident is a bare identifier reference, either a scalar variable or a
// whole named array.
type Ident struct {
	Line int
	Name string
}

// Index is an array-element reference `name[Index]`.
type Index struct {
	Line  int
	Name  string
	Index Expr
}

// Call is a user function call `name(args...)`.
type Call struct {
	Line int
	Name string
	Args []Expr
}

// Binary is a two-operand operator application. Op is the source
// spelling (`+ - * / % and or == != < <= > >=`); codegen and sema map
// it to behavior via a table rather than a per-operator node type, per
// spec.md §9's "static table over X-macro" design note.
type Binary struct {
	Line  int
	Op    string
	Left  Expr
	Right Expr
}

// Unary is `-x` or `not x`; Op is "-" or "not".
type Unary struct {
	Line    int
	Op      string
	Operand Expr
}

// Cast is `Expr as T`.
type Cast struct {
	Line    int
	Target  TypeKind
	Operand Expr
}

// BuiltinExpr is one of the value-producing builtins: __width, __height,
// __read(x,y), __random_int(max).
type BuiltinExpr struct {
	Line int
	Name string
	Args []Expr
}

func (*IntLit) exprNode()      {}
func (*FloatLit) exprNode()    {}
func (*BoolLit) exprNode()     {}
func (*ColourLit) exprNode()   {}
func (*Ident) exprNode()       {}
func (*Index) exprNode()       {}
func (*Call) exprNode()        {}
func (*Binary) exprNode()      {}
func (*Unary) exprNode()       {}
func (*Cast) exprNode()        {}
func (*BuiltinExpr) exprNode() {}
