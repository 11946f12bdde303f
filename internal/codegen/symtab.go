package codegen

import "github.com/parl-lang/parlc/internal/ast"

// cgEntry is a frame slot assigned to a declared variable or
// parameter. Index is its position within the frame it was declared
// in; FramePos is the (0-based) position of that frame on the
// open-scope stack at declaration time. The addressing depth used in
// "[index:depth]" is computed fresh at every reference as
// (open scope count − FramePos − 1), per spec.md §4.4.1, since the
// number of open frames between declaration and reference changes as
// nested blocks come and go.
type cgEntry struct {
	Index     int
	FramePos  int
	IsArray   bool
	ArraySize int
	Kind      ast.TypeKind
}

// cgScope is one entry on the open-frame stack. Function parameter
// scopes are unframed: they carry no oframe/cframe pair of their own
// (the call already delivered their words), so placeholderIdx is only
// meaningful when framed is true.
type cgScope struct {
	vars          map[string]*cgEntry
	varCount      int
	framed        bool
	placeholderIdx int
}

// funcSig is a function's call-relevant shape, collected once up
// front so call sites and return statements can see forward (and
// mutually recursive) declarations, mirroring sema's own pre-pass.
type funcSig struct {
	ReturnKind      ast.TypeKind
	ReturnIsArray   bool
	ReturnArraySize int
	Params          []ast.Param
}
