// Package sema implements the semantic analyzer of spec.md §4.3: a
// single tree-walking pass enforcing PArL's type and scoping rules
// over the parser's AST, built around a scoped symbol table carrying
// the "isolation barrier" spec.md §3.4 describes. The isolation
// arithmetic (an integer compared against live scope-stack depth,
// rather than a per-scope boolean) is grounded on
// original_source/Compiler/Semantic Analyzer/SymbolTable.h's
// Isolate/contains/operator[] exactly, renumbered for Go idiom.
package sema

import "github.com/parl-lang/parlc/internal/ast"

// TypeTag is the pair (kind, array_size) spec.md §3.1 defines as a
// type tag; array_size only matters when IsArray is true.
type TypeTag struct {
	Kind      ast.TypeKind
	IsArray   bool
	ArraySize int
}

// Equal is componentwise equality, per spec.md §3.1.
func (t TypeTag) Equal(o TypeTag) bool {
	if t.Kind != o.Kind || t.IsArray != o.IsArray {
		return false
	}
	return !t.IsArray || t.ArraySize == o.ArraySize
}

// Entry is a symbol table payload: either a variable (Type set,
// IsFunction false) or a function (Type is the return tag, IsFunction
// true, Params holds the ordered parameter tags).
type Entry struct {
	Name       string
	Type       TypeTag
	IsFunction bool
	Params     []TypeTag
}

// SymbolTable is a stack of scopes with an isolation barrier.
type SymbolTable struct {
	scopes        []map[string]*Entry
	isolatedLevel int // -1 when no barrier is active
}

// NewSymbolTable returns an empty table with no barrier.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{isolatedLevel: -1}
}

// PushScope opens a new innermost scope, isolating it (see Isolate)
// when isolated is true.
func (t *SymbolTable) PushScope(isolated bool) {
	t.scopes = append(t.scopes, map[string]*Entry{})
	if isolated {
		t.Isolate()
	}
}

// Isolate marks the current scope depth as the isolation barrier:
// lookups that would cross it upward only see function entries above
// it. Spec.md §3.4: "a function body must not see variables of its
// caller, but must see sibling and outer function declarations".
func (t *SymbolTable) Isolate() {
	t.isolatedLevel = len(t.scopes)
}

// PopScope closes the innermost scope, clearing the barrier once the
// stack has shrunk below the level it was recorded at.
func (t *SymbolTable) PopScope() {
	t.scopes = t.scopes[:len(t.scopes)-1]
	if len(t.scopes) < t.isolatedLevel {
		t.isolatedLevel = -1
	}
}

// Size is the number of open scopes.
func (t *SymbolTable) Size() int { return len(t.scopes) }

// InRoot reports whether exactly the program's single outermost scope
// is open.
func (t *SymbolTable) InRoot() bool { return len(t.scopes) == 1 }

// Insert adds name to the innermost scope. It reports false (and
// inserts nothing) if name is already declared in that same scope —
// spec.md §9's resolution of the "duplicate declaration" open
// question: reject, rather than the source's silent last-wins
// overwrite.
func (t *SymbolTable) Insert(name string, e *Entry) bool {
	scope := t.scopes[len(t.scopes)-1]
	if _, exists := scope[name]; exists {
		return false
	}
	scope[name] = e
	return true
}

// Lookup searches scopes innermost-first. An entry found at a depth
// shallower than the isolation barrier is invisible unless it is a
// function, per spec.md §3.4.
func (t *SymbolTable) Lookup(name string) (*Entry, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if e, ok := t.scopes[i][name]; ok {
			depth := i + 1
			if t.isolatedLevel != -1 && depth < t.isolatedLevel && !e.IsFunction {
				return nil, false
			}
			return e, true
		}
	}
	return nil, false
}

// Contains reports whether name is visible from the current scope.
func (t *SymbolTable) Contains(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}
