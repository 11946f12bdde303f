package codegen

import (
	"strings"

	"github.com/parl-lang/parlc/internal/ast"
	"github.com/parl-lang/parlc/internal/errors"
)

// Generate implements spec.md §4.4.10's program assembly: the .main
// label, the program root block and halt, followed by the pre-inserted
// __Reverse helper and then every user function list, each joined by
// single newlines with no trailing blank line. trace, when non-nil, receives
// one line per scope push/pop — purely a debugging aid.
func Generate(prog *ast.Program, trace func(string)) (asm string, err error) {
	g := &generator{funcs: map[string]*funcSig{}, trace: trace}
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*errors.CompileError); ok {
				err = ce
				return
			}
			panic(r)
		}
	}()

	g.mainList = &InstrList{Name: "main"}
	g.current = g.mainList

	g.collectFuncSignatures(prog.Root)
	g.emitReverseStub()

	g.current.emit(".main")
	g.emitBlock(prog.Root)
	g.current.emit("halt")

	return g.assemble(), nil
}

// collectFuncSignatures pre-registers every top-level function's
// shape, mirroring sema's own pre-pass, so that forward and mutually
// recursive calls resolve regardless of emission order.
func (g *generator) collectFuncSignatures(root *ast.Block) {
	for _, s := range root.Stmts {
		if fd, ok := s.(*ast.FuncDecl); ok {
			g.funcs[fd.Name] = &funcSig{
				ReturnKind:      fd.ReturnKind,
				ReturnIsArray:   fd.ReturnIsArray,
				ReturnArraySize: fd.ReturnArraySize,
				Params:          fd.Params,
			}
		}
	}
}

// emitReverseStub pre-inserts the single helper function spec.md
// §4.4.9 calls for before every array print. Its body is the label
// followed by a single ret: it contains no instructions that reorder
// the array words it is called with, and it returns with ret rather
// than reta.
func (g *generator) emitReverseStub() {
	list := &InstrList{Name: "__Reverse"}
	list.emit(".__Reverse")
	list.emit("ret")
	g.funcLists = append(g.funcLists, list)
}

func (g *generator) assemble() string {
	var all []string
	all = append(all, g.mainList.Lines...)
	for _, fl := range g.funcLists {
		all = append(all, fl.Lines...)
	}
	return strings.Join(all, "\n")
}
