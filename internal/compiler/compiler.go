// Package compiler wires the lexer, parser, semantic analyzer and
// code generator into the single entry point a driver calls: parse,
// analyze, generate, in that order, stopping at the first failing
// phase. Each phase package already recovers its own internal panics
// into a clean error at its own boundary (parser.Parse, sema.Analyze,
// codegen.Generate); Compile's own recover is a last-resort safety
// net, not a primary error path.
package compiler

import (
	"fmt"

	"github.com/parl-lang/parlc/internal/codegen"
	"github.com/parl-lang/parlc/internal/errors"
	"github.com/parl-lang/parlc/internal/parser"
	"github.com/parl-lang/parlc/internal/sema"
)

// Diagnostics holds the compile errors a run produced. This core only
// ever stops at the first failing phase, so today it never holds more
// than one element — the slice shape leaves room for a future
// multi-error driver (e.g. a language server) without a signature
// change.
type Diagnostics []*errors.CompileError

// Options configures a single Compile call. The zero value is the
// default configuration.
type Options struct {
	// FileName is propagated into every diagnostic so a multi-
	// invocation driver can tell sources apart. spec.md's "no
	// multi-file programs" Non-goal bounds the language, not this
	// diagnostic plumbing around a single compiled unit.
	FileName string

	// TraceScopes, when set (via WithScopeTrace), emits a line to the
	// trace sink on every scope push/pop in the analyzer and code
	// generator. Purely a debugging aid: never consulted by the
	// compiler itself.
	TraceScopes bool

	traceSink func(string)
}

// Option mutates Options.
type Option func(*Options)

// WithFileName attaches a file name to any diagnostic Compile returns.
func WithFileName(name string) Option {
	return func(o *Options) { o.FileName = name }
}

// WithScopeTrace enables scope push/pop tracing, sending each event
// through sink (typically a *log.Logger's Print, already prefixed by
// the caller).
func WithScopeTrace(sink func(string)) Option {
	return func(o *Options) {
		o.TraceScopes = true
		o.traceSink = sink
	}
}

// Compile runs a PArL source string through every phase and returns
// the assembled instruction text. On failure it returns the first
// *errors.CompileError encountered (wrapped in Diagnostics), annotated
// with source context for driver-side rendering.
func Compile(source string, opts ...Option) (asm string, diags Diagnostics, err error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	trace := o.traceSink
	if !o.TraceScopes {
		trace = nil
	}

	fail := func(ce *errors.CompileError) (string, Diagnostics, error) {
		ce = annotate(ce, source, o)
		return "", Diagnostics{ce}, ce
	}

	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(*errors.CompileError)
			if !ok {
				ce = &errors.CompileError{Kind: errors.KindInternal, Message: fmt.Sprintf("%v", r)}
			}
			asm, diags, err = fail(ce)
		}
	}()

	prog, perr := parser.Parse(source)
	if perr != nil {
		return fail(asCompileError(perr))
	}

	if aerr := sema.Analyze(prog, trace); aerr != nil {
		return fail(asCompileError(aerr))
	}

	generated, gerr := codegen.Generate(prog, trace)
	if gerr != nil {
		return fail(asCompileError(gerr))
	}
	return generated, nil, nil
}

func asCompileError(err error) *errors.CompileError {
	if ce, ok := err.(*errors.CompileError); ok {
		return ce
	}
	return &errors.CompileError{Kind: errors.KindInternal, Message: err.Error()}
}

func annotate(ce *errors.CompileError, source string, o Options) *errors.CompileError {
	if o.FileName != "" {
		ce.WithFile(o.FileName)
	}
	if ce.Pos.Line > 0 {
		if line := sourceLine(source, ce.Pos.Line); line != "" {
			ce.WithSource(line)
		}
	}
	return ce
}

func sourceLine(source string, line int) string {
	n := 1
	start := 0
	for i := 0; i < len(source); i++ {
		if n == line {
			end := i
			for end < len(source) && source[end] != '\n' {
				end++
			}
			return source[start:end]
		}
		if source[i] == '\n' {
			n++
			start = i + 1
		}
	}
	if n == line {
		return source[start:]
	}
	return ""
}
