package moa

import (
	"github.com/moa-lang/moa/ast"
	"github.com/moa-lang/moa/dnf"
	"github.com/moa-lang/moa/onf"
	"github.com/moa-lang/moa/shape"
)

// Compile runs the three-pass pipeline (spec §3) — shape inference, DNF
// reduction, ONF reduction — over ctx, then hands the ONF-complete result
// to the backend registered under backendName. ctx is never mutated; each
// pass receives and returns a fresh Context.
func Compile(ctx ast.Context, backendName string, opts ...CompileOption) (string, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	backend, ok := lookupBackend(backendName)
	if !ok {
		return "", ast.Fault(ErrUnknownBackend, ctx.AST, ctx.SymbolTable)
	}

	shaped, err := shape.Infer(ctx)
	if err != nil {
		return "", err
	}
	cfg.countPass("shape")

	reduced, err := dnf.Reduce(shaped, dnf.Options{IncludeConditions: cfg.includeConditions})
	if err != nil {
		return "", err
	}
	cfg.countPass("dnf")

	lowered, err := onf.Reduce(reduced, onf.Options{
		IncludeConditions:  cfg.includeConditions,
		MaterializeScalars: cfg.materializeScalars,
	})
	if err != nil {
		return "", err
	}
	cfg.countPass("onf")

	out, err := backend.Emit(lowered)
	if err != nil {
		return "", err
	}
	cfg.countPass("emit")
	return out, nil
}
