package moa

import "github.com/moa-lang/moa/ast"

// Backend turns an ONF-complete Context into emitted source text. It is the
// one external collaborator spec §1 deliberately leaves unspecified: a
// concrete backend is free to target whatever language or runtime it
// likes, so long as it can read the loop-nest shape produced by onf.Reduce.
type Backend interface {
	// Name identifies the backend for registration and error messages.
	Name() string

	// Emit renders ctx, which has already been reduced to ONF (spec §4.4):
	// every leaf is a scalar literal, a PSI of a concrete index vector into
	// a plain ARRAY, or a buffer reference introduced by ONF's own
	// INITIALISE/LOOP/ASSIGN lowering.
	Emit(ctx ast.Context) (string, error)
}
