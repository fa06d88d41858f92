// Package moa implements a symbolic compiler for expressions in the
// Mathematics of Arrays algebra: three pure, pass-wise rewriters — shape
// inference, DNF (Denotational Normal Form) reduction, and ONF
// (Operational Normal Form) reduction — over a tagged-tree AST with a
// side symbol table.
//
// The pipeline is pure and synchronous (spec §5): every pass is a
// function from ast.Context to ast.Context, source trees are never
// mutated, and there is no I/O, no concurrency, and no suspension.
// Compile applies shape → dnf → onf and hands the result to a Backend,
// the one external collaborator this package does not implement itself.
//
//	shaped, _  := shape.Infer(ctx)
//	reduced, _ := dnf.Reduce(shaped, dnf.Options{IncludeConditions: true})
//	lowered, _ := onf.Reduce(reduced, onf.Options{})
//
// or, via the driver:
//
//	out, err := moa.Compile(ctx, "mybackend", moa.WithConditions(true))
package moa
