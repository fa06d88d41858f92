package ast

import "fmt"

// CompileError wraps a sentinel error from shape/dnf/onf with the
// offending Node and a symbol-table fragment, per spec §7: "Each error
// carries the offending node and symbol-table fragment." It implements
// Unwrap so errors.Is(err, shape.ErrShapeMismatch) keeps working through
// the wrapper, the same wrap-at-the-boundary discipline the teacher
// documents in matrix/errors.go: sentinels are never stringified away.
type CompileError struct {
	// Err is the sentinel identifying the failure category (spec §7).
	Err error
	// Node is the tree node the rule was being applied to when it failed.
	Node *Node
	// Symbols is the symbol table visible at the point of failure. It is
	// not copied; callers must not mutate it.
	Symbols SymbolTable
}

// Fault builds a CompileError. Passes call this at the point a rule
// fails, rather than letting a bare sentinel propagate, so the caller
// always has enough context to explain the failure.
func Fault(err error, node *Node, symbols SymbolTable) *CompileError {
	return &CompileError{Err: err, Node: node, Symbols: symbols}
}

func (e *CompileError) Error() string {
	if e.Node == nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s (at %s)", e.Err.Error(), e.Node.Symbol)
}

func (e *CompileError) Unwrap() error { return e.Err }
