// Package shape: sentinel error set (spec §7).
//
// Every rule below returns one of these through ast.Fault, never a bare
// sentinel and never a panic — algorithms validate before they index into
// a Shape or a SymbolNode's fields, following the same "no algorithm
// should panic on user-triggered error conditions" discipline the teacher
// states in matrix/errors.go.
package shape

import "errors"

var (
	// ErrShapeMismatch: binary operand shapes disagree and neither is scalar.
	ErrShapeMismatch = errors.New("shape: operand shapes disagree")

	// ErrRankMismatch: index rank exceeds array rank under PSI, reduce
	// applied to a scalar, or a TRANSPOSEV permutation length disagrees
	// with the target array's rank.
	ErrRankMismatch = errors.New("shape: rank mismatch")

	// ErrUnknownSymbol: a node references a name absent from the symbol table.
	ErrUnknownSymbol = errors.New("shape: unknown symbol")
)
