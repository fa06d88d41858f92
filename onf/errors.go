package onf

import "errors"

var (
	// ErrONFIncomplete indicates the lowered tree fails spec §8 property 5:
	// a leaf that is neither a scalar literal, a PSI of a concrete index
	// vector into an input ARRAY, nor a reference to an allocated buffer.
	ErrONFIncomplete = errors.New("onf: tree is not ONF-complete")

	// ErrNoReduceIdentity indicates a (REDUCE, op) survived DNF with an op
	// this reducer does not know an accumulator identity for. Only
	// commutative, associative operators make sense as a reduce operand;
	// the algebra's PLUS and TIMES are the only ones with a well-defined
	// identity (0 and 1), matching every array language's reduce.
	ErrNoReduceIdentity = errors.New("onf: no accumulator identity for reduce operator")
)
