package dnf

import "errors"

var (
	// ErrDNFNoRule: fix-point was reached with a node still non-normal
	// (spec §7's DNF_NO_RULE).
	ErrDNFNoRule = errors.New("dnf: fix-point reached with non-normal node")

	// ErrRankMismatch: an index vector's length disagrees with the rank a
	// rule requires (e.g. PSI(i, TRANSPOSE(A)) needs len(i) == rank(A)).
	ErrRankMismatch = errors.New("dnf: rank mismatch")
)
