package onf

// Options configures ONF lowering (spec §4.4 steps 5 and 6).
type Options struct {
	// IncludeConditions keeps CAT/TAKE boundary CONDITION nodes surviving
	// from DNF as branching statements. When false, every CONDITION is
	// collapsed to its then branch (the in-range case), matching DNF's own
	// "smaller code, undefined behaviour on out-of-bounds indices" framing
	// for the off setting.
	IncludeConditions bool

	// MaterializeScalars hoists every remaining intermediate scalar
	// sub-expression into its own named, allocated buffer, so the emitter
	// never has to treat an arithmetic sub-tree specially: every
	// expression it sees is a leaf read (spec §4.4 step 6).
	MaterializeScalars bool
}
