// Package onf implements ONF (Operational Normal Form) reduction (spec
// §4.4): it turns a DNF-reduced Context — which still reads array elements
// abstractly via PSI with symbolic index vectors — into an imperative
// schedule of LOOP/ASSIGN/CONDITION/INITIALISE nodes whose leaves are
// either scalar literals, a PSI of a concrete index vector into an input
// ARRAY, or a reference to an allocated buffer.
//
// Reduce synthesises one fresh index symbol per output axis, wraps the DNF
// root in a PSI over those symbols, and pushes it through using the exact
// same rule set DNF uses (by calling dnf.Reduce on the wrapped tree): the
// root-exemption in dnf's own normality check exists precisely so that a
// bare array-producing DNF root can be handed back here and indexed fully.
// What survives that second reduction is lowered into a loop nest: any
// (REDUCE, op) is turned into an accumulator and an inner loop (spec §4.4
// step 4), CONDITION nodes are either kept or collapsed to their then
// branch depending on IncludeConditions, and MaterializeScalars optionally
// hoists every remaining intermediate scalar expression into its own
// named buffer.
package onf
