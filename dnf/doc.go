// Package dnf implements DNF (Denotational Normal Form) reduction (spec
// §4.3): it rewrites a shape-annotated Context so that every non-leaf
// array-producing operator is read through a PSI index, eliminating
// intermediate array materialisations.
//
// Reduce applies the rule table of spec §4.3 at every node in post-order,
// repeating full passes until one produces no change (a fix-point, bounded
// by the strictly-decreasing "operators under PSI" measure the spec
// describes), then checks the result is normal. A node left non-normal
// after the fix-point is reached fails with ErrDNFNoRule.
package dnf
