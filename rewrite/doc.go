// Package rewrite holds the generic machinery shared by the shape, dnf,
// and onf passes: a post-order tree traversal, the fresh symbol-table name
// generator, and the trivial arithmetic used to fold or propagate symbolic
// shape dimensions (spec §2, "Rewrite utilities").
//
// Everything here is pure and Context-in/Context-out, following the same
// immutability discipline as package ast: Visit never mutates the Node
// tree it walks, and GenerateUniqueName never mutates the SymbolTable it
// reads — both return fresh values.
package rewrite
