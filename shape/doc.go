// Package shape implements shape inference (spec §4.2): given a Context
// whose nodes all have a nil Shape, it returns an equal-structured Context
// where every node carries its result Shape. Symbolic dimensions come from
// the symbol table's shapes and from arithmetic over them; inference adds
// no fresh shape symbols to the symbol table, and an ARRAY whose entry has
// a nil Shape keeps a nil Shape.
//
// Inference is a single post-order pass (package rewrite's Visit):
// every node's Shape is computed purely from its already-shaped children
// and its own operator, per the rule table in spec §4.2. The input
// Context is never mutated (spec §8 property 1); running inference twice
// on an already-shaped Context is a no-op (spec §8 property 2).
package shape
