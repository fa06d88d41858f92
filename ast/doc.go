// Package ast defines the uniform tagged-tree data model for the MOA
// symbolic rewriter: Node, SymbolNode, Context, and the small value types
// (Tag, Symbol, Shape, Dim) they are built from.
//
// This package is pure data plus constructors — it holds no rewrite
// behaviour. The traversal engine, fresh-name generator, and shape
// arithmetic that walk and rebuild these trees live in package rewrite;
// the shape/dnf/onf packages consume both.
//
// Every exported type here is a value or a tree of pointers to immutable-
// by-convention nodes: passes build new Nodes rather than mutating existing
// ones, so that a Context handed to a pass is never observably altered by
// it (see the Equal methods, used by every pass's immutability test).
package ast
