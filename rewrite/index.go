package rewrite

import "github.com/moa-lang/moa/ast"

// IndexNode materializes a vector of Dims (an index vector, or a literal
// shape vector) as a single Node, for embedding as a PSI operand or as the
// result of a SHAPE terminalisation (spec §4.3). Each element is encoded
// the same way FoldDim encodes a Dim operand: a literal pseudo-leaf when
// concrete, the Dim's own sub-tree when symbolic.
func IndexNode(elems []ast.Dim) *ast.Node {
	children := make([]*ast.Node, len(elems))
	for i, d := range elems {
		children[i] = dimNode(d)
	}
	return ast.NewNode(ast.Sym1(ast.TagIndexVector), ast.ConcreteShape(int64(len(elems))), nil, children)
}

// DecomposeIndex reads the Dims out of a node previously produced by
// IndexNode, or out of a plain frontend ARRAY leaf bound to a symbol-table
// entry carrying a concrete integer tuple (the form an index vector takes
// before any DNF rule has touched it). ok is false if n is neither.
func DecomposeIndex(ctx ast.Context, n *ast.Node) (elems []ast.Dim, ok bool) {
	if n == nil {
		return nil, false
	}
	if n.Symbol.Head() == ast.TagIndexVector {
		out := make([]ast.Dim, len(n.Children))
		for i, c := range n.Children {
			if d, literal := DimOf(c); literal {
				out[i] = d
			} else {
				out[i] = ast.SymbolicDim(c)
			}
		}
		return out, true
	}
	if n.Symbol.Head() == ast.TagArray {
		if sn, found := ctx.SymbolTable.Get(n.Name()); found && sn.Value != nil {
			out := make([]ast.Dim, len(sn.Value))
			for i, v := range sn.Value {
				out[i] = ast.ConcreteDim(v)
			}
			return out, true
		}
	}
	return nil, false
}
