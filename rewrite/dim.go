package rewrite

import (
	"fmt"

	"github.com/moa-lang/moa/ast"
)

// dimLiteralPrefix marks a pseudo ARRAY node used only to embed a concrete
// integer inside a Dim arithmetic sub-tree (so that PLUS/MINUS/TIMES over
// Dims can always be expressed as ast.Node children, per the Dim design
// note in spec §9). These nodes never reference the real symbol table. They
// are built by dimNode and read back into a Dim by DimOf; they also stay in
// the index vectors and loop bounds that the dnf and onf passes emit.
const dimLiteralPrefix = "#"

// dimNode renders a Dim as the ast.Node a PLUS/MINUS/TIMES arithmetic
// sub-tree would hold as a child: the Dim's own sub-tree if symbolic, or a
// literal pseudo-node if concrete.
func dimNode(d ast.Dim) *ast.Node {
	if d.IsSymbolic() {
		return d.Node()
	}
	return ast.NewNode(ast.Sym1(ast.TagArray), ast.Shape{}, []string{fmt.Sprintf("%s%d", dimLiteralPrefix, d.Int())}, nil)
}

// DimOf reads a Dim back out of a node built by dimNode, for callers that
// need to interpret an arithmetic sub-tree's leaves.
func DimOf(n *ast.Node) (ast.Dim, bool) {
	if n == nil || n.Symbol.Head() != ast.TagArray || len(n.Attrib) == 0 {
		return ast.Dim{}, false
	}
	name := n.Attrib[0]
	if len(name) == 0 || name[0] != '#' {
		return ast.Dim{}, false
	}
	var v int64
	if _, err := fmt.Sscanf(name[1:], "%d", &v); err != nil {
		return ast.Dim{}, false
	}
	return ast.ConcreteDim(v), true
}

// FoldDim combines two Dims under the given arithmetic tag (TagPlus,
// TagMinus, or TagTimes), folding to a concrete Dim when both operands are
// concrete, applying the spec's "identity and zero folding only"
// simplification when one operand is a concrete identity/annihilator, and
// otherwise building a symbolic PLUS/MINUS/TIMES sub-tree (spec §4.2,
// "Symbolic dimensions propagate as sub-trees; integer arithmetic on them
// produces PLUS/MINUS/TIMES sub-trees on their elements, simplified
// trivially").
func FoldDim(tag ast.Tag, a, b ast.Dim) ast.Dim {
	if !a.IsSymbolic() && !b.IsSymbolic() {
		switch tag {
		case ast.TagPlus:
			return ast.ConcreteDim(a.Int() + b.Int())
		case ast.TagMinus:
			return ast.ConcreteDim(a.Int() - b.Int())
		case ast.TagTimes:
			return ast.ConcreteDim(a.Int() * b.Int())
		}
	}

	// Identity/zero folding: only applies when the *other* side provides
	// the identity/annihilator and the symbolic side would otherwise pass
	// through unchanged.
	if !a.IsSymbolic() {
		switch {
		case tag == ast.TagPlus && a.Int() == 0:
			return b
		case tag == ast.TagTimes && a.Int() == 1:
			return b
		case tag == ast.TagTimes && a.Int() == 0:
			return ast.ConcreteDim(0)
		}
	}
	if !b.IsSymbolic() {
		switch {
		case (tag == ast.TagPlus || tag == ast.TagMinus) && b.Int() == 0:
			return a
		case tag == ast.TagTimes && b.Int() == 1:
			return a
		case tag == ast.TagTimes && b.Int() == 0:
			return ast.ConcreteDim(0)
		}
	}

	return ast.SymbolicDim(ast.NewNode(ast.Sym1(tag), nil, nil, []*ast.Node{dimNode(a), dimNode(b)}))
}

// AddDim, SubDim, and MulDim are thin named wrappers around FoldDim for the
// three arithmetic operators the shape rules need (TAKE/DROP/CAT shape
// arithmetic in spec §4.2).
func AddDim(a, b ast.Dim) ast.Dim { return FoldDim(ast.TagPlus, a, b) }
func SubDim(a, b ast.Dim) ast.Dim { return FoldDim(ast.TagMinus, a, b) }
func MulDim(a, b ast.Dim) ast.Dim { return FoldDim(ast.TagTimes, a, b) }

// DivDim folds floor division of two Dims, concrete when both operands are
// concrete, else a symbolic TagDivide sub-tree. Used by the DNF reducer's
// RAV-under-PSI unflattening rule (spec §4.3).
func DivDim(a, b ast.Dim) ast.Dim {
	if !a.IsSymbolic() && !b.IsSymbolic() {
		return ast.ConcreteDim(a.Int() / b.Int())
	}
	return ast.SymbolicDim(ast.NewNode(ast.Sym1(ast.TagDivide), nil, nil, []*ast.Node{dimNode(a), dimNode(b)}))
}

// ModDim folds a mod b as a - (a/b)*b, reusing DivDim/MulDim/SubDim so it
// concrete-folds exactly when DivDim does.
func ModDim(a, b ast.Dim) ast.Dim {
	return SubDim(a, MulDim(DivDim(a, b), b))
}

// ProductDim folds a Shape down to a single Dim by multiplying every axis
// extent together (used by RAV's "product(shape(A))" rule, spec §4.2).
func ProductDim(s ast.Shape) ast.Dim {
	acc := ast.ConcreteDim(1)
	for _, d := range s {
		acc = MulDim(acc, d)
	}
	return acc
}

// ScalarDim reads a Dim out of a sub-expression used as a scalar operand
// (the "n" in TAKE(n, A)/DROP(n, A)/IOTA(n)): if n is an ARRAY leaf whose
// symbol-table entry carries a single-element literal Value, the Dim is
// concrete; otherwise n itself becomes the Dim's symbolic sub-tree, per
// spec §4.2's "values may be symbolic".
func ScalarDim(ctx ast.Context, n *ast.Node) ast.Dim {
	if n != nil && n.Symbol.Head() == ast.TagArray {
		if sn, ok := ctx.SymbolTable.Get(n.Name()); ok && len(sn.Value) == 1 {
			return ast.ConcreteDim(sn.Value[0])
		}
	}
	return ast.SymbolicDim(n)
}
