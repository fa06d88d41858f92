package shape

import (
	"github.com/moa-lang/moa/ast"
	"github.com/moa-lang/moa/rewrite"
)

// Infer runs shape inference over ctx and returns a new Context with every
// node's Shape populated, per the per-operator rules of spec §4.2. ctx is
// not mutated (spec §8 property 1).
func Infer(ctx ast.Context) (ast.Context, error) {
	return rewrite.VisitContext(ctx, inferNode)
}

func inferNode(ctx ast.Context, n *ast.Node) (ast.Context, *ast.Node, error) {
	if err := ast.Validate(n); err != nil {
		return ctx, nil, ast.Fault(err, n, ctx.SymbolTable)
	}

	head := n.Symbol.Head()

	if n.Symbol.IsParametric() {
		shaped, err := inferParametric(ctx, n, head, n.Symbol.Op())
		return ctx, shaped, err
	}

	switch head {
	case ast.TagArray:
		return inferArray(ctx, n)
	case ast.TagTranspose:
		return ctx, n.WithShape(n.Child(0).Shape.Reverse()), nil
	case ast.TagTransposeV:
		return inferTransposeV(ctx, n)
	case ast.TagShape:
		rank := int64(n.Child(0).Shape.Rank())
		return ctx, n.WithShape(ast.ConcreteShape(rank)), nil
	case ast.TagDim, ast.TagTau:
		return ctx, n.WithShape(ast.Shape{}), nil
	case ast.TagRav:
		total := rewrite.ProductDim(n.Child(0).Shape)
		return ctx, n.WithShape(ast.Shape{total}), nil
	case ast.TagIota:
		count := rewrite.ScalarDim(ctx, n.Child(0))
		return ctx, n.WithShape(ast.Shape{count}), nil
	case ast.TagPsi:
		return inferPsi(ctx, n)
	case ast.TagPlus, ast.TagMinus, ast.TagTimes, ast.TagDivide:
		return inferElementwise(ctx, n)
	case ast.TagTake:
		return inferTake(ctx, n)
	case ast.TagDrop:
		return inferDrop(ctx, n)
	case ast.TagCat:
		return inferCat(ctx, n)
	case ast.TagAssign:
		return inferAssign(ctx, n)
	default:
		// Imperative constructs (LOOP/CONDITION/INITIALISE/...) are only
		// produced by the ONF reducer, downstream of shape inference; a
		// well-formed frontend Context never contains them here.
		return ctx, nil, ast.Fault(ast.ErrMalformedNode, n, ctx.SymbolTable)
	}
}

func inferArray(ctx ast.Context, n *ast.Node) (ast.Context, *ast.Node, error) {
	sn, ok := ctx.SymbolTable.Get(n.Name())
	if !ok {
		return ctx, nil, ast.Fault(ErrUnknownSymbol, n, ctx.SymbolTable)
	}
	return ctx, n.WithShape(sn.Shape), nil
}

func inferTransposeV(ctx ast.Context, n *ast.Node) (ast.Context, *ast.Node, error) {
	perm := n.Child(0)
	target := n.Child(1)

	sn, ok := ctx.SymbolTable.Get(perm.Name())
	if !ok {
		return ctx, nil, ast.Fault(ErrUnknownSymbol, perm, ctx.SymbolTable)
	}
	if len(sn.Value) != target.Shape.Rank() {
		return ctx, nil, ast.Fault(ErrRankMismatch, n, ctx.SymbolTable)
	}

	// result[i] = shape(target)[ j ] where perm[j] == i — the inverse
	// permutation (spec §4.2's worked example: perm=(2,0,1),
	// shape(A)=(3,4,5) ⟹ (4,5,3)).
	inv := make([]int, len(sn.Value))
	for j, p := range sn.Value {
		if p < 0 || int(p) >= len(inv) {
			return ctx, nil, ast.Fault(ErrRankMismatch, n, ctx.SymbolTable)
		}
		inv[p] = j
	}
	out := make(ast.Shape, len(inv))
	for i, j := range inv {
		out[i] = target.Shape[j]
	}
	return ctx, n.WithShape(out), nil
}

func inferPsi(ctx ast.Context, n *ast.Node) (ast.Context, *ast.Node, error) {
	idx := n.Child(0)
	target := n.Child(1)

	if !idx.Shape.IsVector() {
		return ctx, nil, ast.Fault(ErrRankMismatch, n, ctx.SymbolTable)
	}
	idxLen := idx.Shape[0]
	if idxLen.IsSymbolic() {
		return ctx, nil, ast.Fault(ErrRankMismatch, n, ctx.SymbolTable)
	}
	if int(idxLen.Int()) > target.Shape.Rank() {
		return ctx, nil, ast.Fault(ErrRankMismatch, n, ctx.SymbolTable)
	}
	return ctx, n.WithShape(append(ast.Shape{}, target.Shape[idxLen.Int():]...)), nil
}

func inferElementwise(ctx ast.Context, n *ast.Node) (ast.Context, *ast.Node, error) {
	l, r := n.Child(0), n.Child(1)
	switch {
	case l.Shape.IsScalar():
		return ctx, n.WithShape(r.Shape), nil
	case r.Shape.IsScalar():
		return ctx, n.WithShape(l.Shape), nil
	case l.Shape.Equal(r.Shape):
		return ctx, n.WithShape(l.Shape), nil
	default:
		return ctx, nil, ast.Fault(ErrShapeMismatch, n, ctx.SymbolTable)
	}
}

func inferParametric(ctx ast.Context, n *ast.Node, head, op ast.Tag) (*ast.Node, error) {
	switch head {
	case ast.TagDot:
		l, r := n.Child(0), n.Child(1)
		return n.WithShape(l.Shape.Concat(r.Shape)), nil
	case ast.TagReduce:
		a := n.Child(0)
		if a.Shape.Rank() < 1 {
			return nil, ast.Fault(ErrRankMismatch, n, ctx.SymbolTable)
		}
		return n.WithShape(append(ast.Shape{}, a.Shape[1:]...)), nil
	default:
		_ = op
		return nil, ast.Fault(ast.ErrMalformedNode, n, ctx.SymbolTable)
	}
}

func inferTake(ctx ast.Context, n *ast.Node) (ast.Context, *ast.Node, error) {
	count := rewrite.ScalarDim(ctx, n.Child(0))
	a := n.Child(1)
	if a.Shape.Rank() < 1 {
		return ctx, nil, ast.Fault(ErrRankMismatch, n, ctx.SymbolTable)
	}
	out := append(ast.Shape{count}, a.Shape[1:]...)
	return ctx, n.WithShape(out), nil
}

func inferDrop(ctx ast.Context, n *ast.Node) (ast.Context, *ast.Node, error) {
	count := rewrite.ScalarDim(ctx, n.Child(0))
	a := n.Child(1)
	if a.Shape.Rank() < 1 {
		return ctx, nil, ast.Fault(ErrRankMismatch, n, ctx.SymbolTable)
	}
	remaining := rewrite.SubDim(a.Shape[0], count)
	out := append(ast.Shape{remaining}, a.Shape[1:]...)
	return ctx, n.WithShape(out), nil
}

func inferCat(ctx ast.Context, n *ast.Node) (ast.Context, *ast.Node, error) {
	l, r := n.Child(0), n.Child(1)
	if l.Shape.Rank() < 1 || r.Shape.Rank() < 1 {
		return ctx, nil, ast.Fault(ErrRankMismatch, n, ctx.SymbolTable)
	}
	if !l.Shape[1:].Equal(r.Shape[1:]) {
		return ctx, nil, ast.Fault(ErrShapeMismatch, n, ctx.SymbolTable)
	}
	head := rewrite.AddDim(l.Shape[0], r.Shape[0])
	out := append(ast.Shape{head}, l.Shape[1:]...)
	return ctx, n.WithShape(out), nil
}

func inferAssign(ctx ast.Context, n *ast.Node) (ast.Context, *ast.Node, error) {
	dst, src := n.Child(0), n.Child(1)
	if !dst.Shape.Equal(src.Shape) {
		return ctx, nil, ast.Fault(ErrShapeMismatch, n, ctx.SymbolTable)
	}
	return ctx, n.WithShape(dst.Shape), nil
}
