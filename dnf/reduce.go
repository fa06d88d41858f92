package dnf

import (
	"github.com/moa-lang/moa/ast"
	"github.com/moa-lang/moa/rewrite"
)

// maxPasses bounds the fix-point loop. Spec §4.3's terminating measure
// ("number of non-index array-producing operators appearing under a PSI")
// strictly decreases on every productive pass, so this is a generous upper
// bound rather than a tuning knob.
const maxPasses = 4096

// Reduce runs DNF reduction to fix-point (spec §4.3). ctx is not mutated.
func Reduce(ctx ast.Context, opts Options) (ast.Context, error) {
	cur := ctx
	for i := 0; i < maxPasses; i++ {
		next, err := onePass(cur, opts)
		if err != nil {
			return ctx, err
		}
		if cur.Equal(next) {
			if err := checkNormal(next.AST); err != nil {
				return ctx, ast.Fault(err, next.AST, next.SymbolTable)
			}
			return next, nil
		}
		cur = next
	}
	return ctx, ast.Fault(ErrDNFNoRule, cur.AST, cur.SymbolTable)
}

func onePass(ctx ast.Context, opts Options) (ast.Context, error) {
	return rewrite.VisitContext(ctx, visitor(opts))
}

func visitor(opts Options) rewrite.Visitor {
	return func(ctx ast.Context, n *ast.Node) (ast.Context, *ast.Node, error) {
		if err := ast.Validate(n); err != nil {
			return ctx, nil, ast.Fault(err, n, ctx.SymbolTable)
		}
		switch n.Symbol.Head() {
		case ast.TagPsi:
			return applyPsiRule(ctx, n, opts)
		case ast.TagDim:
			return ctx, asScalarNode(ast.ConcreteDim(int64(n.Child(0).Shape.Rank()))), nil
		case ast.TagTau:
			return ctx, asScalarNode(rewrite.ProductDim(n.Child(0).Shape)), nil
		case ast.TagShape:
			return ctx, rewrite.IndexNode(shapeDims(n.Child(0).Shape)), nil
		default:
			return ctx, n, nil
		}
	}
}

func shapeDims(s ast.Shape) []ast.Dim {
	out := make([]ast.Dim, len(s))
	copy(out, s)
	return out
}

// asScalarNode renders a single Dim as a standalone scalar-shaped
// expression node (DIM/TAU terminalise to a bare scalar, not a vector).
func asScalarNode(d ast.Dim) *ast.Node {
	return rewrite.IndexNode([]ast.Dim{d}).Children[0]
}

func applyPsiRule(ctx ast.Context, n *ast.Node, opts Options) (ast.Context, *ast.Node, error) {
	idxNode, target := n.Child(0), n.Child(1)
	idx, ok := rewrite.DecomposeIndex(ctx, idxNode)
	if !ok {
		// idxNode is itself still being normalised (e.g. a nested PSI
		// whose own index hasn't resolved yet); leave n for a later pass.
		return ctx, n, nil
	}

	switch {
	case target.Symbol.Head() == ast.TagTranspose:
		return psiOfTranspose(ctx, n, idx, target)
	case target.Symbol.Head() == ast.TagTransposeV:
		return psiOfTransposeV(ctx, n, idx, target)
	case isElementwise(target.Symbol.Head()) && !target.Symbol.IsParametric():
		return psiOfElementwise(ctx, n, idxNode, target)
	case target.Symbol.IsParametric() && target.Symbol.Head() == ast.TagDot:
		return psiOfDot(ctx, n, idx, target)
	case target.Symbol.IsParametric() && target.Symbol.Head() == ast.TagReduce:
		return psiOfReduce(ctx, n, idx, target)
	case target.Symbol.Head() == ast.TagTake:
		return psiOfTake(ctx, n, idxNode, idx, target, opts)
	case target.Symbol.Head() == ast.TagDrop:
		return psiOfDrop(ctx, n, idx, target)
	case target.Symbol.Head() == ast.TagCat:
		return psiOfCat(ctx, n, idx, target)
	case target.Symbol.Head() == ast.TagIota:
		return ctx, asScalarNode(idx[0]), nil
	case target.Symbol.Head() == ast.TagPsi:
		return psiOfPsi(ctx, n, idx, target)
	case target.Symbol.Head() == ast.TagRav:
		return psiOfRav(ctx, n, idx, target)
	default:
		if len(idx) == 0 {
			// An empty index reads nothing: PSI((), X) is X itself.
			// Reachable when ONF wraps an already-scalar root (spec
			// §4.4 step 2 applied to a rank-0 result).
			return ctx, target, nil
		}
		// target is ARRAY (or anything else already normal): nothing to do.
		return ctx, n, nil
	}
}

func isElementwise(t ast.Tag) bool {
	return t == ast.TagPlus || t == ast.TagMinus || t == ast.TagTimes || t == ast.TagDivide
}

func psi(idxNode, target *ast.Node, shape ast.Shape) *ast.Node {
	return ast.NewNode(ast.Sym1(ast.TagPsi), shape, nil, []*ast.Node{idxNode, target})
}

func reverseIdx(idx []ast.Dim) []ast.Dim {
	out := make([]ast.Dim, len(idx))
	for i, d := range idx {
		out[len(idx)-1-i] = d
	}
	return out
}

func psiOfTranspose(ctx ast.Context, n *ast.Node, idx []ast.Dim, target *ast.Node) (ast.Context, *ast.Node, error) {
	a := target.Child(0)
	if len(idx) != a.Shape.Rank() {
		return ctx, nil, ast.Fault(ErrRankMismatch, n, ctx.SymbolTable)
	}
	newIdx := rewrite.IndexNode(reverseIdx(idx))
	return ctx, psi(newIdx, a, n.Shape), nil
}

func psiOfTransposeV(ctx ast.Context, n *ast.Node, idx []ast.Dim, target *ast.Node) (ast.Context, *ast.Node, error) {
	p, a := target.Child(0), target.Child(1)
	sn, found := ctx.SymbolTable.Get(p.Name())
	if !found || len(sn.Value) != len(idx) {
		return ctx, nil, ast.Fault(ErrRankMismatch, n, ctx.SymbolTable)
	}
	// apply_perm(p, i)[k] = i[position_of(k, p)]: for each output position
	// k, find j such that p[j] == k, and take idx[j].
	applied := make([]ast.Dim, len(idx))
	for k := range applied {
		for j, pv := range sn.Value {
			if int(pv) == k {
				applied[k] = idx[j]
				break
			}
		}
	}
	newIdx := rewrite.IndexNode(applied)
	return ctx, psi(newIdx, a, n.Shape), nil
}

func psiOfElementwise(ctx ast.Context, n *ast.Node, idxNode, target *ast.Node) (ast.Context, *ast.Node, error) {
	l, r := target.Child(0), target.Child(1)
	left := l
	if !l.Shape.IsScalar() {
		left = psi(idxNode, l, n.Shape)
	}
	right := r
	if !r.Shape.IsScalar() {
		right = psi(idxNode, r, n.Shape)
	}
	result := ast.NewNode(ast.Sym1(target.Symbol.Head()), n.Shape, nil, []*ast.Node{left, right})
	return ctx, result, nil
}

func psiOfDot(ctx ast.Context, n *ast.Node, idx []ast.Dim, target *ast.Node) (ast.Context, *ast.Node, error) {
	l, r := target.Child(0), target.Child(1)
	rankL := l.Shape.Rank()
	if len(idx) < rankL {
		return ctx, nil, ast.Fault(ErrRankMismatch, n, ctx.SymbolTable)
	}
	leftPsi := psi(rewrite.IndexNode(idx[:rankL]), l, l.Shape[len(idx[:rankL]):])
	rightPsi := psi(rewrite.IndexNode(idx[rankL:]), r, r.Shape[len(idx[rankL:]):])
	result := ast.NewNode(ast.Sym1(target.Symbol.Op()), n.Shape, nil, []*ast.Node{leftPsi, rightPsi})
	return ctx, result, nil
}

func psiOfReduce(ctx ast.Context, n *ast.Node, idx []ast.Dim, target *ast.Node) (ast.Context, *ast.Node, error) {
	a := target.Child(0)
	if a.Shape.Rank() < 1 {
		return ctx, nil, ast.Fault(ErrRankMismatch, n, ctx.SymbolTable)
	}
	// The placeholder's own SymbolNode.Shape carries the axis extent it
	// ranges over (a.Shape[0]), not its leaf shape (always scalar): this is
	// the only channel available to hand the iteration bound forward to
	// the ONF reducer, which has no other way to recover it once this PSI
	// has been pushed arbitrarily deep into a composite body. The REDUCE
	// node's own Attrib names the placeholder, so ONF can find it again
	// without re-deriving it from the (possibly rewritten) body.
	kName, newCtx := rewrite.GenerateUniqueName(ctx, rewrite.DefaultPrefix, ast.NewSymbolNode(ast.TagArray, ast.Shape{a.Shape[0]}, nil, nil))
	kLeaf := ast.NewNode(ast.Sym1(ast.TagArray), ast.Shape{}, []string{kName}, nil)
	newIdx := append([]ast.Dim{ast.SymbolicDim(kLeaf)}, idx...)
	innerPsi := psi(rewrite.IndexNode(newIdx), a, n.Shape)
	result := ast.NewNode(ast.Sym2(ast.TagReduce, target.Symbol.Op()), n.Shape, []string{kName}, []*ast.Node{innerPsi})
	return newCtx, result, nil
}

func psiOfTake(ctx ast.Context, n *ast.Node, idxNode *ast.Node, idx []ast.Dim, target *ast.Node, opts Options) (ast.Context, *ast.Node, error) {
	count, a := target.Child(0), target.Child(1)
	inner := psi(idxNode, a, n.Shape)
	if !opts.IncludeConditions || len(idx) == 0 {
		return ctx, inner, nil
	}
	bound := rewrite.ScalarDim(ctx, count)
	if !idx[0].IsSymbolic() && !bound.IsSymbolic() && idx[0].Int() < bound.Int() {
		return ctx, inner, nil // statically in range: condition folds away
	}
	pred := ast.NewNode(ast.Sym1(ast.TagLessThan), ast.Shape{}, nil, []*ast.Node{asScalarNode(idx[0]), asScalarNode(bound)})
	errNode := ast.NewNode(ast.Sym1(ast.TagError), nil, nil, nil)
	cond := ast.NewNode(ast.Sym1(ast.TagCondition), n.Shape, nil, []*ast.Node{pred, inner, errNode})
	return ctx, cond, nil
}

func psiOfDrop(ctx ast.Context, n *ast.Node, idx []ast.Dim, target *ast.Node) (ast.Context, *ast.Node, error) {
	countNode, a := target.Child(0), target.Child(1)
	if len(idx) == 0 {
		return ctx, nil, ast.Fault(ErrRankMismatch, n, ctx.SymbolTable)
	}
	count := rewrite.ScalarDim(ctx, countNode)
	newHead := rewrite.AddDim(idx[0], count)
	newIdx := rewrite.IndexNode(append([]ast.Dim{newHead}, idx[1:]...))
	return ctx, psi(newIdx, a, n.Shape), nil
}

func psiOfCat(ctx ast.Context, n *ast.Node, idx []ast.Dim, target *ast.Node) (ast.Context, *ast.Node, error) {
	l, r := target.Child(0), target.Child(1)
	if len(idx) == 0 || l.Shape.Rank() < 1 {
		return ctx, nil, ast.Fault(ErrRankMismatch, n, ctx.SymbolTable)
	}
	boundary := l.Shape[0]
	thenIdx := rewrite.IndexNode(idx)
	thenBranch := psi(thenIdx, l, n.Shape)
	elseHead := rewrite.SubDim(idx[0], boundary)
	elseIdx := rewrite.IndexNode(append([]ast.Dim{elseHead}, idx[1:]...))
	elseBranch := psi(elseIdx, r, n.Shape)

	if !idx[0].IsSymbolic() && !boundary.IsSymbolic() {
		// Statically decidable: the boundary check folds away regardless
		// of IncludeConditions, matching "smaller code" for the decidable
		// case either way.
		if idx[0].Int() < boundary.Int() {
			return ctx, thenBranch, nil
		}
		return ctx, elseBranch, nil
	}
	// Symbolic boundary: the source leaves include_conditions=false
	// undefined here (spec §9 Open Question b); this implementation
	// always keeps the guard rather than silently assuming in-range, so
	// behaviour stays decidable instead of undefined.
	return ctx, buildCondition(idx[0], boundary, thenBranch, elseBranch, n.Shape), nil
}

func buildCondition(left, right ast.Dim, thenBranch, elseBranch *ast.Node, shape ast.Shape) *ast.Node {
	pred := ast.NewNode(ast.Sym1(ast.TagLessThan), ast.Shape{}, nil, []*ast.Node{asScalarNode(left), asScalarNode(right)})
	return ast.NewNode(ast.Sym1(ast.TagCondition), shape, nil, []*ast.Node{pred, thenBranch, elseBranch})
}

func psiOfPsi(ctx ast.Context, n *ast.Node, idx []ast.Dim, target *ast.Node) (ast.Context, *ast.Node, error) {
	jNode, a := target.Child(0), target.Child(1)
	jIdx, ok := rewrite.DecomposeIndex(ctx, jNode)
	if !ok {
		return ctx, n, nil
	}
	newIdx := rewrite.IndexNode(append(append([]ast.Dim{}, jIdx...), idx...))
	return ctx, psi(newIdx, a, n.Shape), nil
}

func psiOfRav(ctx ast.Context, n *ast.Node, idx []ast.Dim, target *ast.Node) (ast.Context, *ast.Node, error) {
	a := target.Child(0)
	if len(idx) != 1 {
		return ctx, nil, ast.Fault(ErrRankMismatch, n, ctx.SymbolTable)
	}
	flat := idx[0]
	shape := a.Shape
	unflat := make([]ast.Dim, shape.Rank())
	remaining := flat
	for axis := shape.Rank() - 1; axis >= 0; axis-- {
		extent := shape[axis]
		unflat[axis] = rewrite.ModDim(remaining, extent)
		remaining = rewrite.DivDim(remaining, extent)
	}
	newIdx := rewrite.IndexNode(unflat)
	return ctx, psi(newIdx, a, n.Shape), nil
}
