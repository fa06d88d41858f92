package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moa-lang/moa/ast"
	"github.com/moa-lang/moa/rewrite"
)

func arrayLeaf(name string) *ast.Node {
	return ast.NewNode(ast.Sym1(ast.TagArray), nil, []string{name}, nil)
}

func TestVisitPostOrderLeftToRight(t *testing.T) {
	tree := ast.NewNode(ast.Sym1(ast.TagPlus), nil, nil, []*ast.Node{arrayLeaf("A"), arrayLeaf("B")})
	ctx := ast.CreateContext(tree, ast.NewSymbolTable())

	var order []string
	_, _, err := rewrite.Visit(ctx, tree, func(c ast.Context, n *ast.Node) (ast.Context, *ast.Node, error) {
		if n.Symbol.Head() == ast.TagArray {
			order = append(order, n.Name())
		} else {
			order = append(order, n.Symbol.String())
		}
		return c, n, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "PLUS"}, order)
}

func TestVisitSharesUnchangedSubtrees(t *testing.T) {
	leaf := arrayLeaf("A")
	tree := ast.NewNode(ast.Sym1(ast.TagTranspose), nil, nil, []*ast.Node{leaf})
	ctx := ast.CreateContext(tree, ast.NewSymbolTable())

	_, newRoot, err := rewrite.Visit(ctx, tree, func(c ast.Context, n *ast.Node) (ast.Context, *ast.Node, error) {
		return c, n, nil // identity visitor: nothing changes
	})
	require.NoError(t, err)
	assert.Same(t, leaf, newRoot.Children[0], "unchanged child must be the same pointer")
}

func TestGenerateUniqueNameScansSequence(t *testing.T) {
	st := ast.NewSymbolTable().
		With("_a1", ast.NewSymbolNode(ast.TagArray, nil, nil, nil)).
		With("_a2", ast.NewSymbolNode(ast.TagArray, nil, nil, nil))
	ctx := ast.CreateContext(nil, st)

	name, newCtx := rewrite.GenerateUniqueName(ctx, "", ast.NewSymbolNode(ast.TagArray, ast.Shape{}, nil, nil))
	assert.Equal(t, "_a3", name)
	assert.True(t, newCtx.SymbolTable.Has("_a3"))
	assert.False(t, ctx.SymbolTable.Has("_a3"), "the input context must not be mutated")
}

func TestGenerateUniqueNameFillsGaps(t *testing.T) {
	st := ast.NewSymbolTable().With("_a2", ast.NewSymbolNode(ast.TagArray, nil, nil, nil))
	ctx := ast.CreateContext(nil, st)

	name, _ := rewrite.GenerateUniqueName(ctx, "", ast.NewSymbolNode(ast.TagArray, ast.Shape{}, nil, nil))
	assert.Equal(t, "_a1", name)
}

func TestFoldDimConcrete(t *testing.T) {
	a := ast.ConcreteDim(3)
	b := ast.ConcreteDim(4)
	sum := rewrite.AddDim(a, b)
	require.False(t, sum.IsSymbolic())
	assert.Equal(t, int64(7), sum.Int())
}

func TestFoldDimIdentity(t *testing.T) {
	sym := ast.SymbolicDim(arrayLeaf("n"))

	plusZero := rewrite.AddDim(sym, ast.ConcreteDim(0))
	assert.True(t, plusZero.Equal(sym))

	timesOne := rewrite.MulDim(ast.ConcreteDim(1), sym)
	assert.True(t, timesOne.Equal(sym))

	timesZero := rewrite.MulDim(sym, ast.ConcreteDim(0))
	require.False(t, timesZero.IsSymbolic())
	assert.Equal(t, int64(0), timesZero.Int())
}

func TestFoldDimBuildsSubtreeWhenBothSymbolic(t *testing.T) {
	x := ast.SymbolicDim(arrayLeaf("x"))
	y := ast.SymbolicDim(arrayLeaf("y"))
	sum := rewrite.SubDim(x, y)
	require.True(t, sum.IsSymbolic())
	assert.Equal(t, ast.TagMinus, sum.Node().Symbol.Head())
	assert.Len(t, sum.Node().Children, 2)
}
