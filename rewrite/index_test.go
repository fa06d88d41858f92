package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moa-lang/moa/ast"
	"github.com/moa-lang/moa/rewrite"
)

func TestIndexNodeRoundTripsConcreteDims(t *testing.T) {
	elems := []ast.Dim{ast.ConcreteDim(1), ast.ConcreteDim(2), ast.ConcreteDim(3)}
	n := rewrite.IndexNode(elems)

	assert.Equal(t, ast.TagIndexVector, n.Symbol.Head())
	assert.True(t, n.Shape.Equal(ast.ConcreteShape(3)))
	require.Len(t, n.Children, 3)

	ctx := ast.CreateContext(nil, ast.NewSymbolTable())
	got, ok := rewrite.DecomposeIndex(ctx, n)
	require.True(t, ok)
	require.Len(t, got, 3)
	for i, want := range elems {
		assert.True(t, got[i].Equal(want), "element %d", i)
	}
}

func TestIndexNodeRoundTripsSymbolicDims(t *testing.T) {
	sym := ast.SymbolicDim(arrayLeaf("n"))
	n := rewrite.IndexNode([]ast.Dim{ast.ConcreteDim(0), sym})

	ctx := ast.CreateContext(nil, ast.NewSymbolTable())
	got, ok := rewrite.DecomposeIndex(ctx, n)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.False(t, got[0].IsSymbolic())
	require.True(t, got[1].IsSymbolic())
	assert.Equal(t, "n", got[1].Node().Name())
}

func TestDecomposeIndexReadsSymbolTableLiteral(t *testing.T) {
	st := ast.NewSymbolTable().With("_a1", ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(2), []int64{3, 4}, nil))
	ctx := ast.CreateContext(nil, st)

	got, ok := rewrite.DecomposeIndex(ctx, arrayLeaf("_a1"))
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].Int())
	assert.Equal(t, int64(4), got[1].Int())
}

func TestDecomposeIndexFalseWhenUnresolved(t *testing.T) {
	st := ast.NewSymbolTable().With("A", ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(5), nil, nil))
	ctx := ast.CreateContext(nil, st)

	_, ok := rewrite.DecomposeIndex(ctx, arrayLeaf("A"))
	assert.False(t, ok, "a symbol with no literal Value is not yet a resolved index")

	_, ok = rewrite.DecomposeIndex(ctx, nil)
	assert.False(t, ok)
}

func TestIndexNodeEmpty(t *testing.T) {
	n := rewrite.IndexNode(nil)
	assert.True(t, n.Shape.Equal(ast.ConcreteShape(0)))
	assert.Empty(t, n.Children)
}
