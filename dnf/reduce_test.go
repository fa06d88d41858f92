package dnf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moa-lang/moa/ast"
	"github.com/moa-lang/moa/dnf"
	"github.com/moa-lang/moa/shape"
)

func arrayLeaf(s ast.Shape, name string) *ast.Node {
	return ast.NewNode(ast.Sym1(ast.TagArray), s, []string{name}, nil)
}

func table(entries map[string]*ast.SymbolNode) ast.SymbolTable {
	return ast.SymbolTableOf(entries)
}

// shaped runs shape inference before DNF, matching the real pipeline order.
func shaped(t *testing.T, ctx ast.Context) ast.Context {
	t.Helper()
	out, err := shape.Infer(ctx)
	require.NoError(t, err)
	return out
}

func TestReducePsiOfTransposePushesIndexThroughReversed(t *testing.T) {
	st := table(map[string]*ast.SymbolNode{
		"_a1": ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(2), []int64{3, 4}, nil),
		"A":   ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(5, 6), nil, nil),
	})
	tree := ast.NewNode(ast.Sym1(ast.TagPsi), nil, nil, []*ast.Node{
		arrayLeaf(nil, "_a1"),
		ast.NewNode(ast.Sym1(ast.TagTranspose), nil, nil, []*ast.Node{arrayLeaf(nil, "A")}),
	})
	ctx := shaped(t, ast.CreateContext(tree, st))
	before := ctx.Clone()

	got, err := dnf.Reduce(ctx, dnf.Options{})
	require.NoError(t, err)
	assert.True(t, ctx.Equal(before), "Reduce must not mutate its input Context")

	require.Equal(t, ast.TagPsi, got.AST.Symbol.Head())
	require.Equal(t, ast.TagArray, got.AST.Child(1).Symbol.Head())
	assert.Equal(t, "A", got.AST.Child(1).Name())
	assert.True(t, got.AST.Shape.IsScalar())
}

func TestReducePsiOfElementwiseDistributesOverOperands(t *testing.T) {
	st := table(map[string]*ast.SymbolNode{
		"_a1": ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(1), []int64{0}, nil),
		"A":   ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(3), nil, nil),
		"B":   ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(3), nil, nil),
	})
	tree := ast.NewNode(ast.Sym1(ast.TagPsi), nil, nil, []*ast.Node{
		arrayLeaf(nil, "_a1"),
		ast.NewNode(ast.Sym1(ast.TagPlus), nil, nil, []*ast.Node{arrayLeaf(nil, "A"), arrayLeaf(nil, "B")}),
	})
	ctx := shaped(t, ast.CreateContext(tree, st))

	got, err := dnf.Reduce(ctx, dnf.Options{})
	require.NoError(t, err)

	require.Equal(t, ast.TagPlus, got.AST.Symbol.Head())
	require.Equal(t, ast.TagPsi, got.AST.Child(0).Symbol.Head())
	require.Equal(t, ast.TagPsi, got.AST.Child(1).Symbol.Head())
	assert.Equal(t, "A", got.AST.Child(0).Child(1).Name())
	assert.Equal(t, "B", got.AST.Child(1).Child(1).Name())
}

func TestReducePsiOfDotSplitsIndexAtRankBoundary(t *testing.T) {
	st := table(map[string]*ast.SymbolNode{
		"_a1": ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(2), []int64{0, 1}, nil),
		"A":   ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(3), nil, nil),
		"B":   ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(4), nil, nil),
	})
	tree := ast.NewNode(ast.Sym1(ast.TagPsi), nil, nil, []*ast.Node{
		arrayLeaf(nil, "_a1"),
		ast.NewNode(ast.Sym2(ast.TagDot, ast.TagTimes), nil, nil, []*ast.Node{arrayLeaf(nil, "A"), arrayLeaf(nil, "B")}),
	})
	ctx := shaped(t, ast.CreateContext(tree, st))

	got, err := dnf.Reduce(ctx, dnf.Options{})
	require.NoError(t, err)

	require.Equal(t, ast.TagTimes, got.AST.Symbol.Head())
	assert.True(t, got.AST.Shape.IsScalar())
}

func TestReducePsiOfReduceIntroducesFreshIterationPlaceholder(t *testing.T) {
	st := table(map[string]*ast.SymbolNode{
		"_a1": ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(1), []int64{0}, nil),
		"A":   ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(3, 4), nil, nil),
	})
	tree := ast.NewNode(ast.Sym1(ast.TagPsi), nil, nil, []*ast.Node{
		arrayLeaf(nil, "_a1"),
		ast.NewNode(ast.Sym2(ast.TagReduce, ast.TagPlus), nil, nil, []*ast.Node{arrayLeaf(nil, "A")}),
	})
	ctx := shaped(t, ast.CreateContext(tree, st))
	beforeNames := ctx.SymbolTable.Len()

	got, err := dnf.Reduce(ctx, dnf.Options{})
	require.NoError(t, err)

	require.Equal(t, ast.TagReduce, got.AST.Symbol.Head())
	assert.Greater(t, got.SymbolTable.Len(), beforeNames, "a fresh placeholder name must be introduced")
}

func TestReduceTakeStaticallyInBoundsDropsCondition(t *testing.T) {
	st := table(map[string]*ast.SymbolNode{
		"_a1": ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(1), []int64{1}, nil),
		"n":   ast.NewSymbolNode(ast.TagArray, ast.Shape{}, []int64{3}, nil),
		"A":   ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(5), nil, nil),
	})
	tree := ast.NewNode(ast.Sym1(ast.TagPsi), nil, nil, []*ast.Node{
		arrayLeaf(nil, "_a1"),
		ast.NewNode(ast.Sym1(ast.TagTake), nil, nil, []*ast.Node{arrayLeaf(nil, "n"), arrayLeaf(nil, "A")}),
	})
	ctx := shaped(t, ast.CreateContext(tree, st))

	got, err := dnf.Reduce(ctx, dnf.Options{IncludeConditions: true})
	require.NoError(t, err)
	require.Equal(t, ast.TagPsi, got.AST.Symbol.Head(), "statically in-bounds TAKE folds the condition away")
}

func TestReduceCatEmitsConditionWhenBoundaryIsSymbolic(t *testing.T) {
	st := table(map[string]*ast.SymbolNode{
		"_a1": ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(1), []int64{2}, nil),
		"A":   ast.NewSymbolNode(ast.TagArray, nil, nil, nil), // symbolic shape: boundary not concrete
		"B":   ast.NewSymbolNode(ast.TagArray, nil, nil, nil),
	})
	// Give A a single symbolic dimension so shape inference can still run:
	// a fresh shape-symbol referenced in the same table.
	symShape := ast.Shape{ast.SymbolicDim(arrayLeaf(nil, "_dimA"))}
	st = st.With("A", ast.NewSymbolNode(ast.TagArray, symShape, nil, nil))
	st = st.With("B", ast.NewSymbolNode(ast.TagArray, symShape, nil, nil))
	st = st.With("_dimA", ast.NewSymbolNode(ast.TagArray, ast.Shape{}, nil, nil))

	tree := ast.NewNode(ast.Sym1(ast.TagPsi), nil, nil, []*ast.Node{
		arrayLeaf(nil, "_a1"),
		ast.NewNode(ast.Sym1(ast.TagCat), nil, nil, []*ast.Node{arrayLeaf(nil, "A"), arrayLeaf(nil, "B")}),
	})
	ctx := shaped(t, ast.CreateContext(tree, st))

	got, err := dnf.Reduce(ctx, dnf.Options{IncludeConditions: true})
	require.NoError(t, err)
	assert.Equal(t, ast.TagCondition, got.AST.Symbol.Head())
	assert.Equal(t, ast.TagLessThan, got.AST.Child(0).Symbol.Head())
}

func TestReduceNestedPsiComposesIndices(t *testing.T) {
	st := table(map[string]*ast.SymbolNode{
		"i": ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(1), []int64{1}, nil),
		"j": ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(1), []int64{2}, nil),
		"A": ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(5, 6), nil, nil),
	})
	inner := ast.NewNode(ast.Sym1(ast.TagPsi), nil, nil, []*ast.Node{arrayLeaf(nil, "j"), arrayLeaf(nil, "A")})
	tree := ast.NewNode(ast.Sym1(ast.TagPsi), nil, nil, []*ast.Node{arrayLeaf(nil, "i"), inner})
	ctx := shaped(t, ast.CreateContext(tree, st))

	got, err := dnf.Reduce(ctx, dnf.Options{})
	require.NoError(t, err)

	require.Equal(t, ast.TagPsi, got.AST.Symbol.Head())
	require.Equal(t, ast.TagArray, got.AST.Child(1).Symbol.Head())
	assert.Equal(t, "A", got.AST.Child(1).Name())
}

func TestReduceShapeTerminalises(t *testing.T) {
	st := table(map[string]*ast.SymbolNode{
		"A": ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(3, 4), nil, nil),
	})
	tree := ast.NewNode(ast.Sym1(ast.TagShape), nil, nil, []*ast.Node{arrayLeaf(nil, "A")})
	ctx := shaped(t, ast.CreateContext(tree, st))

	got, err := dnf.Reduce(ctx, dnf.Options{})
	require.NoError(t, err)
	assert.Equal(t, ast.TagIndexVector, got.AST.Symbol.Head())
}

func TestReduceDetectsNonNormalNode(t *testing.T) {
	// A bare TRANSPOSE sitting under PLUS, never reached by any PSI, can
	// never be eliminated: this must surface as ErrDNFNoRule.
	st := table(map[string]*ast.SymbolNode{
		"A": ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(3, 4), nil, nil),
		"B": ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(4, 3), nil, nil),
	})
	tree := ast.NewNode(ast.Sym1(ast.TagPlus), nil, nil, []*ast.Node{
		ast.NewNode(ast.Sym1(ast.TagTranspose), nil, nil, []*ast.Node{arrayLeaf(nil, "B")}),
		arrayLeaf(nil, "A"),
	})
	ctx := shaped(t, ast.CreateContext(tree, st))

	_, err := dnf.Reduce(ctx, dnf.Options{})
	assert.ErrorIs(t, err, dnf.ErrDNFNoRule)
}
