package moa_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/moa-lang/moa"
	"github.com/moa-lang/moa/ast"
	"github.com/moa-lang/moa/internal/backendmock"
)

func arrayLeaf(name string) *ast.Node {
	return ast.NewNode(ast.Sym1(ast.TagArray), nil, []string{name}, nil)
}

func TestCompileRunsPipelineAndInvokesBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := backendmock.New(ctrl)
	mock.EXPECT().Emit(gomock.Any()).Return("emitted", nil)
	moa.RegisterBackend("compiler-test-backend", mock)

	st := ast.SymbolTableOf(map[string]*ast.SymbolNode{
		"A": ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(3), nil, nil),
		"B": ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(3), nil, nil),
	})
	tree := ast.NewNode(ast.Sym1(ast.TagPlus), nil, nil, []*ast.Node{arrayLeaf("A"), arrayLeaf("B")})
	ctx := ast.CreateContext(tree, st)

	out, err := moa.Compile(ctx, "compiler-test-backend")
	require.NoError(t, err)
	assert.Equal(t, "emitted", out)
}

func TestCompileUnknownBackend(t *testing.T) {
	st := ast.SymbolTableOf(map[string]*ast.SymbolNode{
		"A": ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(3), nil, nil),
	})
	ctx := ast.CreateContext(arrayLeaf("A"), st)

	_, err := moa.Compile(ctx, "no-such-backend")
	require.Error(t, err)
	assert.True(t, errors.Is(err, moa.ErrUnknownBackend))
}

func TestCompilePropagatesBackendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := backendmock.New(ctrl)
	emitErr := errors.New("backend blew up")
	mock.EXPECT().Emit(gomock.Any()).Return("", emitErr)
	moa.RegisterBackend("compiler-test-backend-err", mock)

	st := ast.SymbolTableOf(map[string]*ast.SymbolNode{
		"A": ast.NewSymbolNode(ast.TagArray, ast.ConcreteShape(3), nil, nil),
	})
	ctx := ast.CreateContext(arrayLeaf("A"), st)

	_, err := moa.Compile(ctx, "compiler-test-backend-err")
	require.Error(t, err)
	assert.True(t, errors.Is(err, emitErr))
}

func TestCompileWithConditionsFalseDisablesConditionsThroughToONF(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := backendmock.New(ctrl)
	mock.EXPECT().Emit(gomock.Any()).DoAndReturn(func(ctx ast.Context) (string, error) {
		assert.Equal(t, 0, countTag(ctx.AST, ast.TagCondition))
		return "ok", nil
	})
	moa.RegisterBackend("compiler-test-backend-nocond", mock)

	symShape := ast.Shape{ast.SymbolicDim(arrayLeaf("_dimA"))}
	st := ast.SymbolTableOf(map[string]*ast.SymbolNode{
		"A":     ast.NewSymbolNode(ast.TagArray, symShape, nil, nil),
		"B":     ast.NewSymbolNode(ast.TagArray, symShape, nil, nil),
		"_dimA": ast.NewSymbolNode(ast.TagArray, ast.Shape{}, nil, nil),
	})
	tree := ast.NewNode(ast.Sym1(ast.TagCat), nil, nil, []*ast.Node{arrayLeaf("A"), arrayLeaf("B")})
	ctx := ast.CreateContext(tree, st)

	_, err := moa.Compile(ctx, "compiler-test-backend-nocond", moa.WithConditions(false))
	require.NoError(t, err)
}

func countTag(n *ast.Node, tag ast.Tag) int {
	if n == nil {
		return 0
	}
	count := 0
	if n.Symbol.Head() == tag {
		count++
	}
	for _, c := range n.Children {
		count += countTag(c, tag)
	}
	return count
}
