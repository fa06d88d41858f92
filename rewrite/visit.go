package rewrite

import "github.com/moa-lang/moa/ast"

// Visitor is a pure function from a context and a node whose children have
// already been rewritten to a (possibly updated) context and node. Passes
// implement shape inference, DNF rules, and ONF lowering as Visitors.
type Visitor func(ctx ast.Context, node *ast.Node) (ast.Context, *ast.Node, error)

// Visit walks node in post order — children visited exactly once,
// left-to-right, before their parent — threading ctx through so a Visitor
// can introduce fresh symbol-table entries as it goes (spec §4.1).
//
// Unchanged sub-trees are returned by the same pointer rather than copied,
// so repeated Visit passes over already-normal sub-trees are cheap and
// share structure with their input (spec §5: passes are free to share
// unchanged sub-trees via persistent data structures).
func Visit(ctx ast.Context, node *ast.Node, visitor Visitor) (ast.Context, *ast.Node, error) {
	if node == nil {
		return ctx, nil, nil
	}

	var newChildren []*ast.Node
	changed := false
	if len(node.Children) > 0 {
		newChildren = make([]*ast.Node, len(node.Children))
		for i, child := range node.Children {
			var newChild *ast.Node
			var err error
			ctx, newChild, err = Visit(ctx, child, visitor)
			if err != nil {
				return ctx, nil, err
			}
			newChildren[i] = newChild
			if newChild != child {
				changed = true
			}
		}
	}

	rebuilt := node
	if changed {
		rebuilt = node.WithChildren(newChildren...)
	}

	return visitor(ctx, rebuilt)
}

// VisitContext is sugar for Visit over ctx.AST, returning the updated
// Context with its AST replaced by the rewritten root.
func VisitContext(ctx ast.Context, visitor Visitor) (ast.Context, error) {
	newCtx, newRoot, err := Visit(ctx, ctx.AST, visitor)
	if err != nil {
		return ctx, err
	}
	return newCtx.WithAST(newRoot), nil
}
