package dnf

import "github.com/moa-lang/moa/ast"

// checkNormal verifies spec §8 property 4: no non-leaf array-producing
// operator appears anywhere except under PSI (where, after a successful
// fix-point, it will already have been rewritten away to an ARRAY leaf) or
// as the body of a REDUCE. The tree root is exempt: the next stage (ONF)
// wraps it in a synthetic top-level PSI before continuing to push indices
// through exactly this rule set (spec §4.4 step 2), so a bare
// array-producing root is the expected shape of a finished DNF tree, not a
// defect.
func checkNormal(root *ast.Node) error {
	return checkChildren(root)
}

// checkChildren checks every child of n. The body of a REDUCE is exempt
// itself, the same way the root is, but its own children are still checked.
func checkChildren(n *ast.Node) error {
	for _, c := range n.Children {
		var err error
		if n.Symbol.Head() == ast.TagReduce && c != nil {
			err = checkChildren(c)
		} else {
			err = checkNormalNode(c)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func checkNormalNode(n *ast.Node) error {
	if n == nil {
		return nil
	}
	if isNonNormal(n) {
		return ErrDNFNoRule
	}
	return checkChildren(n)
}

func isNonNormal(n *ast.Node) bool {
	if n.Shape.Rank() < 1 {
		return false
	}
	switch n.Symbol.Head() {
	case ast.TagTranspose, ast.TagTransposeV, ast.TagPlus, ast.TagMinus, ast.TagTimes, ast.TagDivide,
		ast.TagDot, ast.TagTake, ast.TagDrop, ast.TagCat, ast.TagIota, ast.TagRav:
		return true
	default:
		return false
	}
}
