package onf

import (
	"github.com/moa-lang/moa/ast"
	"github.com/moa-lang/moa/dnf"
	"github.com/moa-lang/moa/rewrite"
)

// Reduce lowers a DNF-reduced Context into ONF (spec §4.4). ctx is not
// mutated. opts.IncludeConditions is passed on to the second PSI-pushing
// pass (reusing dnf.Reduce) and also controls ONF's own condition
// stripping; opts.MaterializeScalars controls scalar hoisting.
func Reduce(ctx ast.Context, opts Options) (ast.Context, error) {
	root := ctx.AST
	rank := root.Shape.Rank()

	names := make([]string, rank)
	cur := ctx
	for i := 0; i < rank; i++ {
		var name string
		name, cur = rewrite.GenerateUniqueName(cur, rewrite.DefaultPrefix, ast.NewSymbolNode(ast.TagArray, ast.Shape{}, nil, nil))
		names[i] = name
	}

	indices := make([]ast.Dim, rank)
	for i, name := range names {
		leaf := ast.NewNode(ast.Sym1(ast.TagArray), ast.Shape{}, []string{name}, nil)
		indices[i] = ast.SymbolicDim(leaf)
	}

	// Step 2: wrap the DNF root in a PSI over the synthesised indices and
	// push it through with the same rule set DNF uses. dnf's own normality
	// check exempts the tree root for exactly this reason: a bare
	// array-producing DNF root is expected here, to be indexed fully now.
	wrapped := ast.NewNode(ast.Sym1(ast.TagPsi), ast.Shape{}, nil, []*ast.Node{rewrite.IndexNode(indices), root})
	wrappedCtx := cur.WithAST(wrapped)

	reducedCtx, err := dnf.Reduce(wrappedCtx, dnf.Options{IncludeConditions: opts.IncludeConditions})
	if err != nil {
		return ctx, err
	}
	body := reducedCtx.AST
	workingCtx := reducedCtx

	// Step 5: collapse CONDITION nodes when conditions are disabled.
	if !opts.IncludeConditions {
		body = stripConditions(body)
	}

	// Step 4: lower any surviving (REDUCE, op) into an accumulator loop.
	var reduceStmts []*ast.Node
	workingCtx, body, reduceStmts, err = lowerReductions(workingCtx, body)
	if err != nil {
		return ctx, ast.Fault(err, body, workingCtx.SymbolTable)
	}

	// Step 6: optionally hoist every remaining intermediate scalar
	// expression into its own buffer.
	var scalarStmts []*ast.Node
	if opts.MaterializeScalars {
		workingCtx, body, scalarStmts = materializeScalars(workingCtx, body)
	}

	outName, workingCtx := rewrite.GenerateUniqueName(workingCtx, rewrite.DefaultPrefix, ast.NewSymbolNode(ast.TagArray, root.Shape, nil, nil))
	outRef := outputRef(outName, root.Shape, indices)
	finalAssign := ast.NewNode(ast.Sym1(ast.TagAssign), root.Shape, nil, []*ast.Node{outRef, body})

	stmts := make([]*ast.Node, 0, len(reduceStmts)+len(scalarStmts)+1)
	stmts = append(stmts, reduceStmts...)
	stmts = append(stmts, scalarStmts...)
	stmts = append(stmts, finalAssign)

	// Step 3: innermost loop iterates the last axis (row-major; locality).
	var program []*ast.Node
	if rank == 0 {
		program = stmts
	} else {
		program = []*ast.Node{wrapLoops(names, root.Shape, stmts)}
	}

	initOutput := ast.NewNode(ast.Sym1(ast.TagInitialise), root.Shape, []string{outName}, nil)
	fn := ast.NewNode(ast.Sym1(ast.TagFunction), root.Shape, []string{outName}, append([]*ast.Node{initOutput}, program...))

	finalCtx := workingCtx.WithAST(fn)
	if err := checkComplete(finalCtx.AST); err != nil {
		return ctx, ast.Fault(err, finalCtx.AST, finalCtx.SymbolTable)
	}
	return finalCtx, nil
}

func scalarDimNode(d ast.Dim) *ast.Node {
	return rewrite.IndexNode([]ast.Dim{d}).Children[0]
}

// outputRef builds the "output[i...]" lvalue of spec §4.4 step 3: a plain
// buffer reference for a scalar program, a PSI read otherwise.
func outputRef(name string, shape ast.Shape, indices []ast.Dim) *ast.Node {
	if len(indices) == 0 {
		return ast.NewNode(ast.Sym1(ast.TagArray), ast.Shape{}, []string{name}, nil)
	}
	buf := ast.NewNode(ast.Sym1(ast.TagArray), shape, []string{name}, nil)
	return ast.NewNode(ast.Sym1(ast.TagPsi), ast.Shape{}, nil, []*ast.Node{rewrite.IndexNode(indices), buf})
}

// wrapLoops nests one LOOP per axis, innermost last (spec §4.4 step 3).
// Each LOOP's children are [lo, hi, body statements...]; LOOP's arity is
// unconstrained in ast.Validate (imperative constructs are validated here,
// not by the shared arity table).
func wrapLoops(names []string, shape ast.Shape, body []*ast.Node) *ast.Node {
	cur := body
	for i := len(names) - 1; i >= 0; i-- {
		lo := scalarDimNode(ast.ConcreteDim(0))
		hi := scalarDimNode(shape[i])
		children := append([]*ast.Node{lo, hi}, cur...)
		loop := ast.NewNode(ast.Sym1(ast.TagLoop), ast.Shape{}, []string{names[i]}, children)
		cur = []*ast.Node{loop}
	}
	return cur[0]
}

// stripConditions collapses every CONDITION node to its then branch,
// matching dnf's "smaller code, undefined behaviour on out-of-bounds
// indices" framing for include_conditions=false (spec §4.4 step 5).
func stripConditions(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	if n.Symbol.Head() == ast.TagCondition {
		return stripConditions(n.Child(1))
	}
	if len(n.Children) == 0 {
		return n
	}
	children := make([]*ast.Node, len(n.Children))
	changed := false
	for i, c := range n.Children {
		nc := stripConditions(c)
		children[i] = nc
		if nc != c {
			changed = true
		}
	}
	if !changed {
		return n
	}
	return n.WithChildren(children...)
}

// lowerReductions walks n bottom-up, replacing every surviving
// (REDUCE, op) node with a reference to a fresh accumulator buffer and
// collecting the INITIALISE/LOOP statement pair that computes it. Nested
// reductions lower innermost-first, so an outer reduction's body already
// reads a plain buffer reference by the time it is processed.
func lowerReductions(ctx ast.Context, n *ast.Node) (ast.Context, *ast.Node, []*ast.Node, error) {
	if n == nil {
		return ctx, nil, nil, nil
	}

	var stmts []*ast.Node
	newChildren := make([]*ast.Node, len(n.Children))
	changed := false
	for i, c := range n.Children {
		var cs []*ast.Node
		var nc *ast.Node
		var err error
		ctx, nc, cs, err = lowerReductions(ctx, c)
		if err != nil {
			return ctx, nil, nil, err
		}
		newChildren[i] = nc
		stmts = append(stmts, cs...)
		if nc != c {
			changed = true
		}
	}
	rebuilt := n
	if changed {
		rebuilt = n.WithChildren(newChildren...)
	}

	if rebuilt.Symbol.IsParametric() && rebuilt.Symbol.Head() == ast.TagReduce {
		newCtx, ref, accStmts, err := lowerReduceNode(ctx, rebuilt)
		if err != nil {
			return ctx, nil, nil, err
		}
		return newCtx, ref, append(stmts, accStmts...), nil
	}
	return ctx, rebuilt, stmts, nil
}

func lowerReduceNode(ctx ast.Context, n *ast.Node) (ast.Context, *ast.Node, []*ast.Node, error) {
	kName := n.Name()
	sn, found := ctx.SymbolTable.Get(kName)
	if !found || sn.Shape.Rank() != 1 {
		return ctx, nil, nil, ErrONFIncomplete
	}
	bound := sn.Shape[0]

	identity, err := identityOf(n.Symbol.Op())
	if err != nil {
		return ctx, nil, nil, err
	}

	accName, newCtx := rewrite.GenerateUniqueName(ctx, rewrite.DefaultPrefix, ast.NewSymbolNode(ast.TagArray, ast.Shape{}, nil, nil))
	accRef := ast.NewNode(ast.Sym1(ast.TagArray), ast.Shape{}, []string{accName}, nil)

	init := ast.NewNode(ast.Sym1(ast.TagInitialise), ast.Shape{}, []string{accName}, []*ast.Node{scalarDimNode(ast.ConcreteDim(identity))})

	body := n.Child(0)
	update := ast.NewNode(ast.Sym1(n.Symbol.Op()), ast.Shape{}, nil, []*ast.Node{accRef, body})
	assign := ast.NewNode(ast.Sym1(ast.TagAssign), ast.Shape{}, nil, []*ast.Node{accRef, update})

	lo := scalarDimNode(ast.ConcreteDim(0))
	hi := scalarDimNode(bound)
	loop := ast.NewNode(ast.Sym1(ast.TagLoop), ast.Shape{}, []string{kName}, []*ast.Node{lo, hi, assign})

	return newCtx, accRef, []*ast.Node{init, loop}, nil
}

func identityOf(op ast.Tag) (int64, error) {
	switch op {
	case ast.TagPlus:
		return 0, nil
	case ast.TagTimes:
		return 1, nil
	default:
		return 0, ErrNoReduceIdentity
	}
}

// materializeScalars walks n bottom-up and replaces every non-leaf scalar
// expression with a reference to a fresh buffer, emitting the
// INITIALISE/ASSIGN pair that computes it (spec §4.4 step 6). A PSI or
// ARRAY node already satisfies spec §8 property 5 and is left alone.
func materializeScalars(ctx ast.Context, n *ast.Node) (ast.Context, *ast.Node, []*ast.Node) {
	if n == nil || isCompleteLeaf(n) {
		return ctx, n, nil
	}

	var stmts []*ast.Node
	newChildren := make([]*ast.Node, len(n.Children))
	for i, c := range n.Children {
		var cs []*ast.Node
		ctx, newChildren[i], cs = materializeScalars(ctx, c)
		stmts = append(stmts, cs...)
	}
	rebuilt := n.WithChildren(newChildren...)

	name, newCtx := rewrite.GenerateUniqueName(ctx, rewrite.DefaultPrefix, ast.NewSymbolNode(ast.TagArray, ast.Shape{}, nil, nil))
	ref := ast.NewNode(ast.Sym1(ast.TagArray), ast.Shape{}, []string{name}, nil)
	init := ast.NewNode(ast.Sym1(ast.TagInitialise), ast.Shape{}, []string{name}, nil)
	assign := ast.NewNode(ast.Sym1(ast.TagAssign), ast.Shape{}, nil, []*ast.Node{ref, rebuilt})
	stmts = append(stmts, init, assign)
	return newCtx, ref, stmts
}

func isCompleteLeaf(n *ast.Node) bool {
	switch n.Symbol.Head() {
	case ast.TagArray, ast.TagPsi, ast.TagIndexVector:
		return true
	default:
		return false
	}
}

// checkComplete checks the PSI part of spec §8 property 5: every PSI in the
// tree reads directly from a plain ARRAY. Other leaves are not inspected.
func checkComplete(n *ast.Node) error {
	if n == nil {
		return nil
	}
	if n.Symbol.Head() == ast.TagPsi {
		target := n.Child(1)
		if target == nil || target.Symbol.Head() != ast.TagArray {
			return ErrONFIncomplete
		}
		return nil
	}
	for _, c := range n.Children {
		if err := checkComplete(c); err != nil {
			return err
		}
	}
	return nil
}
