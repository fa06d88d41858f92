package ast

// Dim is one axis extent of a Shape: either a concrete non-negative integer
// or a symbolic sub-tree rooted at a Node (per the design note in spec §9,
// "Dim = Concrete(u64) | Symbolic(Node)"). Arithmetic on Dims (see package
// rewrite) folds when both operands are concrete and otherwise builds a
// PLUS/MINUS/TIMES sub-tree.
type Dim struct {
	concrete   int64
	symbolic   *Node
	isSymbolic bool
}

// ConcreteDim builds a Dim from a known integer extent.
func ConcreteDim(n int64) Dim { return Dim{concrete: n} }

// SymbolicDim builds a Dim whose extent is not yet known and is carried as
// a sub-tree, e.g. a fresh shape-symbol or an arithmetic expression over
// other Dims.
func SymbolicDim(n *Node) Dim { return Dim{symbolic: n, isSymbolic: true} }

// IsSymbolic reports whether this Dim is carried as a sub-tree rather than
// a known integer.
func (d Dim) IsSymbolic() bool { return d.isSymbolic }

// Int returns the concrete extent. Callers must check IsSymbolic first;
// calling Int on a symbolic Dim returns zero.
func (d Dim) Int() int64 { return d.concrete }

// Node returns the symbolic sub-tree. Callers must check IsSymbolic first;
// calling Node on a concrete Dim returns nil.
func (d Dim) Node() *Node { return d.symbolic }

// Equal reports value equality of two Dims, consulted automatically by
// go-cmp via its "Equal method" convention.
func (d Dim) Equal(o Dim) bool {
	if d.isSymbolic != o.isSymbolic {
		return false
	}
	if !d.isSymbolic {
		return d.concrete == o.concrete
	}
	return d.symbolic.Equal(o.symbolic)
}

// Shape is the result shape of a Node: an ordered sequence of Dims, or nil
// before shape inference has run ("None" in spec terms).
type Shape []Dim

// Rank is the number of axes (0 for scalars).
func (s Shape) Rank() int { return len(s) }

// IsScalar reports whether s denotes a rank-0 (scalar) shape. Promoted from
// the original implementation's is_scalar predicate (original_source
// tests/test_shape.py).
func (s Shape) IsScalar() bool { return len(s) == 0 }

// IsVector reports whether s denotes a rank-1 shape. Promoted from the
// original implementation's is_vector predicate.
func (s Shape) IsVector() bool { return len(s) == 1 }

// Concrete reports whether every Dim in the shape is a known integer, and
// if so returns the plain []int64 extents.
func (s Shape) Concrete() ([]int64, bool) {
	out := make([]int64, len(s))
	for i, d := range s {
		if d.IsSymbolic() {
			return nil, false
		}
		out[i] = d.Int()
	}
	return out, true
}

// Reverse returns a new Shape with axes in reverse order (used by TRANSPOSE).
func (s Shape) Reverse() Shape {
	out := make(Shape, len(s))
	for i, d := range s {
		out[len(s)-1-i] = d
	}
	return out
}

// Concat returns a new Shape with the axes of o appended after s (used by
// the (DOT, op) outer-product rule and CAT's trailing-dimension assembly).
func (s Shape) Concat(o Shape) Shape {
	out := make(Shape, 0, len(s)+len(o))
	out = append(out, s...)
	out = append(out, o...)
	return out
}

// ConcreteShape is a convenience constructor for a Shape made entirely of
// known integer extents.
func ConcreteShape(dims ...int64) Shape {
	out := make(Shape, len(dims))
	for i, n := range dims {
		out[i] = ConcreteDim(n)
	}
	return out
}

// Equal reports structural equality of two Shapes (nil and empty are
// distinct, matching the spec's "None" vs "()" distinction).
func (s Shape) Equal(o Shape) bool {
	if (s == nil) != (o == nil) {
		return false
	}
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}
	return true
}
