package ast

// Context is the (AST, symbol_table) pair that flows between passes (spec
// §3). A Context is constructed once by the frontend and then threaded,
// read-only from each pass's point of view, through shape inference, DNF
// reduction, and ONF reduction; each pass returns a fresh Context rather
// than mutating the one it was given.
type Context struct {
	AST         *Node
	SymbolTable SymbolTable
}

// CreateContext builds a Context from an ast and symbol table.
func CreateContext(ast *Node, symbolTable SymbolTable) Context {
	return Context{AST: ast, SymbolTable: symbolTable}
}

// WithAST returns a copy of c with the AST replaced.
func (c Context) WithAST(n *Node) Context {
	return Context{AST: n, SymbolTable: c.SymbolTable}
}

// WithSymbolTable returns a copy of c with the symbol table replaced.
func (c Context) WithSymbolTable(st SymbolTable) Context {
	return Context{AST: c.AST, SymbolTable: st}
}

// Clone returns a deep copy of c, used to snapshot a Context before a pass
// runs so the snapshot can later be compared against the (supposedly
// untouched) input (spec §8 property 1).
func (c Context) Clone() Context {
	return Context{AST: c.AST.Clone(), SymbolTable: c.SymbolTable.Clone()}
}

// Equal implements the equivalence relation of spec §8: two Contexts are
// equal iff their ASTs are structurally identical and their symbol tables
// are equal as mappings. go-cmp picks this up automatically via its
// "Equal method" convention, so a.Equal(b) and cmp.Equal(a, b) agree.
func (c Context) Equal(o Context) bool {
	return c.AST.Equal(o.AST) && c.SymbolTable.Equal(o.SymbolTable)
}
