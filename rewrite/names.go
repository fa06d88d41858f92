package rewrite

import (
	"strconv"

	"github.com/moa-lang/moa/ast"
)

// DefaultPrefix is the fresh-name prefix used when callers do not specify
// one, matching the source algebra's "_a" convention (spec §4.5).
const DefaultPrefix = "_a"

// GenerateUniqueName produces a name of the form "<prefix><n>" not present
// in ctx's symbol table, scanning n = 1, 2, 3, ... for the first unused
// index (spec §4.1, §4.5). The returned Context has sn already bound to
// the new name: per spec, "fresh names are introduced only by inserting a
// symbol-table entry simultaneously", so this function (unlike a bare
// name-allocator) takes the entry to install rather than leaving a
// dangling reservation.
//
// Generation is deterministic with respect to call order: the same
// sequence of calls against the same starting table always yields the
// same names, which is what makes symbol generation reproducible under a
// canonical post-order traversal (spec §4.5).
func GenerateUniqueName(ctx ast.Context, prefix string, sn *ast.SymbolNode) (string, ast.Context) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	for n := 1; ; n++ {
		name := prefix + strconv.Itoa(n)
		if !ctx.SymbolTable.Has(name) {
			newCtx := ctx.WithSymbolTable(ctx.SymbolTable.With(name, sn))
			return name, newCtx
		}
	}
}
