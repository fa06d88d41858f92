package ast

// SymbolTable is an insertion-ordered mapping from name to *SymbolNode. The
// design notes (spec §9) call out deterministic iteration as a testability
// requirement: fresh-name generation (package rewrite) depends on being able
// to answer "is _aN taken" without caring about iteration order itself, but
// other consumers (e.g. a future emitter enumerating declarations) need a
// stable, reproducible order — insertion order, same as the order names
// were introduced by the frontend or by a rewrite pass.
//
// SymbolTable is treated as an immutable value by every pass: With returns
// a new table rather than mutating the receiver, matching the "append-
// mostly... never mutate existing entries" rule of spec §3.
type SymbolTable struct {
	order   []string
	entries map[string]*SymbolNode
}

// NewSymbolTable builds an empty SymbolTable.
func NewSymbolTable() SymbolTable {
	return SymbolTable{entries: make(map[string]*SymbolNode)}
}

// SymbolTableOf builds a SymbolTable from a name->SymbolNode map, assigning
// insertion order by sorting names lexicographically. Use this only for
// constructing a table from frontend input where no prior order exists;
// rewrite passes that add entries one at a time should use With, which
// preserves true insertion order.
func SymbolTableOf(m map[string]*SymbolNode) SymbolTable {
	st := NewSymbolTable()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sortStrings(names)
	for _, name := range names {
		st = st.With(name, m[name])
	}
	return st
}

func sortStrings(s []string) {
	// Simple insertion sort: symbol tables are small (a handful of
	// frontend-declared arrays), so this avoids pulling in sort for a
	// one-shot, rarely-hot path while keeping the result deterministic.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// Get returns the entry for name and whether it was present.
func (st SymbolTable) Get(name string) (*SymbolNode, bool) {
	sn, ok := st.entries[name]
	return sn, ok
}

// Has reports whether name is present in the table.
func (st SymbolTable) Has(name string) bool {
	_, ok := st.entries[name]
	return ok
}

// Len returns the number of entries.
func (st SymbolTable) Len() int { return len(st.order) }

// Names returns the entry names in insertion order. The returned slice is
// owned by the caller.
func (st SymbolTable) Names() []string {
	out := make([]string, len(st.order))
	copy(out, st.order)
	return out
}

// With returns a new SymbolTable with name bound to sn. If name already
// exists its value is replaced in place (order unchanged); otherwise name
// is appended to the insertion order. The receiver is left untouched.
func (st SymbolTable) With(name string, sn *SymbolNode) SymbolTable {
	entries := make(map[string]*SymbolNode, len(st.entries)+1)
	for k, v := range st.entries {
		entries[k] = v
	}
	_, existed := entries[name]
	entries[name] = sn

	var order []string
	if existed {
		order = append([]string(nil), st.order...)
	} else {
		order = make([]string, len(st.order)+1)
		copy(order, st.order)
		order[len(st.order)] = name
	}
	return SymbolTable{order: order, entries: entries}
}

// Clone returns a deep copy, used to snapshot a Context before a pass runs
// (spec §8 property 1, immutability).
func (st SymbolTable) Clone() SymbolTable {
	entries := make(map[string]*SymbolNode, len(st.entries))
	for k, v := range st.entries {
		entries[k] = v.Clone()
	}
	return SymbolTable{order: append([]string(nil), st.order...), entries: entries}
}

// Equal reports whether two SymbolTables hold the same mapping. Iteration
// order is not part of the equivalence relation in spec §8 ("symbol tables
// are equal as mappings"), so this compares contents, not order.
func (st SymbolTable) Equal(o SymbolTable) bool {
	if len(st.entries) != len(o.entries) {
		return false
	}
	for name, sn := range st.entries {
		osn, ok := o.entries[name]
		if !ok || !sn.Equal(osn) {
			return false
		}
	}
	return true
}
