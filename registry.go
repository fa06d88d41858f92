package moa

// registry maps a backend name to the Backend that handles it. Backends
// register themselves from an init function, the same way database/sql
// drivers register via sql.Register; registration happens once at program
// start-up, never during a Compile call, so it needs no lock of its own —
// consistent with spec §5's "no shared mutable state" framing for the
// compile pipeline itself.
var registry = map[string]Backend{}

// RegisterBackend makes b available to Compile under name. Re-registering
// the same name replaces the previous backend.
func RegisterBackend(name string, b Backend) {
	registry[name] = b
}

func lookupBackend(name string) (Backend, bool) {
	b, ok := registry[name]
	return b, ok
}
