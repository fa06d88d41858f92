package moa

import tally "github.com/uber-go/tally/v4"

// compileConfig holds the fields CompileOption functions mutate before
// Compile runs, mirroring core's GraphOption/NewGraph functional-options
// shape.
type compileConfig struct {
	includeConditions  bool
	materializeScalars bool
	stats              tally.Scope
}

// CompileOption configures a Compile call.
type CompileOption func(*compileConfig)

func defaultConfig() *compileConfig {
	return &compileConfig{
		// The original system defaults to emitting bounds-check branches
		// (spec's supplemented-features note on include_conditions); callers
		// opt out explicitly via WithConditions(false).
		includeConditions: true,
		stats:             tally.NoopScope,
	}
}

// WithConditions controls whether CAT/TAKE boundary guards survive DNF and
// ONF as CONDITION nodes (include=true) or are collapsed to their in-range
// branch (include=false).
func WithConditions(include bool) CompileOption {
	return func(c *compileConfig) { c.includeConditions = include }
}

// WithMaterializeScalars hoists every intermediate scalar expression ONF
// produces into its own named buffer, so a Backend never has to special-
// case an arithmetic sub-tree.
func WithMaterializeScalars(materialize bool) CompileOption {
	return func(c *compileConfig) { c.materializeScalars = materialize }
}

// WithMetrics reports per-pass counters to stats, the same tally.Scope
// injection session.Repository uses for its active_connections gauge.
func WithMetrics(stats tally.Scope) CompileOption {
	return func(c *compileConfig) {
		if stats != nil {
			c.stats = stats
		}
	}
}

func (c *compileConfig) countPass(name string) {
	c.stats.Counter(name + "_passes").Inc(1)
}
