package vars

// Target carries the per-target scoping state the engine maintains for one
// build target. The dependency graph itself lives elsewhere; the engine
// only needs the name, the scope links, and the recipe location for
// diagnostics attribution.
type Target struct {
	Name string

	// DoubleColon points at the canonical first rule-body of a double-colon
	// group. All bodies of the group share the canonical body's scopes.
	DoubleColon *Target

	// Parent is the lexical parent target whose scope chain this target
	// inherits, if any.
	Parent *Target

	// Loc is the recipe location installed for diagnostics attribution.
	Loc Location

	variables    *Chain
	patVariables *Chain
	patSearched  bool
}

// Scope returns the target's scope chain, or nil before initialization.
func (t *Target) Scope() *Chain {
	return t.variables
}

// PatternScope returns the pattern-match scope materialized for the target,
// or nil if none was needed.
func (t *Target) PatternScope() *Chain {
	return t.patVariables
}
