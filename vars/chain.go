package vars

// Chain is one node in a scope set-list: an ordered visibility path from a
// most-specific scope down to the process-global scope. Every chain,
// followed via successors, terminates at the context's single global node.
type Chain struct {
	set  *Set
	next *Chain

	// nextIsParent distinguishes a lexical parent link from an explicitly
	// stacked scope. Private bindings stop being visible once a lookup has
	// crossed a parent link.
	nextIsParent bool

	// global tags the process-global node. The tag, not pointer identity,
	// decides "is this the global scope": the global node's set contents
	// are swapped in place when a global-level scope is pushed, so holders
	// of the node reference must keep working across the swap.
	global bool
}

// Set returns the scope set this node references.
func (ch *Chain) Set() *Set {
	return ch.set
}

// Next returns the successor node, or nil at the end of the chain.
func (ch *Chain) Next() *Chain {
	return ch.next
}

// NextIsParent reports whether the successor is the lexical parent scope
// rather than an explicitly stacked one.
func (ch *Chain) NextIsParent() bool {
	return ch.nextIsParent
}

// IsGlobal reports whether this node is the process-global scope.
func (ch *Chain) IsGlobal() bool {
	return ch.global
}

// newScope creates a fresh small scope chained in front of the current one,
// without making it current.
func (c *Context) newScope() *Chain {
	return &Chain{
		set:  newSet(smallScopeBuckets),
		next: c.current,
	}
}

// PushScope creates a new scope and makes it current.
//
// Chains built for targets link directly to the global node, so pushing a
// new scope at the global level cannot insert a node in front of it without
// invalidating every one of those links. Instead the new node and the
// global node swap set contents: the global node keeps its identity but
// holds the fresh (empty) set, and the displaced contents become the next
// node behind it.
func (c *Context) PushScope() *Chain {
	c.current = c.newScope()

	if c.current.next.IsGlobal() {
		displaced := c.current

		displaced.set, c.global.set = c.global.set, displaced.set
		displaced.next = c.global.next
		c.global.next = displaced
		c.current = c.global
	}

	return c.current
}

// PopScope removes the scope pushed most recently and frees its bindings.
// Popping a chain with no successor is a contract violation and panics.
func (c *Context) PopScope() {
	if c.current.next == nil {
		panic("vars: pop of root scope")
	}

	if !c.current.global {
		c.current = c.current.next

		return
	}

	// The current scope lives in the global node. Hoist the displaced set
	// behind it back into the node and discard the node that carried it,
	// so references to the global node stay valid.
	displaced := c.global.next
	c.global.set = displaced.set
	c.global.next = displaced.next
	c.global.nextIsParent = displaced.nextIsParent
}

// SavedContext captures the state replaced by [Context.InstallTarget] so
// the caller can restore it on every exit path.
type SavedContext struct {
	chain *Chain
	loc   *Location
}

// InstallTarget redirects the current chain to the target's scope so that
// lookups, definitions, and diagnostics are attributed to it. The returned
// state must be handed back to [Context.RestoreContext], typically via
// defer.
func (c *Context) InstallTarget(t *Target) SavedContext {
	if t.variables == nil {
		c.InitializeTarget(t, true)
	}

	saved := SavedContext{chain: c.current, loc: c.reading}

	c.current = t.variables

	if t.Loc.IsZero() {
		c.reading = nil
	} else {
		loc := t.Loc
		c.reading = &loc
	}

	return saved
}

// RestoreContext undoes a prior InstallTarget.
func (c *Context) RestoreContext(saved SavedContext) {
	c.current = saved.chain
	c.reading = saved.loc
}

// MergeScopes absorbs the bindings of the from chain into the to chain,
// set by set, preferring the receiver's binding on a name collision and
// discarding the loser. It returns the head of the merged chain (from, when
// to is nil). Both chains must terminate at this context's global node.
func (c *Context) MergeScopes(to, from *Chain) *Chain {
	if from == nil || from.global {
		return to
	}

	if to == nil {
		return from
	}

	// If from is already a tail of to there is nothing to absorb.
	for ch := to; !ch.global; ch = ch.next {
		if ch == from {
			return to
		}
	}

	head := to
	var last *Chain

	for !from.global && !to.global {
		next := from.next
		c.mergeSets(to.set, from.set)

		from = next
		last = to
		to = to.next
	}

	if !from.global {
		if last == nil {
			head = from
		} else {
			last.next = from
		}
	}

	return head
}

// mergeSets moves bindings absent from dst out of src, keeping dst's
// binding on collision.
func (c *Context) mergeSets(dst, src *Set) {
	isGlobal := dst == c.global.set

	for _, b := range src.table {
		if dst.Lookup(b.Name) != nil {
			continue
		}

		dst.insert(b)

		if isGlobal {
			c.changenum++
		}
	}
}

// InitializeTarget builds the target's scope chain. The successor is the
// canonical sibling's chain when the target is one body of a double-colon
// group, else the lexical parent target's chain, else the global chain.
//
// When parsing is false the pattern variable index is consulted once per
// target: every matching template is cloned into a private pattern scope
// spliced in ahead of the parent link. During the initial parse the search
// is suppressed, since pattern variables may not all be defined yet.
func (c *Context) InitializeTarget(t *Target, parsing bool) {
	l := t.variables
	if l == nil {
		l = &Chain{set: newSet(targetScopeBuckets)}
		t.variables = l
	}

	// One body of a double-colon group: alias the canonical body's chain.
	// It has the same name and parent, so its scopes serve directly.
	if t.DoubleColon != nil && t.DoubleColon != t {
		c.InitializeTarget(t.DoubleColon, parsing)

		l.next = t.DoubleColon.variables
		l.nextIsParent = false

		return
	}

	if t.Parent == nil {
		l.next = c.global
	} else {
		c.InitializeTarget(t.Parent, parsing)
		l.next = t.Parent.variables
	}

	l.nextIsParent = true

	if !parsing && !t.patSearched {
		if p := c.patterns.Match(nil, t.Name); p != nil {
			saved := c.current

			t.patVariables = c.newScope()
			c.current = t.patVariables

			for ; p != nil; p = c.patterns.Match(p, t.Name) {
				var b *Binding

				if p.Flavor == FlavorSimple {
					b = c.Define(p.Binding.Name, p.Binding.Value,
						p.Binding.Origin, false)
				} else {
					b = c.assign(p.Binding.Loc, p.Binding.Name,
						p.Binding.Value, p.Binding.Origin, p.Flavor,
						p.Binding.Conditional, ScopePattern)
				}

				b.PerTarget = p.Binding.PerTarget
				b.Export = p.Binding.Export
				b.Private = p.Binding.Private
			}

			c.current = saved
		}

		t.patSearched = true
	}

	if t.patVariables != nil {
		t.patVariables.next = l.next
		t.patVariables.nextIsParent = l.nextIsParent
		l.next = t.patVariables
		l.nextIsParent = false
	}
}
