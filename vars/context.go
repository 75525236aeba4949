package vars

import (
	"strings"
)

// ResolveFunc expands $(...)-style references within text against the
// bindings visible from the context's current scope chain. Implementations
// must be re-entrant: expanding a value may perform further lookups and
// definitions on the same context.
type ResolveFunc func(c *Context, text string) string

// RunFunc executes command synchronously and returns its captured standard
// output. A non-nil error marks the invocation as failed; the != flavor
// degrades to an empty value in that case rather than propagating it.
type RunFunc func(c *Context, command string) (string, error)

// Warning classifies an advisory diagnostic raised by the engine.
type Warning int

const (
	// WarnInvalidName is raised for a definition whose name contains
	// whitespace. The definition is accepted anyway.
	WarnInvalidName Warning = iota
	// WarnInvalidRef is raised for a lookup of a name containing
	// whitespace. The lookup proceeds anyway.
	WarnInvalidRef
	// WarnUndefined is raised for a reference to an undefined variable.
	WarnUndefined
)

// WarnAction is the policy applied to one warning class.
type WarnAction int

const (
	// ActionIgnore suppresses the warning.
	ActionIgnore WarnAction = iota
	// ActionWarn reports the warning and continues.
	ActionWarn
	// ActionError reports the warning at error severity.
	ActionError
)

// WarnFunc receives advisory diagnostics. The engine never stops on a
// warning; sinks that want hard failures can act on ActionError.
type WarnFunc func(w Warning, action WarnAction, loc Location, msg string)

// DefaultShell is the shell path guaranteed by the environment projector
// when no scope supplies one.
const DefaultShell = "/bin/sh"

// DefaultRecipePrefix is the recipe introduction character until a
// .RECIPEPREFIX assignment changes it.
const DefaultRecipePrefix byte = '\t'

// Context owns all process-wide variable state: the global scope, the
// current scope chain, the pattern variable index, and the change counter,
// along with the external collaborators. Entry points are methods so that
// independent contexts never share state. A Context is not safe for
// concurrent use.
type Context struct {
	global  *Chain
	current *Chain

	patterns PatternIndex

	// changenum increments on every insert into or removal from the global
	// scope. Synthetic variables cache it to decide staleness. It is never
	// used for identity.
	changenum uint64

	// specialNum records, per synthetic variable, the changenum at which it
	// was last recomputed.
	specialNum map[string]uint64
	specials   map[string]special

	resolve ResolveFunc
	run     RunFunc
	warn    WarnFunc

	warnings map[Warning]WarnAction

	// RecipePrefix is the current recipe introduction character. A write to
	// .RECIPEPREFIX replaces it synchronously, before the next line is
	// parsed.
	RecipePrefix byte

	envOverrides  bool
	exportAll     bool
	silent        bool
	keepGoing     bool
	level         int
	defaultShell  string
	envShell      string
	jobserverAuth string
	envRecursion  int

	reading *Location
}

// Option configures a Context during construction.
type Option func(*Context)

// WithResolver sets the reference-expansion collaborator.
func WithResolver(fn ResolveFunc) Option {
	return func(c *Context) { c.resolve = fn }
}

// WithRunner sets the subprocess collaborator used by the != flavor.
func WithRunner(fn RunFunc) Option {
	return func(c *Context) { c.run = fn }
}

// WithWarningHandler sets the sink for advisory diagnostics.
func WithWarningHandler(fn WarnFunc) Option {
	return func(c *Context) { c.warn = fn }
}

// WithEnvironment imports a "KEY=VALUE" list as environment-origin
// bindings, as [Context.ImportEnvironment].
func WithEnvironment(environ []string) Option {
	return func(c *Context) { c.ImportEnvironment(environ) }
}

// WithEnvOverrides makes environment-origin bindings outrank makefile
// definitions (the -e switch).
func WithEnvOverrides(enabled bool) Option {
	return func(c *Context) { c.envOverrides = enabled }
}

// WithExportAll exports every binding with an exportable name regardless of
// origin.
func WithExportAll(enabled bool) Option {
	return func(c *Context) { c.exportAll = enabled }
}

// WithLevel sets the recursion level reported to child processes via
// MAKELEVEL.
func WithLevel(level int) Option {
	return func(c *Context) { c.level = level }
}

// WithDefaultShell overrides the fallback shell path.
func WithDefaultShell(shell string) Option {
	return func(c *Context) { c.defaultShell = shell }
}

// WithJobserverAuth records the scheduler coordination token carried in
// MAKEFLAGS, enabling the projector's invalidation bookkeeping.
func WithJobserverAuth(auth string) Option {
	return func(c *Context) { c.jobserverAuth = auth }
}

// New creates an empty evaluation context. The global scope exists but
// holds no bindings; call [Context.ImportEnvironment] and
// [Context.DefineAutomatics] to populate the conventional base state.
func New(opts ...Option) *Context {
	c := &Context{
		specialNum:   make(map[string]uint64),
		RecipePrefix: DefaultRecipePrefix,
		defaultShell: DefaultShell,
		warnings: map[Warning]WarnAction{
			WarnInvalidName: ActionWarn,
			WarnInvalidRef:  ActionWarn,
			WarnUndefined:   ActionIgnore,
		},
	}

	c.global = &Chain{set: newSet(globalScopeBuckets), global: true}
	c.current = c.global
	c.registerSpecials()

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Global returns the process-global chain node. The node is stable for the
// context's lifetime even when global-level scopes are pushed or popped.
func (c *Context) Global() *Chain {
	return c.global
}

// Current returns the current scope chain.
func (c *Context) Current() *Chain {
	return c.current
}

// Patterns returns the pattern variable index.
func (c *Context) Patterns() *PatternIndex {
	return &c.patterns
}

// ChangeCount returns the global-scope change counter.
func (c *Context) ChangeCount() uint64 {
	return c.changenum
}

// Level returns the recursion level this context reports to children.
func (c *Context) Level() int {
	return c.level
}

// EnvRecursion returns the current nesting depth of shell-function
// environment projections. It records depth for diagnostics only and does
// not bound recursion.
func (c *Context) EnvRecursion() int {
	return c.envRecursion
}

// Reading returns the location currently attributed to parse-time
// diagnostics, or the zero Location when none is installed.
func (c *Context) Reading() Location {
	if c.reading == nil {
		return Location{}
	}

	return *c.reading
}

// SetReading installs the location attributed to parse-time diagnostics.
func (c *Context) SetReading(loc Location) {
	c.reading = &loc
}

// Expand delegates to the resolver collaborator. Without one, text is
// returned unchanged.
func (c *Context) Expand(text string) string {
	if c.resolve == nil {
		return text
	}

	return c.resolve(c, text)
}

// ResolveBinding returns the binding's effective value: deferred values are
// expanded against the current chain, immediate values returned as stored.
func (c *Context) ResolveBinding(b *Binding) string {
	if b.Recursive {
		return c.Expand(b.Value)
	}

	return b.Value
}

// resolveForTarget expands a deferred value in the target's scope context.
func (c *Context) resolveForTarget(b *Binding, t *Target) string {
	if t == nil {
		return c.ResolveBinding(b)
	}

	saved := c.InstallTarget(t)
	defer c.RestoreContext(saved)

	return c.ResolveBinding(b)
}

// SetWarning installs the action taken for one warning class, as if
// assigned through the warning-control variable.
func (c *Context) SetWarning(w Warning, action WarnAction) {
	c.warnings[w] = action
}

// warnf routes one advisory diagnostic through the configured policy.
func (c *Context) warnf(w Warning, loc Location, msg string) {
	action := c.warnings[w]
	if action == ActionIgnore || c.warn == nil {
		return
	}

	c.warn(w, action, loc, msg)
}

// checkName raises an advisory diagnostic for definition names containing
// whitespace. The name is accepted regardless.
func (c *Context) checkName(name string, loc Location) {
	if !validName(name) {
		c.warnf(WarnInvalidName, loc,
			"invalid variable name '"+name+"'")
	}
}

// checkRef raises an advisory diagnostic for reference names containing
// whitespace. The lookup proceeds regardless.
func (c *Context) checkRef(name string) {
	if !validName(name) {
		c.warnf(WarnInvalidRef, c.Reading(),
			"invalid variable reference '"+name+"'")
	}
}

// Lookup finds the binding visible from the current chain, walking from the
// most specific scope to the global one. Private bindings stop matching
// once the walk crosses a parent link. Synthetic variables are recomputed
// on access when stale.
func (c *Context) Lookup(name string) *Binding {
	c.checkRef(name)

	isParent := false

	for ch := c.current; ch != nil; ch = ch.next {
		if b := ch.set.Lookup(name); b != nil && (!isParent || !b.Private) {
			if b.Special {
				return c.readSpecial(b)
			}

			return b
		}

		isParent = isParent || ch.nextIsParent
	}

	return nil
}

// LookupIn finds the binding for name in one scope set only.
func (c *Context) LookupIn(name string, set *Set) *Binding {
	c.checkRef(name)

	return set.Lookup(name)
}

// LookupForTarget finds the binding visible from the target's chain,
// temporarily installing the target's context. A nil target looks up in
// the current chain.
func (c *Context) LookupForTarget(name string, t *Target) *Binding {
	if t == nil {
		return c.Lookup(name)
	}

	saved := c.InstallTarget(t)
	defer c.RestoreContext(saved)

	return c.Lookup(name)
}

// ImportEnvironment defines every "KEY=VALUE" entry as a deferred
// environment-origin binding. The inherited SHELL value is also stashed so
// the environment projector can re-add it verbatim.
func (c *Context) ImportEnvironment(environ []string) {
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			continue
		}

		if name == ShellVar {
			c.envShell = value
		}

		c.DefineGlobal(name, value, OriginEnv, true)
	}
}

// SetEnvOverrides toggles the -e behavior after construction, re-ranking
// every environment-origin binding already defined.
func (c *Context) SetEnvOverrides(enabled bool) {
	if c.envOverrides == enabled {
		return
	}

	c.envOverrides = enabled
	c.resetEnvOverride()
}

// resetEnvOverride flips the origin of environment bindings between plain
// and force-override rank to match the current -e state.
func (c *Context) resetEnvOverride() {
	old, next := OriginEnvOverride, OriginEnv
	if c.envOverrides {
		old, next = OriginEnv, OriginEnvOverride
	}

	for _, b := range c.global.set.table {
		if b.Origin == old {
			b.Origin = next
		}
	}
}
