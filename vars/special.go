package vars

import (
	"strings"
)

// Names the engine gives synthetic behavior: reads recompute, writes take
// effect immediately as process state.
const (
	// VariableNamesVar enumerates every name defined in the global scope.
	VariableNamesVar = ".VARIABLES"
	// RecipePrefixVar holds the recipe introduction character.
	RecipePrefixVar = ".RECIPEPREFIX"
	// WarningsVar holds the diagnostics policy.
	WarningsVar = ".WARNINGS"
	// FlagsVar propagates option flags to child processes.
	FlagsVar = "MAKEFLAGS"
	// FlagsAliasVar is the historical short alias of FlagsVar.
	FlagsAliasVar = "MFLAGS"
	// LevelVar carries the recursion depth to child processes.
	LevelVar = "MAKELEVEL"
	// ShellVar names the shell guaranteed by the environment projector.
	ShellVar = "SHELL"
)

// flagsOverrideSep separates option flags from trailing variable overrides
// inside the flags-propagation value.
const flagsOverrideSep = " -- "

// special is one entry in the synthetic-variable dispatch table. A nil
// hook means the variable has no behavior on that path.
type special struct {
	read  func(*Context, *Binding) *Binding
	write func(*Context, *Binding, Origin)
}

func (c *Context) registerSpecials() {
	c.specials = map[string]special{
		VariableNamesVar: {read: readVariableNames},
		RecipePrefixVar:  {write: writeRecipePrefix},
		WarningsVar:      {write: writeWarnings},
		FlagsVar:         {write: writeFlags},
	}
}

func (c *Context) isSpecial(name string) bool {
	_, ok := c.specials[name]

	return ok
}

// readSpecial recomputes a stale synthetic variable on access.
func (c *Context) readSpecial(b *Binding) *Binding {
	if sp, ok := c.specials[b.Name]; ok && sp.read != nil {
		return sp.read(c, b)
	}

	return b
}

// writeSpecial applies the side effects of writing a synthetic variable.
func (c *Context) writeSpecial(b *Binding, origin Origin) *Binding {
	if sp, ok := c.specials[b.Name]; ok && sp.write != nil {
		sp.write(c, b, origin)
	}

	return b
}

// nameListIncrement rounds buffer growth for the name enumeration so the
// buffer reallocates a bounded number of times rather than once per name.
func nameListIncrement(n int) int {
	return (n/500 + 1) * 500
}

// readVariableNames rebuilds the space-joined list of all globally defined
// names, but only when the change counter has advanced since the last
// rebuild. Names are emitted in sorted order so the value is deterministic.
func readVariableNames(c *Context, b *Binding) *Binding {
	if c.specialNum[b.Name] == c.changenum {
		return b
	}

	var sb strings.Builder

	sb.Grow(nameListIncrement(len(b.Value)))

	for i, name := range c.global.set.Names() {
		if i > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(name)
	}

	b.Value = sb.String()
	c.specialNum[b.Name] = c.changenum

	return b
}

// writeRecipePrefix replaces the recipe introduction character. The change
// is effective immediately so the very next recipe line is classified with
// the new prefix.
func writeRecipePrefix(c *Context, b *Binding, _ Origin) {
	if b.Value == "" {
		c.RecipePrefix = DefaultRecipePrefix

		return
	}

	c.RecipePrefix = b.Value[0]
}

// writeWarnings resolves the diagnostics policy immediately, even for a
// deferred assignment, and decodes it into the warning action table.
func writeWarnings(c *Context, b *Binding, _ Origin) {
	c.decodeWarnings(c.Expand(b.Value), b.Loc)
}

// decodeWarnings parses a comma- or blank-separated list of warning policy
// terms. Each term is either an action applied to every class (ignore,
// warn, error) or class:action for one of invalid-var, invalid-ref, and
// undefined-var. Unknown terms raise an advisory diagnostic.
func (c *Context) decodeWarnings(actions string, loc Location) {
	classes := map[string]Warning{
		"invalid-var":   WarnInvalidName,
		"invalid-ref":   WarnInvalidRef,
		"undefined-var": WarnUndefined,
	}

	parse := func(s string) (WarnAction, bool) {
		switch s {
		case "ignore":
			return ActionIgnore, true
		case "warn":
			return ActionWarn, true
		case "error":
			return ActionError, true
		}

		return 0, false
	}

	for term := range strings.FieldsFuncSeq(actions, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	}) {
		if action, ok := parse(term); ok {
			for _, w := range classes {
				c.warnings[w] = action
			}

			continue
		}

		class, actionName, found := strings.Cut(term, ":")

		w, okClass := classes[class]
		action, okAction := parse(actionName)

		if !found || !okClass || !okAction {
			// Reported unconditionally: the policy being decoded may itself
			// be suppressing the class this would route through.
			if c.warn != nil {
				c.warn(WarnInvalidName, ActionWarn, loc,
					"unknown warning policy '"+term+"'")
			}

			continue
		}

		c.warnings[w] = action
	}
}

// writeFlags re-derives the option state carried by the flags-propagation
// variable from its new value.
func writeFlags(c *Context, b *Binding, _ Origin) {
	c.decodeFlags(c.Expand(b.Value))
}

// decodeFlags scans a flags value: a leading word of single-letter flags
// (with or without a dash), long options, and nothing past the override
// separator. Recognized flags update process state; the rest are carried
// verbatim for child processes to interpret.
func (c *Context) decodeFlags(value string) {
	flags, _, _ := strings.Cut(value, flagsOverrideSep)

	envOverrides := false
	silent := false
	keepGoing := false
	auth := ""

	for word := range strings.FieldsSeq(flags) {
		if rest, ok := strings.CutPrefix(word, "--jobserver-auth="); ok {
			auth = rest

			continue
		}

		if strings.HasPrefix(word, "--") {
			continue
		}

		for _, r := range strings.TrimPrefix(word, "-") {
			switch r {
			case 'e':
				envOverrides = true
			case 's':
				silent = true
			case 'k':
				keepGoing = true
			}
		}
	}

	c.silent = silent
	c.keepGoing = keepGoing
	c.jobserverAuth = auth
	c.SetEnvOverrides(envOverrides)
}

// Silent reports the silent-recipes flag derived from MAKEFLAGS.
func (c *Context) Silent() bool {
	return c.silent
}

// KeepGoing reports the keep-going flag derived from MAKEFLAGS.
func (c *Context) KeepGoing() bool {
	return c.keepGoing
}

// JobserverAuth returns the scheduler coordination token, if any.
func (c *Context) JobserverAuth() string {
	return c.jobserverAuth
}
