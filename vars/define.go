package vars

import (
	"strings"

	"github.com/ardnew/remake/pkg"
)

// defineIn creates or updates a binding in set, gated by the precedence
// ladder: the write takes effect only when origin is at least as strong as
// the existing binding's origin. Either way the resident binding is
// returned; a losing write is a silent no-op.
func (c *Context) defineIn(set *Set, name, value string, origin Origin,
	recursive bool, loc Location,
) (*Binding, bool) {
	c.checkName(name, loc)

	if set == nil {
		set = c.global.set
	}

	if c.envOverrides && origin == OriginEnv {
		origin = OriginEnvOverride
	}

	if b := set.Lookup(name); b != nil {
		if c.envOverrides && b.Origin == OriginEnv {
			// The binding predates the -e switch and was not re-ranked.
			b.Origin = OriginEnvOverride
		}

		if origin < b.Origin {
			return b, false
		}

		b.Value = value
		b.Loc = loc
		b.Origin = origin
		b.Recursive = recursive

		return b, true
	}

	b := &Binding{
		Name:       name,
		Value:      value,
		Loc:        loc,
		Origin:     origin,
		Recursive:  recursive,
		Export:     ExportDefault,
		Exportable: exportableName(name),
	}

	if set == c.global.set {
		b.Special = c.isSpecial(name)
		c.changenum++
	}

	set.insert(b)

	return b, true
}

// Define creates or updates a binding in the current scope, subject to the
// precedence gate.
func (c *Context) Define(name, value string, origin Origin, recursive bool) *Binding {
	b, _ := c.defineIn(c.current.set, name, value, origin, recursive, c.Reading())

	return b
}

// DefineGlobal creates or updates a binding in the global scope, subject to
// the precedence gate.
func (c *Context) DefineGlobal(name, value string, origin Origin, recursive bool) *Binding {
	b, _ := c.defineIn(c.global.set, name, value, origin, recursive, c.Reading())

	return b
}

// UndefineIn removes the binding for name from set when origin is at least
// as strong as the binding's origin. A losing removal is a silent no-op.
func (c *Context) UndefineIn(name string, origin Origin, set *Set) {
	c.checkName(name, c.Reading())

	if set == nil {
		set = c.global.set
	}

	if c.envOverrides && origin == OriginEnv {
		origin = OriginEnvOverride
	}

	b := set.Lookup(name)
	if b == nil {
		return
	}

	if c.envOverrides && b.Origin == OriginEnv {
		b.Origin = OriginEnvOverride
	}

	if origin >= b.Origin {
		if set.remove(name) && set == c.global.set {
			c.changenum++
		}
	}
}

// Undefine removes the binding for name from the global scope, subject to
// the precedence gate.
func (c *Context) Undefine(name string, origin Origin) {
	c.UndefineIn(name, origin, c.global.set)
}

// shellResult expands command text, hands it to the subprocess runner, and
// returns the captured output with at most one trailing line terminator
// removed. A failed or absent runner yields empty text, never an error.
func (c *Context) shellResult(command string) string {
	if c.run == nil {
		return ""
	}

	out, err := c.run(c, c.Expand(command))
	if err != nil {
		return ""
	}

	out = strings.TrimSuffix(out, "\n")

	return strings.TrimSuffix(out, "\r")
}

// assign implements the flavor transformations of a variable assignment and
// stores the result, subject to the precedence gate. It is the engine
// behind [Context.TryDefinition] and pattern template cloning.
func (c *Context) assign(loc Location, name, value string, origin Origin,
	flavor Flavor, conditional bool, scope Scope,
) *Binding {
	// A conditional assignment is a no-op when any visible binding exists.
	if conditional {
		if b := c.Lookup(name); b != nil {
			return b
		}
	}

	newval := value
	recursive := false
	appending := false

	switch flavor {
	case FlavorSimple:
		newval = c.Expand(value)

	case FlavorExpand:
		// Expand now, then double every reference marker in the result so a
		// later deferred re-expansion reproduces the expanded text.
		expanded := c.Expand(value)

		var sb strings.Builder

		sb.Grow(len(expanded) * 2)

		for i := 0; i < len(expanded); i++ {
			if expanded[i] == '$' {
				sb.WriteByte('$')
			}

			sb.WriteByte(expanded[i])
		}

		newval = sb.String()
		recursive = true

	case FlavorShell:
		newval = c.shellResult(value)
		recursive = true

	case FlavorRecursive:
		recursive = true

	case FlavorAppend, FlavorAppendValue:
		var old *Binding

		override := false

		if scope == ScopeGlobal {
			old = c.Lookup(name)
		} else {
			// Appending in a target or pattern context merges only with
			// bindings of that same context; merging with outer scopes is
			// deferred to expansion time via the append flag.
			appending = true

			old = c.LookupIn(name, c.current.set)
			if old != nil {
				if !old.Append {
					appending = false
				}

				if scope == ScopePattern &&
					(old.Origin == OriginEnvOverride || old.Origin == OriginCommand) {
					// A command-line definition or forced environment
					// override beats a pattern-scope append outright.
					override = true
					appending = true
				}
			}
		}

		switch {
		case old == nil:
			// No old value: the append degrades to a deferred definition.
			recursive = true

		case override:
			// Keep the stronger origin's value; re-expansion at build time
			// performs any remaining merge.
			recursive = true

		default:
			val := value

			if old.Recursive {
				recursive = true
			} else if flavor != FlavorAppendValue {
				val = c.Expand(val)
			}

			// Appending nothing leaves the old binding untouched.
			if val == "" {
				if old.Special {
					return c.writeSpecial(old, origin)
				}

				return old
			}

			newval = mergeAppend(name, old.Value, val)
		}

	default:
		panic("vars: impossible assignment flavor")
	}

	var set *Set
	if scope != ScopeGlobal {
		set = c.current.set
	}

	b, wrote := c.defineIn(set, name, newval, origin, recursive, loc)
	if wrote {
		b.Append = appending
		b.Conditional = conditional
	}

	if b.Special {
		return c.writeSpecial(b, origin)
	}

	return b
}

// mergeAppend pastes an old and a new value together with a separating
// blank. When the flags-propagation variable carries a " -- " separator
// marking trailing variable overrides, the new text is inserted ahead of
// the separator so the override segment always trails.
func mergeAppend(name, old, val string) string {
	if old == "" {
		return val
	}

	if name == FlagsVar {
		if sep := strings.Index(old, flagsOverrideSep); sep >= 0 {
			return old[:sep] + " " + val + old[sep:]
		}
	}

	return old + " " + val
}

// Apply performs the parsed assignment at the given origin and scope. The
// assignment's name is expanded first; a name that expands to nothing is an
// error.
func (c *Context) Apply(a Assignment, origin Origin, scope Scope) (*Binding, error) {
	name := c.Expand(a.Name)
	if name == "" {
		return nil, pkg.MakeError(pkg.ErrEmptyVariableName).
			Wrapf("%s", c.Reading())
	}

	return c.assign(c.Reading(), name, a.Value, origin, a.Flavor, a.Conditional, scope), nil
}

// TryDefinition interprets line as a variable definition. It returns
// (nil, nil) when the line is not a definition, the affected binding when
// it is, and an error only when the definition's name expands to nothing.
func (c *Context) TryDefinition(line string, origin Origin, scope Scope) (*Binding, error) {
	a, ok := ParseAssignment(line)
	if !ok {
		return nil, nil
	}

	return c.Apply(a, origin, scope)
}

// DefinePattern registers a pattern variable template. The assignment is
// not applied to any scope now: matching targets receive clones when their
// scopes are first initialized. Simple-flavor templates expand their value
// immediately so every clone receives the frozen text.
func (c *Context) DefinePattern(pattern string, a Assignment, origin Origin,
	private bool,
) *PatternVar {
	value := a.Value
	recursive := a.Flavor == FlavorRecursive

	if a.Flavor == FlavorSimple {
		value = c.Expand(value)
	}

	tmpl := Binding{
		Name:        a.Name,
		Value:       value,
		Loc:         c.Reading(),
		Origin:      origin,
		Recursive:   recursive,
		Export:      ExportDefault,
		Exportable:  exportableName(a.Name),
		Conditional: a.Conditional,
		Private:     private,
		PerTarget:   true,
	}

	return c.patterns.Define(pattern, a.Flavor, tmpl)
}
