package vars

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// jobserverInvalidToken replaces a scheduler coordination token in the
// projected flags when the consumer cannot inherit the channel it names.
const jobserverInvalidToken = "--jobserver-auth=-2,-2"

// shouldExport applies the export policy to one binding. policy is the
// effective export status for the name, which may have been adopted from a
// shadowed binding during the projection's first pass.
func (c *Context) shouldExport(b *Binding, policy Export) bool {
	switch policy {
	case ExportNever:
		return false
	case ExportAlways:
		return true
	case ExportIfSet:
		// Export only once something stronger than the built-in default
		// has set a value.
		return b.Origin != OriginDefault
	default:
		if !b.Exportable {
			return false
		}

		if b.Origin == OriginDefault || b.Origin == OriginAutomatic {
			return false
		}

		return c.exportAll ||
			b.Origin == OriginEnv ||
			b.Origin == OriginEnvOverride ||
			b.Origin == OriginCommand
	}
}

// Environment projects the bindings visible from t's scope chain (or the
// current chain when t is nil) into a "name=value" list suitable for a
// subprocess. recursive marks the consumer as a nested instance of this
// program, which may inherit the scheduler coordination channel; any other
// consumer gets the token invalidated.
//
// The projection guarantees MAKELEVEL (incremented) and SHELL (with a
// process-default fallback), resolves deferred values in the target's
// context, and keeps environment-sourced values verbatim except MAKEFLAGS,
// which is always re-resolved.
func (c *Context) Environment(t *Target, recursive bool) []string {
	if t != nil {
		saved := c.InstallTarget(t)
		defer c.RestoreContext(saved)
	} else {
		// Projection without a target serves an inline command
		// substitution; track the nesting depth for diagnostics.
		c.envRecursion++
		defer func() { c.envRecursion-- }()
	}

	// First pass, most specific scope first: the first binding seen for a
	// name is the one the subprocess would observe. Private bindings stop
	// qualifying once the walk crosses a parent link, mirroring Lookup.
	entries := make(map[string]*Binding)
	policy := make(map[string]Export)
	isParent := false

	for ch := c.current; ch != nil; ch = ch.next {
		for b := range ch.set.All() {
			if isParent && b.Private {
				continue
			}

			if _, seen := entries[b.Name]; !seen {
				entries[b.Name] = b
				policy[b.Name] = b.Export

				continue
			}

			// A shadowed binding donates its export status while the winner
			// carries none, so a global marked export-always still exports
			// after a target scope re-binds it without a policy of its own.
			if policy[b.Name] == ExportDefault {
				policy[b.Name] = b.Export
			}
		}

		isParent = isParent || ch.nextIsParent
	}

	// Second pass in sorted name order, so the export decision and the
	// flags rewrite happen in a deterministic sequence.
	out := make([]string, 0, len(entries)+2)
	haveShell := false

	for _, name := range slices.Sorted(maps.Keys(entries)) {
		if name == LevelVar {
			// Rebuilt below with the incremented level.
			continue
		}

		b := entries[name]
		if !c.shouldExport(b, policy[name]) {
			continue
		}

		value := b.Value

		// Environment-sourced values pass through as imported; everything
		// else deferred is resolved here. MAKEFLAGS is the exception both
		// ways: always re-resolved so flag edits made at any origin reach
		// the subprocess.
		fromEnv := b.Origin == OriginEnv || b.Origin == OriginEnvOverride
		if b.Recursive && (!fromEnv || name == FlagsVar) {
			value = c.Expand(b.Value)
		}

		if (name == FlagsVar || name == FlagsAliasVar) &&
			c.jobserverAuth != "" && !recursive {
			value = invalidateJobserver(value)
		}

		if name == ShellVar {
			haveShell = true
		}

		out = append(out, name+"="+value)
	}

	out = append(out, LevelVar+"="+strconv.Itoa(c.level+1))

	if !haveShell {
		shell := c.envShell
		if shell == "" {
			shell = c.defaultShell
		}

		out = append(out, ShellVar+"="+shell)
	}

	return out
}

// invalidateJobserver rewrites a flags value so its scheduler coordination
// token, if any, names an unusable channel. Only the flag segment before
// the override separator is rewritten; trailing overrides pass through
// unchanged.
func invalidateJobserver(flags string) string {
	head, tail, found := strings.Cut(flags, flagsOverrideSep)

	words := strings.Fields(head)
	replaced := false

	for i, w := range words {
		if strings.HasPrefix(w, "--jobserver-auth=") {
			words[i] = jobserverInvalidToken
			replaced = true
		}
	}

	if !replaced {
		words = append(words, jobserverInvalidToken)
	}

	head = strings.Join(words, " ")
	if found {
		return head + flagsOverrideSep + tail
	}

	return head
}
