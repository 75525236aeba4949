package vars

import (
	"strconv"
	"strings"
)

// Location identifies the definition site of a binding within a source file.
// The zero Location marks built-in and programmatic definitions.
type Location struct {
	File string
	Line int
}

// IsZero reports whether the location carries no source attribution.
func (l Location) IsZero() bool {
	return l.File == ""
}

// String renders the location as "file:line", or "<builtin>" when zero.
func (l Location) String() string {
	if l.IsZero() {
		return "<builtin>"
	}

	return l.File + ":" + strconv.Itoa(l.Line)
}

// Binding is one name/value record together with the metadata that governs
// how the value is resolved, overridden, and exported. A Binding is owned by
// exactly one [Set]; within a Set, names are unique and redefinition
// replaces the value in place.
type Binding struct {
	Name  string
	Value string
	Loc   Location

	Origin Origin
	Export Export

	// Recursive marks a deferred value: re-expanded on every read instead
	// of frozen at definition time.
	Recursive bool
	// Append records that the binding was produced by an append assignment
	// in a target or pattern scope and still merges with outer definitions
	// at expansion time.
	Append bool
	// Conditional records a ?= assignment.
	Conditional bool
	// Exportable is derived once from the name: only names of the form
	// [A-Za-z_][A-Za-z0-9_]* are eligible under the default export policy.
	Exportable bool
	// Private limits visibility to the defining scope: a lookup that has
	// crossed a parent link does not see the binding, and the environment
	// projector includes it only from the originating scope.
	Private bool
	// Special marks names with engine-side read or write hooks.
	Special bool
	// PerTarget marks bindings cloned from a pattern template into a
	// target's pattern scope.
	PerTarget bool
}

// Flavor reports the effective flavor of the stored value: recursive when
// deferred, append when produced by a still-merging append, simple
// otherwise. The shell and expand flavors are not distinguishable after
// definition; both store recursive values.
func (b *Binding) Flavor() Flavor {
	switch {
	case b.Append:
		return FlavorAppend
	case b.Recursive:
		return FlavorRecursive
	default:
		return FlavorSimple
	}
}

// exportableName reports whether name may be exported under the default
// policy: it must match [A-Za-z_][A-Za-z0-9_]*.
func exportableName(name string) bool {
	if name == "" {
		return false
	}

	for i := 0; i < len(name); i++ {
		c := name[i]

		switch {
		case c == '_',
			c >= 'A' && c <= 'Z',
			c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// validName reports whether name is free of whitespace. Names that fail are
// still accepted, with an advisory warning.
func validName(name string) bool {
	return !strings.ContainsAny(name, " \t\n\v\f\r")
}
