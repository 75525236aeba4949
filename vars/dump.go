package vars

import (
	"fmt"
	"io"
	"strings"
)

// writeBinding prints one binding in definition syntax, preceded by a
// comment describing where it came from.
func writeBinding(w io.Writer, b *Binding) {
	origin := "# " + b.Origin.String()
	if b.Private {
		origin += " (private)"
	}

	if !b.Loc.IsZero() {
		origin += " (from '" + b.Loc.File + "', line " +
			fmt.Sprint(b.Loc.Line) + ")"
	}

	fmt.Fprintln(w, origin)

	switch {
	case b.Recursive && strings.ContainsRune(b.Value, '\n'):
		fmt.Fprintf(w, "define %s\n%s\nendef\n", b.Name, b.Value)
	case b.Recursive && b.Append:
		fmt.Fprintf(w, "%s += %s\n", b.Name, b.Value)
	case b.Recursive && b.Conditional:
		fmt.Fprintf(w, "%s ?= %s\n", b.Name, b.Value)
	case b.Recursive:
		fmt.Fprintf(w, "%s = %s\n", b.Name, b.Value)
	default:
		// An immediate value prints with $ doubled so the line reads back
		// to the same stored text.
		fmt.Fprintf(w, "%s := %s\n", b.Name,
			strings.ReplaceAll(b.Value, "$", "$$"))
	}
}

// writeSet prints every binding of one scope set in sorted order, followed
// by its bucket statistics.
func writeSet(w io.Writer, s *Set) {
	for _, name := range s.Names() {
		writeBinding(w, s.Lookup(name))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "# variable set hash-table stats:")
	fmt.Fprintln(w, "#", s.Stats())
}

// WriteDatabase prints the complete variable database in definition syntax:
// the global scope, then every pattern-scoped template.
func (c *Context) WriteDatabase(w io.Writer) {
	fmt.Fprintln(w, "\n# Variables")
	fmt.Fprintln(w)
	writeSet(w, c.global.set)

	fmt.Fprintln(w, "\n# Pattern-specific Variable Values")

	n := 0

	for p := range c.patterns.All() {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s :\n", p.Target)
		writeBinding(w, &p.Binding)

		n++
	}

	fmt.Fprintln(w)

	if n == 0 {
		fmt.Fprintln(w, "# No pattern-specific variable values.")

		return
	}

	fmt.Fprintf(w, "# %d pattern-specific variable values\n", n)
}

// Record is the structured projection of one binding, for machine-readable
// dumps and filter expressions.
type Record struct {
	Name        string `json:"name" yaml:"name"`
	Value       string `json:"value" yaml:"value"`
	Origin      string `json:"origin" yaml:"origin"`
	Flavor      string `json:"flavor" yaml:"flavor"`
	Export      string `json:"export" yaml:"export"`
	Private     bool   `json:"private,omitempty" yaml:"private,omitempty"`
	Conditional bool   `json:"conditional,omitempty" yaml:"conditional,omitempty"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	Pattern     string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

func record(b *Binding) Record {
	r := Record{
		Name:        b.Name,
		Value:       b.Value,
		Origin:      b.Origin.String(),
		Flavor:      b.Flavor().String(),
		Export:      b.Export.String(),
		Private:     b.Private,
		Conditional: b.Conditional,
	}

	if !b.Loc.IsZero() {
		r.Location = b.Loc.String()
	}

	return r
}

// Records projects the global scope and the pattern index into a flat,
// name-sorted record list. Pattern templates carry their target pattern.
func (c *Context) Records() []Record {
	out := make([]Record, 0, c.global.set.Len())

	for _, name := range c.global.set.Names() {
		out = append(out, record(c.global.set.Lookup(name)))
	}

	for p := range c.patterns.All() {
		r := record(&p.Binding)
		r.Pattern = p.Target
		out = append(out, r)
	}

	return out
}
