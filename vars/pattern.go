package vars

import (
	"iter"
	"strings"
)

// PatternVar is one pattern-keyed binding template. Templates are immutable
// after registration: targets that match receive independently owned clones
// in their own pattern scope, so later writes never touch the template.
type PatternVar struct {
	// Target is the full pattern, e.g. "%.o".
	Target string
	// Stem is the index of the wildcard within Target.
	Stem int
	// Flavor is the assignment flavor replayed when the template is cloned
	// into a target's pattern scope.
	Flavor Flavor
	// Binding is the template record cloned per matching target.
	Binding Binding

	next *PatternVar
}

// Prefix returns the literal pattern text before the wildcard.
func (p *PatternVar) Prefix() string {
	return p.Target[:p.Stem]
}

// Suffix returns the literal pattern text after the wildcard.
func (p *PatternVar) Suffix() string {
	return p.Target[p.Stem+1:]
}

// matches reports whether target matches the pattern by the stem rule: the
// literal text before and after the wildcard must match exactly, with at
// least one character left for the stem.
func (p *PatternVar) matches(target string) bool {
	if len(p.Target) > len(target) {
		// It can't possibly match.
		return false
	}

	stemlen := len(target) - len(p.Target) + 1

	if !strings.HasPrefix(target, p.Prefix()) {
		return false
	}

	return target[p.Stem+stemlen:] == p.Suffix()
}

// PatternIndex is an ordered registry of pattern variable templates, kept
// sorted by ascending pattern length with equal-length entries in
// definition order. The ascending order gives lookups shortest-pattern-
// first semantics; a caller that wants the longest match scans to the last
// hit.
type PatternIndex struct {
	head *PatternVar
	// lastOfLen remembers the tail of each equal-length run so appending
	// another pattern of a seen length skips the list walk.
	lastOfLen map[int]*PatternVar
}

// Define registers a new template for pattern, which must contain exactly
// one '%' wildcard, and returns it. The binding template is stored as
// given; [Context.DefinePattern] is the usual entry point and prepares the
// binding first.
func (x *PatternIndex) Define(pattern string, flavor Flavor, tmpl Binding) *PatternVar {
	stem := strings.IndexByte(pattern, '%')
	if stem < 0 {
		return nil
	}

	p := &PatternVar{
		Target:  pattern,
		Stem:    stem,
		Flavor:  flavor,
		Binding: tmpl,
	}

	if x.lastOfLen == nil {
		x.lastOfLen = make(map[int]*PatternVar)
	}

	switch {
	case x.head == nil:
		x.head = p
	case x.lastOfLen[len(pattern)] != nil:
		last := x.lastOfLen[len(pattern)]
		p.next = last.next
		last.next = p
	default:
		// Find the insertion point: the end of the run of patterns no
		// longer than this one, so equal lengths stay in definition order.
		v := &x.head
		for *v != nil && len((*v).Target) <= len(pattern) {
			v = &(*v).next
		}

		p.next = *v
		*v = p
	}

	x.lastOfLen[len(pattern)] = p

	return p
}

// Match returns the first template at or after the cursor whose pattern
// matches target, or nil when none remain. A nil cursor starts from the
// head; passing the previous result continues the scan, so repeated calls
// enumerate every matching template in ascending pattern length.
func (x *PatternIndex) Match(cursor *PatternVar, target string) *PatternVar {
	p := x.head
	if cursor != nil {
		p = cursor.next
	}

	for ; p != nil; p = p.next {
		if p.matches(target) {
			return p
		}
	}

	return nil
}

// Len returns the number of registered templates.
func (x *PatternIndex) Len() int {
	n := 0
	for p := x.head; p != nil; p = p.next {
		n++
	}

	return n
}

// All returns an iterator over the templates in registry order, for debug
// and introspection consumers. Yielded templates must not be mutated.
func (x *PatternIndex) All() iter.Seq[*PatternVar] {
	return func(yield func(*PatternVar) bool) {
		for p := x.head; p != nil; p = p.next {
			if !yield(p) {
				return
			}
		}
	}
}
