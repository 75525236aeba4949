// Package expand resolves $-references in text against a variable context.
//
// It implements the reference syntax only: "$$" for a literal dollar,
// "$(NAME)" and "${NAME}" with nested references inside the name, and the
// single-character form "$X". Deferred values re-expand on every read;
// a deferred value that references itself expands to empty rather than
// looping.
package expand

import (
	"strings"

	"github.com/ardnew/remake/vars"
)

// Resolver expands references and tracks which deferred names are already
// being expanded, to cut self-reference cycles. It is not safe for
// concurrent use, matching the contexts it serves.
type Resolver struct {
	expanding map[string]bool
}

func New() *Resolver {
	return &Resolver{expanding: make(map[string]bool)}
}

// Expand substitutes every reference in text. Its signature matches
// [vars.ResolveFunc] so it can be wired with [vars.WithResolver].
func (r *Resolver) Expand(c *vars.Context, text string) string {
	if !strings.ContainsRune(text, '$') {
		return text
	}

	var sb strings.Builder

	sb.Grow(len(text))

	for i := 0; i < len(text); i++ {
		if text[i] != '$' {
			sb.WriteByte(text[i])

			continue
		}

		i++
		if i == len(text) {
			break
		}

		switch text[i] {
		case '$':
			sb.WriteByte('$')
		case '(', '{':
			inner, next := matchDelim(text, i)
			name := r.Expand(c, inner)
			sb.WriteString(r.reference(c, name))

			i = next
		default:
			sb.WriteString(r.reference(c, text[i:i+1]))
		}
	}

	return sb.String()
}

// matchDelim returns the text between the opening delimiter at text[open]
// and its matching close, plus the index of the close. An unterminated
// reference extends to the end of text.
func matchDelim(text string, open int) (inner string, next int) {
	closer := byte(')')
	if text[open] == '{' {
		closer = '}'
	}

	depth := 1

	for i := open + 1; i < len(text); i++ {
		switch text[i] {
		case text[open]:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return text[open+1 : i], i
			}
		}
	}

	return text[open+1:], len(text) - 1
}

// reference resolves one variable name to its effective value.
func (r *Resolver) reference(c *vars.Context, name string) string {
	b := c.Lookup(name)
	if b == nil {
		c.WarnUndefined(name)

		return ""
	}

	if b.Append {
		return r.appended(c, name)
	}

	if !b.Recursive {
		return b.Value
	}

	return r.deferred(c, name, b.Value)
}

// deferred expands a deferred value under the cycle guard.
func (r *Resolver) deferred(c *vars.Context, name, value string) string {
	if r.expanding[name] {
		return ""
	}

	r.expanding[name] = true
	defer delete(r.expanding, name)

	return r.Expand(c, value)
}

// appended resolves a still-merging append binding: the value visible in
// the enclosing scopes comes first, then each scope's appended piece,
// innermost last, joined by single spaces.
func (r *Resolver) appended(c *vars.Context, name string) string {
	return r.appendFrom(c, c.Current(), false, name)
}

func (r *Resolver) appendFrom(c *vars.Context, ch *vars.Chain, isParent bool, name string) string {
	if ch == nil {
		return ""
	}

	b := ch.Set().Lookup(name)
	if b == nil || (isParent && b.Private) {
		return r.appendFrom(c, ch.Next(), isParent || ch.NextIsParent(), name)
	}

	piece := b.Value
	if b.Recursive {
		piece = r.deferred(c, name, b.Value)
	}

	if !b.Append {
		return piece
	}

	outer := r.appendFrom(c, ch.Next(), isParent || ch.NextIsParent(), name)
	if outer == "" {
		return piece
	}

	if piece == "" {
		return outer
	}

	return outer + " " + piece
}
