package vars

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// consideredDefined lists names the undefined-reference warning never
// fires for: they are legitimately absent until the driver populates them.
var consideredDefined = map[string]bool{
	"MAKECMDGOALS":  true,
	"MAKE_RESTARTS": true,
	"MAKEOVERRIDES": true,
	"GNUMAKEFLAGS":  true,
	"CURDIR":        true,
	"MFLAGS":        true,
}

// automaticNames are the single-character per-recipe variables, exempt
// because they are undefined outside a recipe context by design of the
// caller, not by mistake.
const automaticNames = "@%*<?^+|"

// WarnUndefined raises the undefined-reference diagnostic for name, with a
// closest-match suggestion when one of the defined names is plausibly what
// was meant.
func (c *Context) WarnUndefined(name string) {
	if c.warnings[WarnUndefined] == ActionIgnore {
		return
	}

	if consideredDefined[name] {
		return
	}

	base := strings.TrimRight(name, "DF")
	if len(base) <= 1 && strings.ContainsAny(automaticNames, base) {
		return
	}

	msg := "reference to undefined variable '" + name + "'"
	if match := c.suggestName(name); match != "" {
		msg += ", did you mean '" + match + "'?"
	}

	c.warnf(WarnUndefined, c.Reading(), msg)
}

// suggestName returns the best fuzzy match for name among all defined
// names, or empty when nothing comes close enough to suggest.
func (c *Context) suggestName(name string) string {
	names := c.global.set.Names()

	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return ""
	}

	best := matches[0]

	// Require most of the reference to participate in the match, so a
	// one-letter overlap with an unrelated name is not offered.
	if len(best.MatchedIndexes)*2 < len(name) {
		return ""
	}

	return best.Str
}
