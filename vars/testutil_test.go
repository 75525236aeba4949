package vars

import (
	"strings"
)

// testResolver is a minimal reference expander for tests: it handles "$$"
// and "$(NAME)" with deferred re-expansion, which is all the fixtures use.
func testResolver(c *Context, text string) string {
	var sb strings.Builder

	for i := 0; i < len(text); i++ {
		if text[i] != '$' || i+1 == len(text) {
			sb.WriteByte(text[i])

			continue
		}

		i++

		if text[i] == '$' {
			sb.WriteByte('$')

			continue
		}

		if text[i] != '(' {
			sb.WriteByte('$')
			sb.WriteByte(text[i])

			continue
		}

		end := strings.IndexByte(text[i:], ')')
		if end < 0 {
			break
		}

		name := text[i+1 : i+end]
		i += end

		if b := c.Lookup(name); b != nil {
			sb.WriteString(c.ResolveBinding(b))
		}
	}

	return sb.String()
}

// testContext builds a context with the test resolver and a warning sink
// that records messages.
func testContext(t interface{ Helper() }, opts ...Option) (*Context, *[]string) {
	t.Helper()

	var warnings []string

	base := []Option{
		WithResolver(testResolver),
		WithWarningHandler(func(_ Warning, _ WarnAction, _ Location, msg string) {
			warnings = append(warnings, msg)
		}),
	}

	return New(append(base, opts...)...), &warnings
}
