package vars

// Assignment is the decomposition of one variable-definition line: the raw
// (unexpanded) name, the raw value text, and the flavor selected by the
// assignment operator.
type Assignment struct {
	Name        string
	Value       string
	Flavor      Flavor
	Conditional bool
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func skipBlanks(s string, i int) int {
	for i < len(s) && isBlank(s[i]) {
		i++
	}

	return i
}

// ParseAssignment recognizes the longest-match assignment operator among
// =, :=, ::=, :::=, +=, and !=, optionally preceded by ? for a conditional
// assignment. The name is the text before the operator trimmed of
// surrounding blanks; the value is the remainder after the operator
// trimmed of leading blanks.
//
// The line is not a definition when a comment or end of line arrives
// before an operator, when a second blank run appears inside what would be
// the name, or when the would-be name contains a reference marker.
func ParseAssignment(line string) (Assignment, bool) {
	var a Assignment

	p := skipBlanks(line, 0)
	start := p
	end := -1

	// Walk the line until a valid assignment operator is found. Each pass
	// consumes the next character to consider.
	for {
		if p >= len(line) {
			return a, false
		}

		c := line[p]
		p++

		if c == '#' {
			return a, false
		}

		if isBlank(c) {
			// Names cannot contain blanks: a second run means this is not
			// an assignment.
			if end >= 0 {
				return a, false
			}

			end = p - 1
			p = skipBlanks(line, p)

			continue
		}

		tok := p - 1

		if c == '?' {
			a.Conditional = true

			if p >= len(line) {
				return a, false
			}

			c = line[p]
			p++
		}

		if c == '=' {
			if end < 0 {
				end = tok
			}

			a.Flavor = FlavorRecursive

			break
		}

		if c == ':' {
			if end < 0 {
				end = tok
			}

			// Distinguish :=, ::=, and :::= from a bare colon, which means
			// this line is a rule, not an assignment.
			if p < len(line) && line[p] == '=' {
				p++
				a.Flavor = FlavorSimple

				break
			}

			if p < len(line) && line[p] == ':' {
				p++

				if p < len(line) && line[p] == '=' {
					p++
					a.Flavor = FlavorSimple

					break
				}

				if p+1 < len(line) && line[p] == ':' && line[p+1] == '=' {
					p += 2
					a.Flavor = FlavorExpand

					break
				}
			}

			return a, false
		}

		if (c == '+' || c == '!') && p < len(line) && line[p] == '=' {
			if c == '+' {
				a.Flavor = FlavorAppend
			} else {
				a.Flavor = FlavorShell
			}

			if end < 0 {
				end = tok
			}

			p++

			break
		}

		// Not part of an operator. A blank run already ended the name, so
		// an assignment is no longer possible; and a reference marker in
		// the name makes this line something else entirely.
		if end >= 0 || c == '$' {
			return a, false
		}

		a.Conditional = false
	}

	a.Name = line[start:end]
	a.Value = line[skipBlanks(line, p):]

	return a, true
}
