package vars

import (
	"testing"
)

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		line        string
		ok          bool
		name        string
		value       string
		flavor      Flavor
		conditional bool
	}{
		{line: "FOO = bar", ok: true, name: "FOO", value: "bar", flavor: FlavorRecursive},
		{line: "FOO=bar", ok: true, name: "FOO", value: "bar", flavor: FlavorRecursive},
		{line: "FOO := bar", ok: true, name: "FOO", value: "bar", flavor: FlavorSimple},
		{line: "FOO ::= bar", ok: true, name: "FOO", value: "bar", flavor: FlavorSimple},
		{line: "FOO :::= bar", ok: true, name: "FOO", value: "bar", flavor: FlavorExpand},
		{line: "FOO += bar", ok: true, name: "FOO", value: "bar", flavor: FlavorAppend},
		{line: "FOO != uname", ok: true, name: "FOO", value: "uname", flavor: FlavorShell},
		{line: "FOO ?= bar", ok: true, name: "FOO", value: "bar", flavor: FlavorRecursive, conditional: true},
		{line: "FOO ?:= bar", ok: true, name: "FOO", value: "bar", flavor: FlavorSimple, conditional: true},
		{line: "  FOO  =  bar baz ", ok: true, name: "FOO", value: "bar baz ", flavor: FlavorRecursive},
		{line: "FOO =", ok: true, name: "FOO", value: "", flavor: FlavorRecursive},

		// Operator characters embedded in the name resolve by longest
		// match at the first operator position.
		{line: "FO?O = bar", ok: true, name: "FO?O", value: "bar", flavor: FlavorRecursive},

		// Not definitions.
		{line: ""},
		{line: "   "},
		{line: "# FOO = bar"},
		{line: "FOO # = bar"},
		{line: "all: deps"},
		{line: "FOO BAR = baz"},
		{line: "FOO"},
		{line: "$(X) = y"},
		{line: "FOO :"},
		{line: "FOO ::"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			a, ok := ParseAssignment(tt.line)
			if ok != tt.ok {
				t.Fatalf("ParseAssignment(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}

			if !ok {
				return
			}

			if a.Name != tt.name {
				t.Errorf("name = %q, want %q", a.Name, tt.name)
			}

			if a.Value != tt.value {
				t.Errorf("value = %q, want %q", a.Value, tt.value)
			}

			if a.Flavor != tt.flavor {
				t.Errorf("flavor = %v, want %v", a.Flavor, tt.flavor)
			}

			if a.Conditional != tt.conditional {
				t.Errorf("conditional = %v, want %v", a.Conditional, tt.conditional)
			}
		})
	}
}
